// Package salessummary agrupa la serie diaria de ventas en buckets semanales o
// mensuales y calcula las cifras de cabecera del resumen de ventas del dashboard.
//
// Es código puro: no hace I/O, no guarda estado entre llamadas y no formatea
// nada para presentación (eso vive en pkg/format).
package salessummary

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-dashboard/internal/domain"
)

// Granularity resolución de agrupación pedida por el usuario.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// DefaultGranularity es la opción preseleccionada en el selector del dashboard.
const DefaultGranularity = Weekly

// MissingChangePolicy define cómo se promedian los días sin changePercentage.
type MissingChangePolicy string

const (
	// MissingAsZero cuenta el día ausente como 0 (sesga la media hacia cero con datos dispersos).
	MissingAsZero MissingChangePolicy = "zero"
	// MissingExcluded divide solo entre los días que traen valor.
	MissingExcluded MissingChangePolicy = "exclude"
)

// OrderPolicy define el orden de salida de los buckets.
type OrderPolicy string

const (
	// OrderFirstSeen respeta el orden en que aparece cada clave al recorrer la entrada.
	OrderFirstSeen OrderPolicy = "first_seen"
	// OrderChronological ordena por el inicio del período de cada bucket.
	OrderChronological OrderPolicy = "chronological"
)

var (
	ErrInvalidGranularity = fmt.Errorf("%w: granularidad no soportada", domain.ErrInvalidInput)
	ErrInvalidPolicy      = fmt.Errorf("%w: política no soportada", domain.ErrInvalidInput)
)

// DailyRecord venta agregada de un día calendario, tal como la entrega la capa de datos.
// ChangePercentage inválido (Valid=false) significa "sin base del día anterior".
type DailyRecord struct {
	Date             time.Time
	TotalValue       decimal.Decimal
	ChangePercentage decimal.NullDecimal
}

// BucketedRecord elemento de la serie ya agrupada.
//
// Date es la fecha del primer registro que cayó en el bucket (solo para ordenar
// y etiquetar). Count es el número de registros diarios que lo componen.
type BucketedRecord struct {
	Key              string
	Date             time.Time
	TotalValue       decimal.Decimal
	ChangePercentage decimal.NullDecimal
	Count            int
}

// SummaryStats cifras de cabecera calculadas sobre la granularidad seleccionada.
type SummaryStats struct {
	TotalValueSum           decimal.Decimal
	AverageChangePercentage decimal.Decimal
	Peak                    *BucketedRecord // nil si la serie está vacía
	PeakBucketCount         int             // registros diarios dentro del pico
	BucketCount             int
}

// Options políticas explícitas del agregador.
type Options struct {
	MissingChange MissingChangePolicy
	Order         OrderPolicy
}

// DefaultOptions reproduce el comportamiento histórico del dashboard.
func DefaultOptions() Options {
	return Options{MissingChange: MissingAsZero, Order: OrderFirstSeen}
}

// ParseGranularity valida la granularidad recibida desde fuera del motor.
// Cadena vacía devuelve DefaultGranularity.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(s); g {
	case "":
		return DefaultGranularity, nil
	case Daily, Weekly, Monthly:
		return g, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidGranularity, s)
	}
}

// ParseMissingChangePolicy valida la política de cambios ausentes. Vacío = MissingAsZero.
func ParseMissingChangePolicy(s string) (MissingChangePolicy, error) {
	switch p := MissingChangePolicy(s); p {
	case "":
		return MissingAsZero, nil
	case MissingAsZero, MissingExcluded:
		return p, nil
	default:
		return "", fmt.Errorf("%w: missing=%q", ErrInvalidPolicy, s)
	}
}

// ParseOrderPolicy valida la política de orden. Vacío = OrderFirstSeen.
func ParseOrderPolicy(s string) (OrderPolicy, error) {
	switch p := OrderPolicy(s); p {
	case "":
		return OrderFirstSeen, nil
	case OrderFirstSeen, OrderChronological:
		return p, nil
	default:
		return "", fmt.Errorf("%w: order=%q", ErrInvalidPolicy, s)
	}
}
