// Package format convierte las cifras del motor de resumen de ventas en textos
// para el dashboard (abreviación de montos, porcentajes, fechas y etiquetas de eje).
//
// Nada de aquí participa en el cálculo; el motor no importa este paquete.
package format

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/inventario-dashboard/internal/domain/salessummary"
)

// NotAvailable marcador neutro para valores ausentes (ej: pico de una serie vacía).
const NotAvailable = "N/A"

// DefaultLocale locale usado cuando la configuración no trae uno válido.
const DefaultLocale = "en-US"

var million = decimal.NewFromInt(1_000_000)

// Formatter formatea números según un locale. El símbolo de moneda es fijo ($):
// no hay conversión multi-moneda.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
	symbol  string
}

// New construye un Formatter para el locale indicado (BCP 47, ej: "en-US", "es-CO").
// Un locale inválido cae en DefaultLocale.
func New(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag), symbol: "$"}
}

// Locale devuelve el locale efectivo.
func (f *Formatter) Locale() string { return f.tag.String() }

// Abbreviated monto en millones con hasta 2 decimales, ej: 1234567 → "$1.23m".
func (f *Formatter) Abbreviated(v decimal.Decimal) string {
	m := v.Div(million)
	return f.symbol + f.printer.Sprint(number.Decimal(m.InexactFloat64(), number.MaxFractionDigits(2))) + "m"
}

// AxisValue etiqueta del eje Y: millones sin decimales, ej: "$3m".
func (f *Formatter) AxisValue(v decimal.Decimal) string {
	return f.symbol + v.Div(million).StringFixed(0) + "m"
}

// Money monto completo con separadores del locale y hasta 2 decimales.
func (f *Formatter) Money(v decimal.Decimal) string {
	return f.symbol + f.printer.Sprint(number.Decimal(v.InexactFloat64(), number.MaxFractionDigits(2)))
}

// Percent porcentaje con 2 decimales fijos, ej: "2.50%".
func (f *Formatter) Percent(v decimal.Decimal) string {
	return v.StringFixed(2) + "%"
}

// NullPercent como Percent pero devuelve NotAvailable si el valor está ausente.
func (f *Formatter) NullPercent(v decimal.NullDecimal) string {
	if !v.Valid {
		return NotAvailable
	}
	return f.Percent(v.Decimal)
}

// PeakDate fecha del pico en formato numérico corto (M/D/YY) o NotAvailable.
func PeakDate(peak *salessummary.BucketedRecord) string {
	if peak == nil {
		return NotAvailable
	}
	return peak.Date.Format("1/2/06")
}

// Tick etiqueta del eje X: M/D para daily, la clave del bucket para el resto.
func Tick(g salessummary.Granularity, r salessummary.BucketedRecord) string {
	if g == salessummary.Weekly || g == salessummary.Monthly {
		return r.Key
	}
	return r.Date.Format("1/2")
}

// TooltipDate fecha larga del tooltip, ej: "March 3, 2024".
func TooltipDate(r salessummary.BucketedRecord) string {
	return r.Date.Format("January 2, 2006")
}

// CountLabel pie de tarjeta: "12 days", "1 week", "3 months".
func CountLabel(n int, g salessummary.Granularity) string {
	unit := "day"
	switch g {
	case salessummary.Weekly:
		unit = "week"
	case salessummary.Monthly:
		unit = "month"
	}
	if n != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s", n, unit)
}
