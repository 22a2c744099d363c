package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-dashboard/internal/domain/salessummary"
)

// SalesSeriesRepository puerto de lectura/escritura de la serie diaria de ventas.
type SalesSeriesRepository interface {
	// GetDailySeries devuelve los días con ventas en [start, end], ordenados por fecha.
	// Un change_percentage NULL llega como NullDecimal inválido.
	GetDailySeries(ctx context.Context, companyID string, start, end time.Time) ([]salessummary.DailyRecord, error)

	// UpsertDay inserta o reemplaza el registro del día (usado por el seed).
	UpsertDay(ctx context.Context, companyID string, rec salessummary.DailyRecord) error
}
