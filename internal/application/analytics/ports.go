package analytics

import (
	"context"
	"errors"

	"github.com/jhoicas/inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/inventario-dashboard/internal/domain/salessummary"
)

// ErrFetchFailed la serie diaria no pudo obtenerse. Es el único fallo que ve el cliente.
var ErrFetchFailed = errors.New("failed to fetch")

// SalesSummaryPDFGenerator genera el reporte PDF del resumen ya calculado.
type SalesSummaryPDFGenerator interface {
	GenerateSalesSummaryPDF(ctx context.Context, title string, summary *dto.SalesSummaryDTO) ([]byte, error)
}

// SummaryRecorder registra observaciones de cada resumen (Prometheus en producción).
type SummaryRecorder interface {
	ObserveSalesSummary(g salessummary.Granularity, buckets int)
}
