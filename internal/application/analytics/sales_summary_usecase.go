// Package analytics contiene el caso de uso del resumen de ventas del dashboard:
// carga la serie diaria, la agrupa con el motor salessummary y arma la respuesta.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/inventario-dashboard/internal/domain"
	"github.com/jhoicas/inventario-dashboard/internal/domain/repository"
	"github.com/jhoicas/inventario-dashboard/internal/domain/salessummary"
	"github.com/jhoicas/inventario-dashboard/pkg/format"
	"github.com/jhoicas/inventario-dashboard/pkg/logger"
)

const dateLayout = "2006-01-02"

// SalesSummaryConfig valores por defecto cuando la petición no los trae.
type SalesSummaryConfig struct {
	DefaultGranularity salessummary.Granularity
	Options            salessummary.Options
	Locale             string
	WindowDays         int
	ReportTitle        string
}

// SalesSummaryUseCase arma el resumen de ventas y su exportación PDF.
type SalesSummaryUseCase struct {
	series    repository.SalesSeriesRepository
	views     repository.ViewStateRepository // opcional
	pdf       SalesSummaryPDFGenerator       // opcional
	recorder  SummaryRecorder                // opcional
	formatter *format.Formatter
	cfg       SalesSummaryConfig
	log       *logger.Logger
	now       func() time.Time
}

// NewSalesSummaryUseCase construye el caso de uso. views, pdf y recorder pueden ser nil.
func NewSalesSummaryUseCase(
	series repository.SalesSeriesRepository,
	views repository.ViewStateRepository,
	pdf SalesSummaryPDFGenerator,
	recorder SummaryRecorder,
	cfg SalesSummaryConfig,
	log *logger.Logger,
) *SalesSummaryUseCase {
	if cfg.DefaultGranularity == "" {
		cfg.DefaultGranularity = salessummary.DefaultGranularity
	}
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 90
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SalesSummaryUseCase{
		series:    series,
		views:     views,
		pdf:       pdf,
		recorder:  recorder,
		formatter: format.New(cfg.Locale),
		cfg:       cfg,
		log:       log.Component("sales_summary"),
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *SalesSummaryUseCase) WithClock(now func() time.Time) *SalesSummaryUseCase {
	uc.now = now
	return uc
}

// GetSalesSummary calcula buckets y cifras de cabecera para el período pedido.
//
// La granularidad sale de la petición, si no del estado de vista del usuario y si no
// de la configuración. El estado de vista y la serie se cargan en paralelo.
//
// Retorna domain.ErrInvalidInput para parámetros inválidos y ErrFetchFailed si la
// serie no pudo leerse.
func (uc *SalesSummaryUseCase) GetSalesSummary(
	ctx context.Context,
	companyID, userID string,
	req dto.SalesSummaryRequest,
) (*dto.SalesSummaryDTO, error) {
	start, end, err := uc.period(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	opts, err := uc.options(req.Missing, req.Order)
	if err != nil {
		return nil, err
	}

	var granularity salessummary.Granularity
	if req.Granularity != "" {
		if granularity, err = salessummary.ParseGranularity(req.Granularity); err != nil {
			return nil, err
		}
	}

	// ── Carga en paralelo ────────────────────────────────────────────────────
	var (
		records []salessummary.DailyRecord
		stored  salessummary.Granularity
	)
	g, gctx := errgroup.WithContext(ctx)
	if granularity == "" && uc.views != nil {
		g.Go(func() error {
			state, err := uc.views.Get(gctx, companyID, userID)
			switch {
			case errors.Is(err, domain.ErrNotFound):
			case err != nil:
				// El estado de vista es una preferencia: si falla se usa el default.
				uc.log.Warn().Err(err).Str("user_id", userID).Msg("estado de vista no disponible")
			case state.Granularity == "":
			default:
				parsed, perr := salessummary.ParseGranularity(string(state.Granularity))
				if perr != nil {
					uc.log.Warn().Err(perr).Str("user_id", userID).
						Str("stored", string(state.Granularity)).Msg("granularidad guardada inválida")
					return nil
				}
				stored = parsed
			}
			return nil
		})
	}
	g.Go(func() error {
		rs, err := uc.series.GetDailySeries(gctx, companyID, start, end)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFetchFailed, err)
		}
		records = rs
		return nil
	})
	if err := g.Wait(); err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Msg("serie diaria")
		return nil, err
	}

	if granularity == "" {
		granularity = uc.cfg.DefaultGranularity
		if stored != "" {
			granularity = stored
		}
	}

	// ── Motor ────────────────────────────────────────────────────────────────
	agg := salessummary.NewAggregator(opts)
	buckets := agg.Bucket(records, granularity)
	stats := agg.Summarize(buckets)

	if uc.recorder != nil {
		uc.recorder.ObserveSalesSummary(granularity, len(buckets))
	}
	uc.log.Debug().
		Str("company_id", companyID).
		Str("granularity", string(granularity)).
		Str("missing", string(opts.MissingChange)).
		Str("order", string(opts.Order)).
		Int("records", len(records)).
		Int("buckets", len(buckets)).
		Msg("resumen calculado")

	return uc.toDTO(granularity, opts, start, end, buckets, stats), nil
}

// ExportSalesSummaryPDF genera el PDF del mismo resumen que devuelve GetSalesSummary.
func (uc *SalesSummaryUseCase) ExportSalesSummaryPDF(
	ctx context.Context,
	companyID, userID string,
	req dto.SalesSummaryRequest,
) (pdfBytes []byte, filename string, err error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("analytics: generador PDF no configurado")
	}
	summary, err := uc.GetSalesSummary(ctx, companyID, userID, req)
	if err != nil {
		return nil, "", err
	}
	title := uc.cfg.ReportTitle
	if title == "" {
		title = "Sales Summary"
	}
	pdfBytes, err = uc.pdf.GenerateSalesSummaryPDF(ctx, title, summary)
	if err != nil {
		return nil, "", fmt.Errorf("analytics: generar PDF: %w", err)
	}
	filename = fmt.Sprintf("sales-summary_%s_%s_%s.pdf", summary.Granularity, summary.StartDate, summary.EndDate)
	return pdfBytes, filename, nil
}

// period resuelve [start, end]. Sin end_date se usa hoy; sin start_date, la ventana configurada.
func (uc *SalesSummaryUseCase) period(rawStart, rawEnd string) (time.Time, time.Time, error) {
	now := uc.now().UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if rawEnd != "" {
		t, err := time.Parse(dateLayout, rawEnd)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
		end = t
	}
	start := end.AddDate(0, 0, -(uc.cfg.WindowDays - 1))
	if rawStart != "" {
		t, err := time.Parse(dateLayout, rawStart)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date debe ser YYYY-MM-DD", domain.ErrInvalidInput)
		}
		start = t
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date posterior a end_date", domain.ErrInvalidInput)
	}
	return start, end, nil
}

func (uc *SalesSummaryUseCase) options(missing, order string) (salessummary.Options, error) {
	opts := uc.cfg.Options
	if missing != "" {
		p, err := salessummary.ParseMissingChangePolicy(missing)
		if err != nil {
			return opts, err
		}
		opts.MissingChange = p
	}
	if order != "" {
		p, err := salessummary.ParseOrderPolicy(order)
		if err != nil {
			return opts, err
		}
		opts.Order = p
	}
	return salessummary.NewAggregator(opts).Options(), nil
}

// ── Mapeo a DTO ───────────────────────────────────────────────────────────────

func (uc *SalesSummaryUseCase) toDTO(
	g salessummary.Granularity,
	opts salessummary.Options,
	start, end time.Time,
	buckets []salessummary.BucketedRecord,
	stats salessummary.SummaryStats,
) *dto.SalesSummaryDTO {
	out := &dto.SalesSummaryDTO{
		Granularity: string(g),
		StartDate:   start.Format(dateLayout),
		EndDate:     end.Format(dateLayout),
		Policies: dto.SalesPoliciesDTO{
			Missing: string(opts.MissingChange),
			Order:   string(opts.Order),
		},
		Locale:  uc.formatter.Locale(),
		Buckets: make([]dto.SalesBucketDTO, 0, len(buckets)),
		Summary: dto.SalesSummaryStatsDTO{
			TotalValueSum:           stats.TotalValueSum,
			AverageChangePercentage: stats.AverageChangePercentage,
			PeakBucketCount:         stats.PeakBucketCount,
			BucketCount:             stats.BucketCount,
			TotalValueLabel:         uc.formatter.Abbreviated(stats.TotalValueSum),
			AverageChangeLabel:      uc.formatter.Percent(stats.AverageChangePercentage),
			PeakDateLabel:           format.PeakDate(stats.Peak),
			CountLabel:              format.CountLabel(stats.BucketCount, g),
		},
	}
	for _, b := range buckets {
		out.Buckets = append(out.Buckets, uc.bucketDTO(g, b))
	}
	if stats.Peak != nil {
		peak := uc.bucketDTO(g, *stats.Peak)
		out.Summary.Peak = &peak
	}
	return out
}

func (uc *SalesSummaryUseCase) bucketDTO(g salessummary.Granularity, b salessummary.BucketedRecord) dto.SalesBucketDTO {
	return dto.SalesBucketDTO{
		Key:              b.Key,
		Date:             b.Date.Format(dateLayout),
		TotalValue:       b.TotalValue,
		ChangePercentage: b.ChangePercentage,
		Count:            b.Count,
		Tick:             format.Tick(g, b),
		AxisValue:        uc.formatter.AxisValue(b.TotalValue),
		TooltipDate:      format.TooltipDate(b),
		TooltipValue:     uc.formatter.Money(b.TotalValue),
		ChangeLabel:      uc.formatter.NullPercent(b.ChangePercentage),
	}
}
