package analytics_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-dashboard/internal/application/analytics"
	"github.com/jhoicas/inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/inventario-dashboard/internal/domain"
	"github.com/jhoicas/inventario-dashboard/internal/domain/entity"
	"github.com/jhoicas/inventario-dashboard/internal/domain/repository"
	"github.com/jhoicas/inventario-dashboard/internal/domain/salessummary"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type fakeSeries struct {
	records    []salessummary.DailyRecord
	err        error
	start, end time.Time
}

func (f *fakeSeries) GetDailySeries(_ context.Context, _ string, start, end time.Time) ([]salessummary.DailyRecord, error) {
	f.start, f.end = start, end
	return f.records, f.err
}

func (f *fakeSeries) UpsertDay(context.Context, string, salessummary.DailyRecord) error { return nil }

type fakeViews struct {
	state *entity.ViewState
	err   error
}

func (f *fakeViews) Get(context.Context, string, string) (*entity.ViewState, error) {
	if f.state == nil && f.err == nil {
		return nil, domain.ErrNotFound
	}
	return f.state, f.err
}

func (f *fakeViews) Update(context.Context, string, string, *entity.ViewState, repository.ViewStateMutation) (*entity.ViewState, error) {
	return nil, errors.New("no usado")
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls map[salessummary.Granularity]int
}

func (f *fakeRecorder) ObserveSalesSummary(g salessummary.Granularity, _ int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[salessummary.Granularity]int{}
	}
	f.calls[g]++
}

type fakePDF struct {
	title   string
	summary *dto.SalesSummaryDTO
}

func (f *fakePDF) GenerateSalesSummaryPDF(_ context.Context, title string, s *dto.SalesSummaryDTO) ([]byte, error) {
	f.title, f.summary = title, s
	return []byte("%PDF-fake"), nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func rec(date time.Time, value int64, change string) salessummary.DailyRecord {
	r := salessummary.DailyRecord{Date: date, TotalValue: decimal.NewFromInt(value)}
	if change != "" {
		r.ChangePercentage = decimal.NewNullDecimal(decimal.RequireFromString(change))
	}
	return r
}

func marchSeries() []salessummary.DailyRecord {
	return []salessummary.DailyRecord{
		rec(day(2024, time.March, 3), 1_000_000, "2"),
		rec(day(2024, time.March, 10), 2_000_000, "4"),
	}
}

func newUC(series repository.SalesSeriesRepository, views repository.ViewStateRepository, rec analytics.SummaryRecorder, pdf analytics.SalesSummaryPDFGenerator) *analytics.SalesSummaryUseCase {
	cfg := analytics.SalesSummaryConfig{
		DefaultGranularity: salessummary.Weekly,
		Options:            salessummary.DefaultOptions(),
		Locale:             "en-US",
		WindowDays:         30,
	}
	return analytics.NewSalesSummaryUseCase(series, views, pdf, rec, cfg, nil).
		WithClock(func() time.Time { return time.Date(2024, time.March, 31, 15, 4, 5, 0, time.UTC) })
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestGetSalesSummary_WeeklyPorDefecto(t *testing.T) {
	series := &fakeSeries{records: marchSeries()}
	recorder := &fakeRecorder{}
	uc := newUC(series, nil, recorder, nil)

	got, err := uc.GetSalesSummary(context.Background(), "c1", "u1", dto.SalesSummaryRequest{})
	require.NoError(t, err)

	assert.Equal(t, "weekly", got.Granularity)
	assert.Equal(t, "2024-03-02", got.StartDate)
	assert.Equal(t, "2024-03-31", got.EndDate)
	assert.Equal(t, day(2024, time.March, 2), series.start)
	assert.Equal(t, day(2024, time.March, 31), series.end)

	require.Len(t, got.Buckets, 2)
	assert.Equal(t, "Week 1 - Mar", got.Buckets[0].Key)
	assert.Equal(t, "Week 1 - Mar", got.Buckets[0].Tick)
	assert.Equal(t, "Week 2 - Mar", got.Buckets[1].Key)
	assert.Equal(t, "March 10, 2024", got.Buckets[1].TooltipDate)
	assert.Equal(t, "$2,000,000", got.Buckets[1].TooltipValue)
	assert.Equal(t, "4.00%", got.Buckets[1].ChangeLabel)

	assert.True(t, got.Summary.TotalValueSum.Equal(decimal.NewFromInt(3_000_000)))
	assert.True(t, got.Summary.AverageChangePercentage.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, "$3m", got.Summary.TotalValueLabel)
	assert.Equal(t, "3.00%", got.Summary.AverageChangeLabel)
	assert.Equal(t, "3/10/24", got.Summary.PeakDateLabel)
	assert.Equal(t, "2 weeks", got.Summary.CountLabel)
	require.NotNil(t, got.Summary.Peak)
	assert.Equal(t, "Week 2 - Mar", got.Summary.Peak.Key)
	assert.Equal(t, 1, got.Summary.PeakBucketCount)

	assert.Equal(t, 1, recorder.calls[salessummary.Weekly])
}

func TestGetSalesSummary_GranularidadDelEstadoDeVista(t *testing.T) {
	views := &fakeViews{state: &entity.ViewState{Granularity: salessummary.Monthly}}
	uc := newUC(&fakeSeries{records: marchSeries()}, views, nil, nil)

	got, err := uc.GetSalesSummary(context.Background(), "c1", "u1", dto.SalesSummaryRequest{})
	require.NoError(t, err)
	assert.Equal(t, "monthly", got.Granularity)
	require.Len(t, got.Buckets, 1)
	assert.Equal(t, "Mar-24", got.Buckets[0].Key)
	assert.Equal(t, 2, got.Buckets[0].Count)
}

func TestGetSalesSummary_LaPeticionPrevaleceSobreElEstado(t *testing.T) {
	views := &fakeViews{state: &entity.ViewState{Granularity: salessummary.Monthly}}
	uc := newUC(&fakeSeries{records: marchSeries()}, views, nil, nil)

	got, err := uc.GetSalesSummary(context.Background(), "c1", "u1", dto.SalesSummaryRequest{Granularity: "daily"})
	require.NoError(t, err)
	assert.Equal(t, "daily", got.Granularity)
	require.Len(t, got.Buckets, 2)
	assert.Equal(t, "3/3", got.Buckets[0].Tick)
	assert.Equal(t, "2 days", got.Summary.CountLabel)
}

func TestGetSalesSummary_FalloDelEstadoDeVistaNoRompeElResumen(t *testing.T) {
	views := &fakeViews{err: errors.New("redis caído")}
	uc := newUC(&fakeSeries{records: marchSeries()}, views, nil, nil)

	got, err := uc.GetSalesSummary(context.Background(), "c1", "u1", dto.SalesSummaryRequest{})
	require.NoError(t, err)
	assert.Equal(t, "weekly", got.Granularity)
}

func TestGetSalesSummary_GranularidadGuardadaInvalidaUsaDefault(t *testing.T) {
	views := &fakeViews{state: &entity.ViewState{Granularity: salessummary.Granularity("hourly")}}
	uc := newUC(&fakeSeries{records: marchSeries()}, views, nil, nil)

	got, err := uc.GetSalesSummary(context.Background(), "c1", "u1", dto.SalesSummaryRequest{})
	require.NoError(t, err)
	assert.Equal(t, "weekly", got.Granularity)
	require.Len(t, got.Buckets, 2)
	assert.Equal(t, "Week 1 - Mar", got.Buckets[0].Key)
	assert.Equal(t, "Week 2 - Mar", got.Buckets[1].Key)
}

func TestGetSalesSummary_SerieVacia(t *testing.T) {
	uc := newUC(&fakeSeries{}, nil, nil, nil)

	got, err := uc.GetSalesSummary(context.Background(), "c1", "u1", dto.SalesSummaryRequest{})
	require.NoError(t, err)
	assert.NotNil(t, got.Buckets)
	assert.Empty(t, got.Buckets)
	assert.Nil(t, got.Summary.Peak)
	assert.Equal(t, "N/A", got.Summary.PeakDateLabel)
	assert.Equal(t, "$0m", got.Summary.TotalValueLabel)
	assert.Equal(t, "0.00%", got.Summary.AverageChangeLabel)
	assert.Equal(t, "0 weeks", got.Summary.CountLabel)
}

func TestGetSalesSummary_PoliticasDesdeLaPeticion(t *testing.T) {
	series := &fakeSeries{records: []salessummary.DailyRecord{
		rec(day(2024, time.March, 10), 100, "6"),
		rec(day(2024, time.March, 3), 100, ""),
	}}
	uc := newUC(series, nil, nil, nil)

	got, err := uc.GetSalesSummary(context.Background(), "c1", "u1", dto.SalesSummaryRequest{
		Granularity: "monthly", Missing: "exclude", Order: "chronological",
	})
	require.NoError(t, err)
	assert.Equal(t, dto.SalesPoliciesDTO{Missing: "exclude", Order: "chronological"}, got.Policies)
	require.Len(t, got.Buckets, 1)
	assert.Equal(t, "2024-03-10", got.Buckets[0].Date, "fecha del primer registro visto")
	assert.Equal(t, "6.00%", got.Buckets[0].ChangeLabel)
}

func TestGetSalesSummary_ErroresDeEntrada(t *testing.T) {
	uc := newUC(&fakeSeries{}, nil, nil, nil)
	cases := map[string]dto.SalesSummaryRequest{
		"granularidad":    {Granularity: "hourly"},
		"fecha inválida":  {StartDate: "03/01/2024"},
		"rango invertido": {StartDate: "2024-03-10", EndDate: "2024-03-01"},
		"política":        {Missing: "ignore"},
		"orden":           {Order: "desc"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.GetSalesSummary(context.Background(), "c1", "u1", req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestGetSalesSummary_FalloDeLecturaEsFetchFailed(t *testing.T) {
	uc := newUC(&fakeSeries{err: errors.New("conn refused")}, nil, nil, nil)

	_, err := uc.GetSalesSummary(context.Background(), "c1", "u1", dto.SalesSummaryRequest{})
	assert.ErrorIs(t, err, analytics.ErrFetchFailed)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportSalesSummaryPDF(t *testing.T) {
	pdf := &fakePDF{}
	uc := newUC(&fakeSeries{records: marchSeries()}, nil, nil, pdf)

	data, filename, err := uc.ExportSalesSummaryPDF(context.Background(), "c1", "u1", dto.SalesSummaryRequest{
		StartDate: "2024-03-01", EndDate: "2024-03-31",
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), data)
	assert.Equal(t, "sales-summary_weekly_2024-03-01_2024-03-31.pdf", filename)
	assert.Equal(t, "Sales Summary", pdf.title)
	require.NotNil(t, pdf.summary)
	assert.Len(t, pdf.summary.Buckets, 2)
}

func TestExportSalesSummaryPDF_SinGenerador(t *testing.T) {
	uc := newUC(&fakeSeries{}, nil, nil, nil)
	_, _, err := uc.ExportSalesSummaryPDF(context.Background(), "c1", "u1", dto.SalesSummaryRequest{})
	assert.Error(t, err)
}
