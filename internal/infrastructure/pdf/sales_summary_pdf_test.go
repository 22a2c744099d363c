package pdf_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-dashboard/internal/application/dto"
	"github.com/jhoicas/inventario-dashboard/internal/infrastructure/pdf"
)

func summary(buckets ...dto.SalesBucketDTO) *dto.SalesSummaryDTO {
	return &dto.SalesSummaryDTO{
		Granularity: "weekly",
		StartDate:   "2024-03-01",
		EndDate:     "2024-03-31",
		Policies:    dto.SalesPoliciesDTO{Missing: "zero", Order: "first_seen"},
		Buckets:     buckets,
		Summary: dto.SalesSummaryStatsDTO{
			TotalValueLabel:    "$3m",
			AverageChangeLabel: "3.00%",
			PeakDateLabel:      "3/10/24",
			CountLabel:         "2 weeks",
		},
	}
}

func TestGenerateSalesSummaryPDF(t *testing.T) {
	s := summary(
		dto.SalesBucketDTO{Key: "Week 1 - Mar", TotalValue: decimal.NewFromInt(1_000_000), TooltipValue: "$1,000,000", ChangeLabel: "2.00%", Count: 1},
		dto.SalesBucketDTO{Key: "Week 2 - Mar", TotalValue: decimal.NewFromInt(2_000_000), TooltipValue: "$2,000,000", ChangeLabel: "N/A", Count: 1},
	)

	out, err := pdf.NewSalesSummaryPDF().GenerateSalesSummaryPDF(context.Background(), "Sales Summary", s)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateSalesSummaryPDF_SinBuckets(t *testing.T) {
	out, err := pdf.NewSalesSummaryPDF().GenerateSalesSummaryPDF(context.Background(), "Sales Summary", summary())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateSalesSummaryPDF_Nil(t *testing.T) {
	_, err := pdf.NewSalesSummaryPDF().GenerateSalesSummaryPDF(context.Background(), "x", nil)
	assert.Error(t, err)
}
