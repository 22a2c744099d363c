package dto

import "github.com/shopspring/decimal"

// SalesSummaryRequest query params de GET /api/dashboard/sales-summary.
// Campos vacíos toman el estado de vista del usuario o la configuración.
type SalesSummaryRequest struct {
	Granularity string `query:"granularity" validate:"omitempty,oneof=daily weekly monthly"`
	StartDate   string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Missing     string `query:"missing" validate:"omitempty,oneof=zero exclude"`
	Order       string `query:"order" validate:"omitempty,oneof=first_seen chronological"`
}

// SalesSummaryDTO respuesta del resumen de ventas.
type SalesSummaryDTO struct {
	Granularity string               `json:"granularity"`
	StartDate   string               `json:"start_date"`
	EndDate     string               `json:"end_date"`
	Policies    SalesPoliciesDTO     `json:"policies"`
	Locale      string               `json:"locale"`
	Buckets     []SalesBucketDTO     `json:"buckets"`
	Summary     SalesSummaryStatsDTO `json:"summary"`
}

// SalesPoliciesDTO políticas efectivamente aplicadas.
type SalesPoliciesDTO struct {
	Missing string `json:"missing"`
	Order   string `json:"order"`
}

// SalesBucketDTO un punto de la gráfica.
type SalesBucketDTO struct {
	Key              string              `json:"key"`
	Date             string              `json:"date"` // YYYY-MM-DD del primer día del bucket
	TotalValue       decimal.Decimal     `json:"total_value"`
	ChangePercentage decimal.NullDecimal `json:"change_percentage"` // null si no hay base
	Count            int                 `json:"count"`

	// Etiquetas listas para mostrar
	Tick         string `json:"tick"`
	AxisValue    string `json:"axis_value"`
	TooltipDate  string `json:"tooltip_date"`
	TooltipValue string `json:"tooltip_value"`
	ChangeLabel  string `json:"change_label"`
}

// SalesSummaryStatsDTO cifras de cabecera.
type SalesSummaryStatsDTO struct {
	TotalValueSum           decimal.Decimal `json:"total_value_sum"`
	AverageChangePercentage decimal.Decimal `json:"average_change_percentage"`
	Peak                    *SalesBucketDTO `json:"peak"`
	PeakBucketCount         int             `json:"peak_bucket_count"`
	BucketCount             int             `json:"bucket_count"`

	TotalValueLabel    string `json:"total_value_label"`    // ej: $3m
	AverageChangeLabel string `json:"average_change_label"` // ej: 2.50%
	PeakDateLabel      string `json:"peak_date_label"`      // ej: 3/3/24 o N/A
	CountLabel         string `json:"count_label"`          // ej: 13 weeks
}
