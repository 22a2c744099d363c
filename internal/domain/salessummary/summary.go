package salessummary

import "github.com/shopspring/decimal"

// Summarize calcula las cifras de cabecera sobre la serie ya agrupada (sea
// daily, weekly o monthly; las cifras son relativas a esa granularidad).
//
//   - TotalValueSum: Σ TotalValue (0 si vacía).
//   - AverageChangePercentage: media de ChangePercentage; 0 si no hay elementos
//     que promediar. Con MissingAsZero los ausentes cuentan como 0, con
//     MissingExcluded se ignoran.
//   - Peak: primer elemento con el TotalValue máximo (comparación estricta, el
//     primero gana en empate); nil si la serie está vacía.
func (a *Aggregator) Summarize(bucketed []BucketedRecord) SummaryStats {
	stats := SummaryStats{
		TotalValueSum:           decimal.Zero,
		AverageChangePercentage: decimal.Zero,
		BucketCount:             len(bucketed),
	}

	changeSum := decimal.Zero
	divisor := 0
	peak := -1
	for i, b := range bucketed {
		stats.TotalValueSum = stats.TotalValueSum.Add(b.TotalValue)

		switch {
		case b.ChangePercentage.Valid:
			changeSum = changeSum.Add(b.ChangePercentage.Decimal)
			divisor++
		case a.opts.MissingChange == MissingAsZero:
			divisor++
		}

		if peak < 0 || b.TotalValue.GreaterThan(bucketed[peak].TotalValue) {
			peak = i
		}
	}

	if divisor > 0 {
		stats.AverageChangePercentage = changeSum.Div(decimal.NewFromInt(int64(divisor)))
	}
	if peak >= 0 {
		p := bucketed[peak]
		stats.Peak = &p
		stats.PeakBucketCount = p.Count
	}
	return stats
}
