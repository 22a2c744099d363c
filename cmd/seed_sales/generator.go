package main

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-dashboard/internal/domain/salessummary"
)

var hundred = decimal.NewFromInt(100)

// weekdayFactor ventas relativas por día de la semana (domingo = 0).
var weekdayFactor = [7]float64{0.55, 0.9, 0.95, 1.0, 1.05, 1.3, 1.2}

// generateSeries serie diaria determinista para [end-days+1, end].
// change_percentage es la variación contra el día anterior; el primer día no tiene base.
func generateSeries(end time.Time, days int, base decimal.Decimal, seed int64) []salessummary.DailyRecord {
	if days <= 0 {
		return []salessummary.DailyRecord{}
	}
	rng := rand.New(rand.NewSource(seed))
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -(days - 1))

	out := make([]salessummary.DailyRecord, 0, days)
	var prev decimal.Decimal
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		noise := 0.85 + rng.Float64()*0.3
		value := base.Mul(decimal.NewFromFloat(weekdayFactor[date.Weekday()] * noise)).Round(2)

		rec := salessummary.DailyRecord{Date: date, TotalValue: value}
		if i > 0 && !prev.IsZero() {
			change := value.Sub(prev).Div(prev).Mul(hundred).Round(4)
			rec.ChangePercentage = decimal.NewNullDecimal(change)
		}
		out = append(out, rec)
		prev = value
	}
	return out
}
