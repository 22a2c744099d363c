package salessummary

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Aggregator reagrupa la serie diaria y calcula el resumen con políticas fijas.
// No guarda estado entre llamadas; cada Bucket/Summarize recalcula todo.
type Aggregator struct {
	opts Options
}

// NewAggregator construye el agregador. Los campos vacíos de opts toman los valores por defecto.
func NewAggregator(opts Options) *Aggregator {
	def := DefaultOptions()
	if opts.MissingChange == "" {
		opts.MissingChange = def.MissingChange
	}
	if opts.Order == "" {
		opts.Order = def.Order
	}
	return &Aggregator{opts: opts}
}

// Options devuelve las políticas efectivas.
func (a *Aggregator) Options() Options { return a.opts }

// Bucket agrupa con DefaultOptions.
func Bucket(records []DailyRecord, g Granularity) []BucketedRecord {
	return NewAggregator(DefaultOptions()).Bucket(records, g)
}

// Summarize resume con DefaultOptions.
func Summarize(bucketed []BucketedRecord) SummaryStats {
	return NewAggregator(DefaultOptions()).Summarize(bucketed)
}

// bucketAcc acumulador de un bucket mientras dura una llamada a Bucket.
type bucketAcc struct {
	key       string
	date      time.Time // fecha del primer registro que cayó aquí
	start     time.Time
	total     decimal.Decimal
	changeSum decimal.Decimal
	count     int
	present   int // registros con changePercentage presente
}

// Bucket agrupa records según g.
//
// daily es la identidad (cada registro sale tal cual, count=1). weekly y monthly
// agrupan por clave manteniendo el orden de primera aparición, salvo que la
// política de orden sea OrderChronological. Entrada vacía → salida vacía.
func (a *Aggregator) Bucket(records []DailyRecord, g Granularity) []BucketedRecord {
	if g != Weekly && g != Monthly {
		return a.passThrough(records)
	}
	p := periods[g]

	index := make(map[string]int, len(records))
	accs := make([]*bucketAcc, 0)
	for _, r := range records {
		k := p.key(r.Date)
		i, ok := index[k]
		if !ok {
			i = len(accs)
			index[k] = i
			accs = append(accs, &bucketAcc{
				key:       k,
				date:      r.Date,
				start:     p.start(r.Date),
				total:     decimal.Zero,
				changeSum: decimal.Zero,
			})
		}
		acc := accs[i]
		acc.total = acc.total.Add(r.TotalValue)
		if r.ChangePercentage.Valid {
			acc.changeSum = acc.changeSum.Add(r.ChangePercentage.Decimal)
			acc.present++
		}
		acc.count++
	}

	if a.opts.Order == OrderChronological {
		sort.SliceStable(accs, func(i, j int) bool {
			return accs[i].start.Before(accs[j].start)
		})
	}

	out := make([]BucketedRecord, 0, len(accs))
	for _, acc := range accs {
		out = append(out, BucketedRecord{
			Key:              acc.key,
			Date:             acc.date,
			TotalValue:       acc.total,
			ChangePercentage: a.bucketMean(acc),
			Count:            acc.count,
		})
	}
	return out
}

// bucketMean = changeSum / count con MissingAsZero (los ausentes sumaron 0),
// o changeSum / present con MissingExcluded (ausente si ninguno trae valor).
func (a *Aggregator) bucketMean(acc *bucketAcc) decimal.NullDecimal {
	divisor := acc.count
	if a.opts.MissingChange == MissingExcluded {
		divisor = acc.present
	}
	if divisor == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(acc.changeSum.Div(decimal.NewFromInt(int64(divisor))))
}

func (a *Aggregator) passThrough(records []DailyRecord) []BucketedRecord {
	out := make([]BucketedRecord, 0, len(records))
	for _, r := range records {
		out = append(out, BucketedRecord{
			Key:              DayKey(r.Date),
			Date:             r.Date,
			TotalValue:       r.TotalValue,
			ChangePercentage: r.ChangePercentage,
			Count:            1,
		})
	}
	if a.opts.Order == OrderChronological {
		sort.SliceStable(out, func(i, j int) bool {
			return dayStart(out[i].Date).Before(dayStart(out[j].Date))
		})
	}
	return out
}
