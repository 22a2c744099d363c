package salessummary

import (
	"fmt"
	"time"
)

// DayKey clave de la granularidad diaria: fecha ISO (2006-01-02).
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// WeekKey clave semanal por día del mes, ej: "Week 2 - Mar".
// Los días 1–7 son siempre la semana 1, sin importar el día de la semana en que
// empiece el mes, y el contador se reinicia cada mes. No es semana ISO.
func WeekKey(t time.Time) string {
	return fmt.Sprintf("Week %d - %s", weekOfMonth(t), t.Format("Jan"))
}

// MonthKey clave mensual, ej: "Jan-24".
func MonthKey(t time.Time) string {
	return t.Format("Jan-06")
}

// weekOfMonth = ceil(día / 7).
func weekOfMonth(t time.Time) int {
	return (t.Day() + 6) / 7
}

// dayStart inicio del día calendario en la zona del propio valor.
func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// weekStart primer día de la semana-del-mes a la que pertenece t (1, 8, 15, 22 o 29).
func weekStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, (weekOfMonth(t)-1)*7+1, 0, 0, 0, 0, t.Location())
}

// monthStart día 1 del mes de t.
func monthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// period describe cómo se deriva la clave y el inicio del período de una fecha.
type period struct {
	key   func(time.Time) string
	start func(time.Time) time.Time
}

var periods = map[Granularity]period{
	Daily:   {key: DayKey, start: dayStart},
	Weekly:  {key: WeekKey, start: weekStart},
	Monthly: {key: MonthKey, start: monthStart},
}

// KeyFor devuelve la clave de bucket de t para la granularidad g.
// Granularidades desconocidas se tratan como daily.
func KeyFor(g Granularity, t time.Time) string {
	p, ok := periods[g]
	if !ok {
		p = periods[Daily]
	}
	return p.key(t)
}
