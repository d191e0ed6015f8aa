// Package services holds the aggregation engine: read-only transformations
// of payment/expense rows into time-bucketed summaries. Grouping always
// happens in memory with an explicit (year, month) key, never through
// store-specific date formatting.
package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ccaruso/gestion-ingresos/internal/models"
)

// MonthKey identifies a calendar month bucket.
type MonthKey struct {
	Year  int
	Month time.Month
}

// KeyOf buckets a date by its own calendar month.
func KeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// String renders the wire form "MM-YYYY" used by series and drill-down URLs.
func (k MonthKey) String() string {
	return fmt.Sprintf("%02d-%04d", int(k.Month), k.Year)
}

// Contains reports whether t falls inside the month.
func (k MonthKey) Contains(t time.Time) bool {
	return t.Year() == k.Year && t.Month() == k.Month
}

// Before orders keys chronologically.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// Previous is the immediately preceding month; January wraps to December of
// the prior year.
func (k MonthKey) Previous() MonthKey {
	if k.Month == time.January {
		return MonthKey{Year: k.Year - 1, Month: time.December}
	}
	return MonthKey{Year: k.Year, Month: k.Month - 1}
}

// ParseMonthKey decodes "MM-YYYY". Anything else is a malformed key.
func ParseMonthKey(s string) (MonthKey, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return MonthKey{}, fmt.Errorf("malformed month key %q", s)
	}
	m, err := strconv.Atoi(parts[0])
	if err != nil || m < 1 || m > 12 {
		return MonthKey{}, fmt.Errorf("malformed month key %q", s)
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil || y < 1 {
		return MonthKey{}, fmt.Errorf("malformed month key %q", s)
	}
	return MonthKey{Year: y, Month: time.Month(m)}, nil
}

// round2 rounds to 2 decimal places. Intermediate sums stay at full
// precision; rounding happens only at the reported edges.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MonthBucket is one month of the global rollup.
type MonthBucket struct {
	Key           MonthKey
	Pagos         []models.Payment
	Gastos        []models.Expense
	TotalIngresos float64
	TotalGastos   float64
}

// Neto is the bucket's income sum minus its expense sum.
func (b *MonthBucket) Neto() float64 {
	return b.TotalIngresos - b.TotalGastos
}

// MonthlySummary groups all payments and expenses by the calendar month of
// each record's own date. Buckets come back newest first; months with rows
// on only one side still appear, with the other side at 0.
func MonthlySummary(pagos []models.Payment, gastos []models.Expense) []*MonthBucket {
	buckets := map[MonthKey]*MonthBucket{}
	at := func(key MonthKey) *MonthBucket {
		b, ok := buckets[key]
		if !ok {
			b = &MonthBucket{Key: key}
			buckets[key] = b
		}
		return b
	}
	for _, p := range pagos {
		b := at(KeyOf(p.Fecha))
		b.Pagos = append(b.Pagos, p)
		b.TotalIngresos += p.Monto
	}
	for _, g := range gastos {
		b := at(KeyOf(g.Fecha))
		b.Gastos = append(b.Gastos, g)
		b.TotalGastos += g.Monto
	}

	out := make([]*MonthBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[j].Key.Before(out[i].Key) })
	return out
}

// SupplyMonthPoint is one point of the compact per-supply series. The money
// total is truncated to whole units for the chart; time keeps its fraction.
type SupplyMonthPoint struct {
	Key    MonthKey
	Total  int
	Tiempo float64
}

// SupplySeries groups one supply's expenses by month, oldest first.
func SupplySeries(gastos []models.Expense) []SupplyMonthPoint {
	type acc struct {
		total  float64
		tiempo float64
	}
	sums := map[MonthKey]*acc{}
	for _, g := range gastos {
		key := KeyOf(g.Fecha)
		a, ok := sums[key]
		if !ok {
			a = &acc{}
			sums[key] = a
		}
		a.total += g.Monto
		a.tiempo += g.Tiempo
	}
	out := make([]SupplyMonthPoint, 0, len(sums))
	for key, a := range sums {
		out = append(out, SupplyMonthPoint{Key: key, Total: int(a.total), Tiempo: a.tiempo})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.Before(out[j].Key) })
	return out
}

// JobTypeMonthPoint is one point of the per-type series. Jobs are bucketed
// by the job's own date; the totals aggregate the jobs' payments and
// expenses regardless of when those rows happened.
type JobTypeMonthPoint struct {
	Key   MonthKey
	Bruto float64
	Gasto float64
}

func (p JobTypeMonthPoint) Neto() float64 { return p.Bruto - p.Gasto }

// JobTypeSeries groups the type's jobs by month, oldest first.
func JobTypeSeries(trabajos []models.Job) []JobTypeMonthPoint {
	sums := map[MonthKey]*JobTypeMonthPoint{}
	for i := range trabajos {
		j := &trabajos[i]
		key := KeyOf(j.Fecha)
		p, ok := sums[key]
		if !ok {
			p = &JobTypeMonthPoint{Key: key}
			sums[key] = p
		}
		p.Bruto += j.GrossIncome()
		p.Gasto += j.TotalExpense()
	}
	out := make([]JobTypeMonthPoint, 0, len(sums))
	for _, p := range sums {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.Before(out[j].Key) })
	return out
}

// ExpensesInMonth filters expenses down to one bucket for drill-down.
func ExpensesInMonth(gastos []models.Expense, key MonthKey) []models.Expense {
	var out []models.Expense
	for _, g := range gastos {
		if key.Contains(g.Fecha) {
			out = append(out, g)
		}
	}
	return out
}

// JobsInMonth filters jobs down to one bucket by the job's date.
func JobsInMonth(trabajos []models.Job, key MonthKey) []models.Job {
	var out []models.Job
	for _, j := range trabajos {
		if key.Contains(j.Fecha) {
			out = append(out, j)
		}
	}
	return out
}

// YearSummary is one row of the annual rollup.
type YearSummary struct {
	Anio         int     `json:"anio"`
	IngresoBruto float64 `json:"ingreso_bruto"`
	Gastos       float64 `json:"gastos"`
	IngresoNeto  float64 `json:"ingreso_neto"`
}

// AnnualSummary groups payments and expenses by calendar year independently
// and unions the years: a year present on only one side reports 0 on the
// other. Values are rounded to 2 decimals, years ascend.
func AnnualSummary(pagos []models.Payment, gastos []models.Expense) []YearSummary {
	ingresos := map[int]float64{}
	for _, p := range pagos {
		ingresos[p.Fecha.Year()] += p.Monto
	}
	salidas := map[int]float64{}
	for _, g := range gastos {
		salidas[g.Fecha.Year()] += g.Monto
	}

	years := map[int]bool{}
	for y := range ingresos {
		years[y] = true
	}
	for y := range salidas {
		years[y] = true
	}
	sorted := make([]int, 0, len(years))
	for y := range years {
		sorted = append(sorted, y)
	}
	sort.Ints(sorted)

	out := make([]YearSummary, 0, len(sorted))
	for _, y := range sorted {
		bruto := ingresos[y]
		gasto := salidas[y]
		out = append(out, YearSummary{
			Anio:         y,
			IngresoBruto: round2(bruto),
			Gastos:       round2(gasto),
			IngresoNeto:  round2(bruto - gasto),
		})
	}
	return out
}
