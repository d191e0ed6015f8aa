package models

import "math"

// Derived job metrics. They are recomputed from the loaded payments and
// expenses on every access and never persisted. Callers must preload Pagos
// and Gastos first.

// GrossIncome is the sum of all payment amounts.
func (j *Job) GrossIncome() float64 {
	var total float64
	for _, p := range j.Pagos {
		total += p.Monto
	}
	return total
}

// TotalExpense is the sum of all expense amounts.
func (j *Job) TotalExpense() float64 {
	var total float64
	for _, g := range j.Gastos {
		total += g.Monto
	}
	return total
}

// NetIncome is gross income minus total expense.
func (j *Job) NetIncome() float64 {
	return j.GrossIncome() - j.TotalExpense()
}

// TotalHours is the sum of expense time values. Expenses without time
// contribute 0.
func (j *Job) TotalHours() float64 {
	var total float64
	for _, g := range j.Gastos {
		total += g.Tiempo
	}
	return total
}

// HourlyRate is net income divided by total hours, rounded to 2 decimals.
// When no hours were logged the rate is defined as 0, not an error.
func (j *Job) HourlyRate() float64 {
	hours := j.TotalHours()
	if hours > 0 {
		return math.Round(j.NetIncome()/hours*100) / 100
	}
	return 0
}
