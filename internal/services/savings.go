package services

import (
	"time"

	"github.com/ccaruso/gestion-ingresos/internal/models"
)

// Savings recommendation: for a given month, the raw net is reported as-is
// (it may be negative) while the amount considered available to save is
// floored at zero before tiers apply. The asymmetry is deliberate.

// SavingsTier is one fixed savings level.
type SavingsTier struct {
	Porcentaje int     `json:"porcentaje"`
	Monto      float64 `json:"monto"`
}

// MonthSavings is the recommendation for one month.
type MonthSavings struct {
	Key     MonthKey
	Total   float64
	Ahorros map[string]SavingsTier
}

var savingsTiers = []struct {
	nombre     string
	porcentaje int
}{
	{"Conservador", 10},
	{"Equilibrado", 20},
	{"Ambicioso", 30},
}

// RecommendationMonths returns the current month and the one before it,
// wrapping the year boundary at January.
func RecommendationMonths(now time.Time) [2]MonthKey {
	current := KeyOf(now)
	return [2]MonthKey{current, current.Previous()}
}

// MonthNet sums the user's payments minus expenses restricted to one month.
// Absent rows contribute 0.
func MonthNet(key MonthKey, pagos []models.Payment, gastos []models.Expense) float64 {
	var ingresos, salidas float64
	for _, p := range pagos {
		if key.Contains(p.Fecha) {
			ingresos += p.Monto
		}
	}
	for _, g := range gastos {
		if key.Contains(g.Fecha) {
			salidas += g.Monto
		}
	}
	return ingresos - salidas
}

// SavingsForMonth computes the month's raw net and its three savings tiers.
func SavingsForMonth(key MonthKey, pagos []models.Payment, gastos []models.Expense) MonthSavings {
	total := MonthNet(key, pagos, gastos)
	base := total
	if base < 0 {
		base = 0 // never recommend saving a negative amount
	}
	ahorros := make(map[string]SavingsTier, len(savingsTiers))
	for _, tier := range savingsTiers {
		ahorros[tier.nombre] = SavingsTier{
			Porcentaje: tier.porcentaje,
			Monto:      round2(base * float64(tier.porcentaje) / 100),
		}
	}
	return MonthSavings{Key: key, Total: total, Ahorros: ahorros}
}
