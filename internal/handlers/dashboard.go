package handlers

import (
	"net/http"

	"github.com/ccaruso/gestion-ingresos/httpx"
	"github.com/ccaruso/gestion-ingresos/i18n"
	"github.com/ccaruso/gestion-ingresos/internal/services"
	"github.com/ccaruso/gestion-ingresos/internal/store"
)

type DashboardHandler struct {
	store *store.Store
}

func NewDashboardHandler(s *store.Store) *DashboardHandler {
	return &DashboardHandler{store: s}
}

// Index renders the global monthly rollup: every payment and expense
// bucketed by its own calendar month, newest month first.
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
	lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))

	pagos, err := h.store.Payments(userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	gastos, err := h.store.Expenses(userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	buckets := services.MonthlySummary(pagos, gastos)
	meses := make([]map[string]any, 0, len(buckets))
	for _, b := range buckets {
		pagoRows := make([]map[string]any, 0, len(b.Pagos))
		for _, p := range b.Pagos {
			row := map[string]any{"id": p.ID, "fecha": shortDate(p.Fecha), "monto": p.Monto}
			if p.Trabajo != nil {
				row["trabajo"] = p.Trabajo.Nombre
			}
			pagoRows = append(pagoRows, row)
		}
		gastoRows := make([]map[string]any, 0, len(b.Gastos))
		for _, g := range b.Gastos {
			row := map[string]any{"id": g.ID, "fecha": shortDate(g.Fecha), "monto": g.Monto, "tiempo": g.Tiempo}
			if g.Trabajo != nil {
				row["trabajo"] = g.Trabajo.Nombre
			}
			if g.Insumo != nil {
				row["insumo"] = g.Insumo.Nombre
			}
			gastoRows = append(gastoRows, row)
		}
		meses = append(meses, map[string]any{
			"mes":            b.Key.String(),
			"label":          i18n.MonthLabel(lang, b.Key.Year, b.Key.Month),
			"pagos":          pagoRows,
			"gastos":         gastoRows,
			"total_ingresos": b.TotalIngresos,
			"total_gastos":   b.TotalGastos,
			"neto":           b.Neto(),
		})
	}

	httpx.JSON(w, http.StatusOK, map[string]any{"meses": meses})
}
