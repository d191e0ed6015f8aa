package handlers

import (
	"net/http"
	"time"

	"github.com/ccaruso/gestion-ingresos/httpx"
	"github.com/ccaruso/gestion-ingresos/i18n"
	"github.com/ccaruso/gestion-ingresos/internal/services"
	"github.com/ccaruso/gestion-ingresos/internal/store"
)

type RecommendationHandler struct {
	store *store.Store
	now   func() time.Time
}

func NewRecommendationHandler(s *store.Store) *RecommendationHandler {
	return &RecommendationHandler{store: s, now: time.Now}
}

// Savings returns the savings recommendation for the current and previous
// month, with a localized month label per the request's Accept-Language.
func (h *RecommendationHandler) Savings(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r)
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

	lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
	meses := services.RecommendationMonths(h.now())
	datos := make([]map[string]any, 0, len(meses))
	for _, key := range meses {
		rec := services.SavingsForMonth(key, pagos, gastos)
		datos = append(datos, map[string]any{
			"year":           key.Year,
			"month":          int(key.Month),
			"mes_formateado": i18n.MonthYearLabel(lang, key.Year, key.Month),
			"total":          rec.Total,
			"ahorros":        rec.Ahorros,
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"datos": datos})
}
