package handlers

import (
	"net/http"

	"github.com/ccaruso/gestion-ingresos/httpx"
	"github.com/ccaruso/gestion-ingresos/internal/services"
	"github.com/ccaruso/gestion-ingresos/internal/store"
	"github.com/ccaruso/gestion-ingresos/validation"
)

type SupplyHandler struct {
	store *store.Store
}

func NewSupplyHandler(s *store.Store) *SupplyHandler {
	return &SupplyHandler{store: s}
}

type nameRequest struct {
	Nombre string `json:"nombre"`
}

func (h *SupplyHandler) List(w http.ResponseWriter, r *http.Request) {
	insumos, err := h.store.Supplies(currentUserID(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, insumos)
}

func (h *SupplyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v := make(validation.Violations)
	validation.Required("nombre", req.Nombre, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if _, err := h.store.CreateSupply(currentUserID(r), req.Nombre); err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.Success(w)
}

func (h *SupplyHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v := make(validation.Violations)
	validation.Required("nombre", req.Nombre, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.store.RenameSupply(currentUserID(r), id, req.Nombre); err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.Success(w)
}

func (h *SupplyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err := h.store.DeleteSupply(currentUserID(r), id); err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.Success(w)
}

// Summary returns the compact per-month series for one supply, oldest
// month first.
func (h *SupplyHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	gastos, err := h.store.ExpensesForSupply(currentUserID(r), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	serie := services.SupplySeries(gastos)
	out := make([]map[string]any, 0, len(serie))
	for _, p := range serie {
		out = append(out, map[string]any{
			"mes":    p.Key.String(),
			"total":  p.Total,
			"tiempo": p.Tiempo,
		})
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Detail lists the expenses behind one month bucket of the series.
func (h *SupplyHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	key, err := services.ParseMonthKey(r.PathValue("month"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_month", nil)
		return
	}
	gastos, err := h.store.ExpensesForSupply(currentUserID(r), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	out := make([]map[string]any, 0)
	for _, g := range services.ExpensesInMonth(gastos, key) {
		row := map[string]any{
			"fecha":  shortDate(g.Fecha),
			"tiempo": g.Tiempo,
			"monto":  int(g.Monto),
		}
		if g.Trabajo != nil {
			row["trabajo"] = g.Trabajo.Nombre
		}
		if g.Insumo != nil {
			row["insumo"] = g.Insumo.Nombre
		}
		out = append(out, row)
	}
	httpx.JSON(w, http.StatusOK, out)
}
