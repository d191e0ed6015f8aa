package handlers

import (
	"net/http"

	"github.com/ccaruso/gestion-ingresos/httpx"
	"github.com/ccaruso/gestion-ingresos/internal/services"
	"github.com/ccaruso/gestion-ingresos/internal/store"
	"github.com/ccaruso/gestion-ingresos/validation"
)

type JobTypeHandler struct {
	store *store.Store
}

func NewJobTypeHandler(s *store.Store) *JobTypeHandler {
	return &JobTypeHandler{store: s}
}

func (h *JobTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	tipos, err := h.store.JobTypes(currentUserID(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, tipos)
}

func (h *JobTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
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
	if _, err := h.store.CreateJobType(currentUserID(r), req.Nombre); err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.Success(w)
}

func (h *JobTypeHandler) Rename(w http.ResponseWriter, r *http.Request) {
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
	if err := h.store.RenameJobType(currentUserID(r), id, req.Nombre); err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.Success(w)
}

func (h *JobTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err := h.store.DeleteJobType(currentUserID(r), id); err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.Success(w)
}

// Summary returns the per-month series for one job type. Jobs are bucketed
// by the job's date; each point aggregates the jobs' payments and expenses.
func (h *JobTypeHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	userID := currentUserID(r)
	if _, err := h.store.JobTypeByID(userID, id); err != nil {
		writeStoreError(w, err)
		return
	}
	trabajos, err := h.store.JobsForType(userID, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	serie := services.JobTypeSeries(trabajos)
	out := make([]map[string]any, 0, len(serie))
	for _, p := range serie {
		out = append(out, map[string]any{
			"mes":   p.Key.String(),
			"bruto": p.Bruto,
			"gasto": p.Gasto,
			"neto":  p.Neto(),
		})
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Detail lists the jobs behind one month bucket with their derived totals.
func (h *JobTypeHandler) Detail(w http.ResponseWriter, r *http.Request) {
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
	userID := currentUserID(r)
	tipo, err := h.store.JobTypeByID(userID, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	trabajos, err := h.store.JobsForType(userID, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	out := make([]map[string]any, 0)
	for _, j := range services.JobsInMonth(trabajos, key) {
		out = append(out, map[string]any{
			"fecha":   shortDate(j.Fecha),
			"tipo":    tipo.Nombre,
			"trabajo": j.Nombre,
			"bruto":   j.GrossIncome(),
			"gasto":   j.TotalExpense(),
			"neto":    j.NetIncome(),
		})
	}
	httpx.JSON(w, http.StatusOK, out)
}
