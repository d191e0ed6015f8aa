package handlers

import (
	"net/http"
	"time"

	"github.com/ccaruso/gestion-ingresos/httpx"
	"github.com/ccaruso/gestion-ingresos/internal/store"
	"github.com/ccaruso/gestion-ingresos/validation"
)

type JobHandler struct {
	store *store.Store
}

func NewJobHandler(s *store.Store) *JobHandler {
	return &JobHandler{store: s}
}

type jobRequest struct {
	Nombre string `json:"nombre"`
	Fecha  string `json:"fecha"`
	TipoID uint   `json:"tipo_id"`
}

func (req jobRequest) validate() (time.Time, validation.Violations) {
	v := make(validation.Violations)
	validation.Required("nombre", req.Nombre, v)
	fecha := validation.Date("fecha", req.Fecha, v)
	if req.TipoID == 0 {
		v["tipo_id"] = "required"
	}
	return fecha, v
}

// List returns the user's jobs newest first, each with its derived totals.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	trabajos, err := h.store.Jobs(currentUserID(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	out := make([]map[string]any, 0, len(trabajos))
	for _, j := range trabajos {
		tipo := ""
		if j.Tipo != nil {
			tipo = j.Tipo.Nombre
		}
		out = append(out, map[string]any{
			"id":         j.ID,
			"nombre":     j.Nombre,
			"fecha":      fullDate(j.Fecha),
			"tipo":       tipo,
			"bruto":      j.GrossIncome(),
			"gasto":      j.TotalExpense(),
			"neto":       j.NetIncome(),
			"horas":      j.TotalHours(),
			"valor_hora": j.HourlyRate(),
		})
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	fecha, v := req.validate()
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	trabajo, err := h.store.CreateJob(currentUserID(r), req.Nombre, fecha, req.TipoID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"id": trabajo.ID, "nombre": trabajo.Nombre})
}

// CreateType creates a job type from the job form, returning the new id so
// the caller can select it without refetching the whole catalog.
func (h *JobHandler) CreateType(w http.ResponseWriter, r *http.Request) {
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
	tipo, err := h.store.CreateJobType(currentUserID(r), req.Nombre)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"id": tipo.ID, "nombre": tipo.Nombre})
}

// Detail returns one job with its payment and expense rows and derived totals.
func (h *JobHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	trabajo, err := h.store.JobDetail(currentUserID(r), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	pagos := make([]map[string]any, 0, len(trabajo.Pagos))
	for _, p := range trabajo.Pagos {
		pagos = append(pagos, map[string]any{
			"id":    p.ID,
			"fecha": fullDate(p.Fecha),
			"monto": p.Monto,
		})
	}
	gastos := make([]map[string]any, 0, len(trabajo.Gastos))
	for _, g := range trabajo.Gastos {
		insumo := ""
		if g.Insumo != nil {
			insumo = g.Insumo.Nombre
		}
		gastos = append(gastos, map[string]any{
			"id":     g.ID,
			"fecha":  fullDate(g.Fecha),
			"insumo": insumo,
			"monto":  g.Monto,
			"tiempo": g.Tiempo,
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"id":            trabajo.ID,
		"nombre":        trabajo.Nombre,
		"fecha":         fullDate(trabajo.Fecha),
		"pagos":         pagos,
		"gastos":        gastos,
		"bruto":         trabajo.GrossIncome(),
		"gastos_total":  trabajo.TotalExpense(),
		"neto":          trabajo.NetIncome(),
		"horas_totales": trabajo.TotalHours(),
		"valor_hora":    trabajo.HourlyRate(),
	})
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var req jobRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	fecha, v := req.validate()
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.store.UpdateJob(currentUserID(r), id, req.Nombre, fecha, req.TipoID); err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.Success(w)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err := h.store.DeleteJob(currentUserID(r), id); err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.Success(w)
}
