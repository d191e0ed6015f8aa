package handlers

import (
	"net/http"

	"github.com/ccaruso/gestion-ingresos/httpx"
	"github.com/ccaruso/gestion-ingresos/internal/services"
	"github.com/ccaruso/gestion-ingresos/internal/store"
	"github.com/ccaruso/gestion-ingresos/validation"
)

type MovementHandler struct {
	store *store.Store
}

func NewMovementHandler(s *store.Store) *MovementHandler {
	return &MovementHandler{store: s}
}

// Tagged references: exactly one of "id" or "nuevo" must be set. The
// request is decoded and validated in full before the store is touched.

type tipoRefRequest struct {
	ID    uint `json:"id"`
	Nuevo *struct {
		Nombre string `json:"nombre"`
	} `json:"nuevo"`
}

type trabajoRefRequest struct {
	ID    uint `json:"id"`
	Nuevo *struct {
		Nombre string          `json:"nombre"`
		Fecha  string          `json:"fecha"`
		Tipo   *tipoRefRequest `json:"tipo"`
	} `json:"nuevo"`
}

type insumoRefRequest struct {
	ID    uint `json:"id"`
	Nuevo *struct {
		Nombre string `json:"nombre"`
	} `json:"nuevo"`
}

type movementRequest struct {
	Tipo    string             `json:"tipo"`
	Fecha   string             `json:"fecha"`
	Monto   float64            `json:"monto"`
	Tiempo  float64            `json:"tiempo"`
	Trabajo *trabajoRefRequest `json:"trabajo"`
	Insumo  *insumoRefRequest  `json:"insumo"`
}

func (req movementRequest) validate() (store.Movement, validation.Violations) {
	v := make(validation.Violations)

	if req.Tipo != store.MovementIngreso && req.Tipo != store.MovementGasto {
		v["tipo"] = "must_be_ingreso_or_gasto"
	}
	fecha := validation.Date("fecha", req.Fecha, v)
	if req.Tipo == store.MovementIngreso {
		validation.PositiveFloat("monto", req.Monto, v)
	} else {
		validation.NonNegativeFloat("monto", req.Monto, v)
		validation.NonNegativeFloat("tiempo", req.Tiempo, v)
	}

	m := store.Movement{Tipo: req.Tipo, Fecha: fecha, Monto: req.Monto, Tiempo: req.Tiempo}

	switch {
	case req.Trabajo == nil:
		v["trabajo"] = "required"
	case req.Trabajo.Nuevo != nil && req.Trabajo.ID != 0:
		v["trabajo"] = "id_or_nuevo"
	case req.Trabajo.Nuevo != nil:
		nuevo := req.Trabajo.Nuevo
		if nuevo.Nombre == "" {
			v["trabajo.nombre"] = "required"
		}
		jobFecha := validation.Date("trabajo.fecha", nuevo.Fecha, v)
		tipoRef, ok := validateTipoRef(nuevo.Tipo, v)
		if ok {
			m.Trabajo = store.TrabajoRef{Nuevo: &store.NuevoTrabajo{
				Nombre: nuevo.Nombre,
				Fecha:  jobFecha,
				Tipo:   tipoRef,
			}}
		}
	case req.Trabajo.ID != 0:
		m.Trabajo = store.TrabajoRef{ID: req.Trabajo.ID}
	default:
		v["trabajo"] = "id_or_nuevo"
	}

	if req.Tipo == store.MovementGasto {
		switch {
		case req.Insumo == nil:
			v["insumo"] = "required"
		case req.Insumo.Nuevo != nil && req.Insumo.ID != 0:
			v["insumo"] = "id_or_nuevo"
		case req.Insumo.Nuevo != nil:
			if req.Insumo.Nuevo.Nombre == "" {
				v["insumo.nombre"] = "required"
			} else {
				m.Insumo = store.InsumoRef{NuevoNombre: req.Insumo.Nuevo.Nombre}
			}
		case req.Insumo.ID != 0:
			m.Insumo = store.InsumoRef{ID: req.Insumo.ID}
		default:
			v["insumo"] = "id_or_nuevo"
		}
	}

	return m, v
}

func validateTipoRef(ref *tipoRefRequest, v validation.Violations) (store.TipoRef, bool) {
	switch {
	case ref == nil:
		v["trabajo.tipo"] = "required"
	case ref.Nuevo != nil && ref.ID != 0:
		v["trabajo.tipo"] = "id_or_nuevo"
	case ref.Nuevo != nil:
		if ref.Nuevo.Nombre == "" {
			v["trabajo.tipo.nombre"] = "required"
			return store.TipoRef{}, false
		}
		return store.TipoRef{NuevoNombre: ref.Nuevo.Nombre}, true
	case ref.ID != 0:
		return store.TipoRef{ID: ref.ID}, true
	default:
		v["trabajo.tipo"] = "id_or_nuevo"
	}
	return store.TipoRef{}, false
}

// Record creates a payment or an expense, resolving the tagged job, job
// type and supply references within one transaction.
func (h *MovementHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req movementRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	m, v := req.validate()
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if err := h.store.RecordMovement(currentUserID(r), m); err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.Success(w)
}

// AnnualSummary groups the user's payments and expenses by calendar year.
func (h *MovementHandler) AnnualSummary(w http.ResponseWriter, r *http.Request) {
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
	httpx.JSON(w, http.StatusOK, map[string]any{
		"resumen_anual": services.AnnualSummary(pagos, gastos),
	})
}

func (h *MovementHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err := h.store.DeletePayment(currentUserID(r), id); err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.Success(w)
}

func (h *MovementHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err := h.store.DeleteExpense(currentUserID(r), id); err != nil {
		writeStoreError(w, err)
		return
	}
	httpx.Success(w)
}
