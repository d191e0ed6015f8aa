package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/ccaruso/gestion-ingresos/internal/models"
)

func TestSupplyCreateAndList(t *testing.T) {
	s, db := setupHandlerTest(t)
	uid := seedUser(t, db, "caro@test")
	h := NewSupplyHandler(s)

	rec := httptest.NewRecorder()
	h.Create(rec, request(t, http.MethodPost, "/supplies", uid, map[string]string{"nombre": "pinturas"}, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d body=%s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.List(rec, request(t, http.MethodGet, "/supplies", uid, nil, nil))
	var insumos []models.Supply
	decode(t, rec, &insumos)
	if len(insumos) != 1 || insumos[0].Nombre != "pinturas" {
		t.Fatalf("list = %+v", insumos)
	}
}

func TestSupplyCreateValidation(t *testing.T) {
	s, db := setupHandlerTest(t)
	uid := seedUser(t, db, "caro@test")
	h := NewSupplyHandler(s)

	rec := httptest.NewRecorder()
	h.Create(rec, request(t, http.MethodPost, "/supplies", uid, map[string]string{"nombre": "  "}, nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	decode(t, rec, &body)
	if body.Error != "validation_failed" || body.Details["nombre"] != "required" {
		t.Fatalf("body = %+v", body)
	}
}

func TestSupplyCreateDuplicateConflict(t *testing.T) {
	s, db := setupHandlerTest(t)
	uid := seedUser(t, db, "caro@test")
	h := NewSupplyHandler(s)

	for i, want := range []int{http.StatusOK, http.StatusConflict} {
		rec := httptest.NewRecorder()
		h.Create(rec, request(t, http.MethodPost, "/supplies", uid, map[string]string{"nombre": "colectivo"}, nil))
		if rec.Code != want {
			t.Fatalf("create #%d status = %d, want %d", i+1, rec.Code, want)
		}
	}
}

func TestSupplyDeleteWithDependents(t *testing.T) {
	s, db := setupHandlerTest(t)
	uid := seedUser(t, db, "caro@test")
	tipo, _ := s.CreateJobType(uid, "mural")
	insumo, _ := s.CreateSupply(uid, "pinturas")
	trabajo, _ := s.CreateJob(uid, "Mural Coco", day(2024, time.March, 1), tipo.ID)
	db.Create(&models.Expense{UserID: uid, TrabajoID: trabajo.ID, InsumoID: insumo.ID, Fecha: day(2024, time.March, 2), Monto: 50})

	h := NewSupplyHandler(s)
	rec := httptest.NewRecorder()
	h.Delete(rec, request(t, http.MethodDelete, "/supplies/1", uid, nil, map[string]string{"id": strconv.Itoa(int(insumo.ID))}))
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	var count int64
	db.Model(&models.Supply{}).Count(&count)
	if count != 1 {
		t.Fatalf("supply rows = %d, want 1", count)
	}
}

func TestSupplyRenameOtherUsersRow(t *testing.T) {
	s, db := setupHandlerTest(t)
	alice := seedUser(t, db, "alice@test")
	bob := seedUser(t, db, "bob@test")
	insumo, _ := s.CreateSupply(alice, "pinturas")

	h := NewSupplyHandler(s)
	rec := httptest.NewRecorder()
	h.Rename(rec, request(t, http.MethodPut, "/supplies/1", bob, map[string]string{"nombre": "robadas"}, map[string]string{"id": strconv.Itoa(int(insumo.ID))}))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestSupplySummaryAndDetail(t *testing.T) {
	s, db := setupHandlerTest(t)
	uid := seedUser(t, db, "caro@test")
	tipo, _ := s.CreateJobType(uid, "mural")
	insumo, _ := s.CreateSupply(uid, "pinturas")
	trabajo, _ := s.CreateJob(uid, "Mural Coco", day(2024, time.March, 1), tipo.ID)
	db.Create(&models.Expense{UserID: uid, TrabajoID: trabajo.ID, InsumoID: insumo.ID, Fecha: day(2024, time.March, 5), Monto: 100.9, Tiempo: 2})
	db.Create(&models.Expense{UserID: uid, TrabajoID: trabajo.ID, InsumoID: insumo.ID, Fecha: day(2024, time.March, 20), Monto: 50, Tiempo: 1})
	db.Create(&models.Expense{UserID: uid, TrabajoID: trabajo.ID, InsumoID: insumo.ID, Fecha: day(2024, time.April, 1), Monto: 10})

	h := NewSupplyHandler(s)
	id := strconv.Itoa(int(insumo.ID))

	rec := httptest.NewRecorder()
	h.Summary(rec, request(t, http.MethodGet, "/supplies/1/summary", uid, nil, map[string]string{"id": id}))
	var serie []struct {
		Mes    string  `json:"mes"`
		Total  int     `json:"total"`
		Tiempo float64 `json:"tiempo"`
	}
	decode(t, rec, &serie)
	if len(serie) != 2 {
		t.Fatalf("serie = %+v", serie)
	}
	// Oldest first; the money total drops the fraction.
	if serie[0].Mes != "03-2024" || serie[0].Total != 150 || serie[0].Tiempo != 3 {
		t.Fatalf("marzo = %+v", serie[0])
	}

	rec = httptest.NewRecorder()
	h.Detail(rec, request(t, http.MethodGet, "/supplies/1/detail/03-2024", uid, nil, map[string]string{"id": id, "month": "03-2024"}))
	var rows []struct {
		Fecha   string `json:"fecha"`
		Monto   int    `json:"monto"`
		Trabajo string `json:"trabajo"`
		Insumo  string `json:"insumo"`
	}
	decode(t, rec, &rows)
	if len(rows) != 2 {
		t.Fatalf("rows = %+v", rows)
	}
	if rows[0].Trabajo != "Mural Coco" || rows[0].Insumo != "pinturas" {
		t.Fatalf("row = %+v", rows[0])
	}
}

func TestSupplyDetailMalformedMonth(t *testing.T) {
	s, db := setupHandlerTest(t)
	uid := seedUser(t, db, "caro@test")
	insumo, _ := s.CreateSupply(uid, "pinturas")

	h := NewSupplyHandler(s)
	rec := httptest.NewRecorder()
	h.Detail(rec, request(t, http.MethodGet, "/supplies/1/detail/2024-03", uid, nil,
		map[string]string{"id": strconv.Itoa(int(insumo.ID)), "month": "2024-03"}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	decode(t, rec, &body)
	if body.Error != "invalid_month" {
		t.Fatalf("error = %q", body.Error)
	}
}
