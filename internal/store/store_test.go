package store

import (
	"errors"
	"testing"
	"time"

	"github.com/ccaruso/gestion-ingresos/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.JobType{}, &models.Supply{}, &models.Job{}, &models.Payment{}, &models.Expense{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()
	u := models.User{Email: email, Name: email}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	return u.ID
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateSupplyDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	s := New(db)
	alice := seedUser(t, db, "alice@test")
	bob := seedUser(t, db, "bob@test")

	if _, err := s.CreateSupply(alice, "pinturas"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := s.CreateSupply(alice, "pinturas"); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate create: got %v, want ErrConflict", err)
	}
	// A different user can have their own "pinturas".
	if _, err := s.CreateSupply(bob, "pinturas"); err != nil {
		t.Fatalf("other user's create: %v", err)
	}
}

func TestRenameSupplyConflict(t *testing.T) {
	db := setupTestDB(t)
	s := New(db)
	alice := seedUser(t, db, "alice@test")
	a, _ := s.CreateSupply(alice, "uber")
	if _, err := s.CreateSupply(alice, "comida"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := s.RenameSupply(alice, a.ID, "comida"); !errors.Is(err, ErrConflict) {
		t.Fatalf("rename onto taken name: got %v, want ErrConflict", err)
	}
	if err := s.RenameSupply(alice, a.ID, "colectivo"); err != nil {
		t.Fatalf("rename: %v", err)
	}
}

func TestDeleteSupplyWithDependents(t *testing.T) {
	db := setupTestDB(t)
	s := New(db)
	alice := seedUser(t, db, "alice@test")
	tipo, _ := s.CreateJobType(alice, "mural")
	job, _ := s.CreateJob(alice, "Mural Coco", day(2024, 1, 1), tipo.ID)
	insumo, _ := s.CreateSupply(alice, "pinturas")
	if err := s.RecordMovement(alice, Movement{
		Tipo:    MovementGasto,
		Fecha:   day(2024, 1, 2),
		Monto:   5000,
		Trabajo: TrabajoRef{ID: job.ID},
		Insumo:  InsumoRef{ID: insumo.ID},
	}); err != nil {
		t.Fatalf("gasto: %v", err)
	}

	if err := s.DeleteSupply(alice, insumo.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("delete with dependents: got %v, want ErrConflict", err)
	}
	// Supply and expense both intact.
	if _, err := s.SupplyByID(alice, insumo.ID); err != nil {
		t.Fatalf("supply vanished: %v", err)
	}
	var gastos int64
	db.Model(&models.Expense{}).Count(&gastos)
	if gastos != 1 {
		t.Fatalf("expense count = %d, want 1", gastos)
	}
}

func TestDeleteJobTypeWithDependents(t *testing.T) {
	db := setupTestDB(t)
	s := New(db)
	alice := seedUser(t, db, "alice@test")
	tipo, _ := s.CreateJobType(alice, "evento")
	if _, err := s.CreateJob(alice, "Feria", day(2024, 3, 5), tipo.ID); err != nil {
		t.Fatalf("job: %v", err)
	}
	if err := s.DeleteJobType(alice, tipo.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("delete with dependents: got %v, want ErrConflict", err)
	}
}

func TestCrossUserIsolation(t *testing.T) {
	db := setupTestDB(t)
	s := New(db)
	alice := seedUser(t, db, "alice@test")
	bob := seedUser(t, db, "bob@test")

	tipo, _ := s.CreateJobType(alice, "mural")
	job, _ := s.CreateJob(alice, "Mural Coco", day(2024, 1, 1), tipo.ID)
	insumo, _ := s.CreateSupply(alice, "pinturas")

	if _, err := s.JobByID(bob, job.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign job lookup: got %v, want ErrNotFound", err)
	}
	if _, err := s.SupplyByID(bob, insumo.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign supply lookup: got %v, want ErrNotFound", err)
	}
	if _, err := s.JobTypeByID(bob, tipo.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign type lookup: got %v, want ErrNotFound", err)
	}
	if err := s.DeleteJob(bob, job.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign job delete: got %v, want ErrNotFound", err)
	}
	if err := s.RenameSupply(bob, insumo.ID, "robado"); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign supply rename: got %v, want ErrNotFound", err)
	}
	// Referencing a foreign job in a movement is not found either.
	err := s.RecordMovement(bob, Movement{
		Tipo:    MovementIngreso,
		Fecha:   day(2024, 1, 2),
		Monto:   100,
		Trabajo: TrabajoRef{ID: job.ID},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign job movement: got %v, want ErrNotFound", err)
	}
}

func TestDeleteJobCascades(t *testing.T) {
	db := setupTestDB(t)
	s := New(db)
	alice := seedUser(t, db, "alice@test")
	tipo, _ := s.CreateJobType(alice, "mural")
	job, _ := s.CreateJob(alice, "Mural Coco", day(2024, 1, 1), tipo.ID)
	insumo, _ := s.CreateSupply(alice, "pinturas")

	for _, m := range []Movement{
		{Tipo: MovementIngreso, Fecha: day(2024, 1, 1), Monto: 30000, Trabajo: TrabajoRef{ID: job.ID}},
		{Tipo: MovementIngreso, Fecha: day(2024, 1, 3), Monto: 50000, Trabajo: TrabajoRef{ID: job.ID}},
		{Tipo: MovementGasto, Fecha: day(2024, 1, 2), Monto: 5000, Trabajo: TrabajoRef{ID: job.ID}, Insumo: InsumoRef{ID: insumo.ID}},
	} {
		if err := s.RecordMovement(alice, m); err != nil {
			t.Fatalf("movement: %v", err)
		}
	}

	if err := s.DeleteJob(alice, job.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var pagos, gastos int64
	db.Model(&models.Payment{}).Where("trabajo_id = ?", job.ID).Count(&pagos)
	db.Model(&models.Expense{}).Where("trabajo_id = ?", job.ID).Count(&gastos)
	if pagos != 0 || gastos != 0 {
		t.Fatalf("orphans left behind: %d pagos, %d gastos", pagos, gastos)
	}
}

func TestRecordMovementInlineCreationIsAtomic(t *testing.T) {
	db := setupTestDB(t)
	s := New(db)
	alice := seedUser(t, db, "alice@test")

	// Expense referencing a nonexistent supply: the inline-created type and
	// job must be rolled back too.
	err := s.RecordMovement(alice, Movement{
		Tipo:  MovementGasto,
		Fecha: day(2024, 1, 5),
		Monto: 350,
		Trabajo: TrabajoRef{Nuevo: &NuevoTrabajo{
			Nombre: "Mural Coco",
			Fecha:  day(2024, 1, 1),
			Tipo:   TipoRef{NuevoNombre: "mural"},
		}},
		Insumo: InsumoRef{ID: 999},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var tipos, trabajos int64
	db.Model(&models.JobType{}).Count(&tipos)
	db.Model(&models.Job{}).Count(&trabajos)
	if tipos != 0 || trabajos != 0 {
		t.Fatalf("partial creation survived rollback: %d tipos, %d trabajos", tipos, trabajos)
	}
}

func TestRecordMovementInlineCreation(t *testing.T) {
	db := setupTestDB(t)
	s := New(db)
	alice := seedUser(t, db, "alice@test")

	err := s.RecordMovement(alice, Movement{
		Tipo:   MovementGasto,
		Fecha:  day(2024, 1, 5),
		Monto:  350,
		Tiempo: 2,
		Trabajo: TrabajoRef{Nuevo: &NuevoTrabajo{
			Nombre: "Mural Coco",
			Fecha:  day(2024, 1, 1),
			Tipo:   TipoRef{NuevoNombre: "mural"},
		}},
		Insumo: InsumoRef{NuevoNombre: "colectivo"},
	})
	if err != nil {
		t.Fatalf("movement: %v", err)
	}

	var gasto models.Expense
	if err := db.Preload("Trabajo").Preload("Insumo").First(&gasto).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if gasto.Trabajo == nil || gasto.Trabajo.Nombre != "Mural Coco" {
		t.Fatal("expense not linked to inline-created job")
	}
	if gasto.Insumo == nil || gasto.Insumo.Nombre != "colectivo" {
		t.Fatal("expense not linked to inline-created supply")
	}
}

func TestUpsertLogin(t *testing.T) {
	db := setupTestDB(t)
	s := New(db)

	u1, err := s.UpsertLogin("caro@test", "Carolina", "http://img/1.png")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}

	// Second login with a changed name only refreshes the avatar.
	u2, err := s.UpsertLogin("caro@test", "Someone Else", "http://img/2.png")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if u2.ID != u1.ID {
		t.Fatalf("second login created a new user: %d vs %d", u2.ID, u1.ID)
	}
	if u2.Name != "Carolina" {
		t.Errorf("name mutated on re-login: %s", u2.Name)
	}
	if u2.AvatarURL != "http://img/2.png" {
		t.Errorf("avatar not refreshed: %s", u2.AvatarURL)
	}
}
