package db

import (
	"testing"

	"github.com/ccaruso/gestion-ingresos/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	d, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := Migrate(d); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return d
}

func TestSeedIdempotent(t *testing.T) {
	d := openTestDB(t)
	if err := Seed(d); err != nil {
		t.Fatalf("seed: %v", err)
	}
	var tipos, trabajos, pagos, gastos int64
	d.Model(&models.JobType{}).Count(&tipos)
	d.Model(&models.Job{}).Count(&trabajos)
	d.Model(&models.Payment{}).Count(&pagos)
	d.Model(&models.Expense{}).Count(&gastos)
	if tipos != 5 || trabajos != 5 {
		t.Fatalf("expected 5 tipos and 5 trabajos, got %d/%d", tipos, trabajos)
	}
	if pagos == 0 || gastos == 0 {
		t.Fatal("expected seeded payments and expenses")
	}

	// Second run is a no-op.
	if err := Seed(d); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	var tipos2 int64
	d.Model(&models.JobType{}).Count(&tipos2)
	if tipos2 != tipos {
		t.Fatalf("seed not idempotent: %d -> %d tipos", tipos, tipos2)
	}
}

func TestMigrateEnforcesCompositeUniqueness(t *testing.T) {
	d := openTestDB(t)
	u1 := models.User{Email: "a@test", Name: "A"}
	u2 := models.User{Email: "b@test", Name: "B"}
	if err := d.Create(&u1).Error; err != nil {
		t.Fatalf("u1: %v", err)
	}
	if err := d.Create(&u2).Error; err != nil {
		t.Fatalf("u2: %v", err)
	}
	if err := d.Create(&models.JobType{UserID: u1.ID, Nombre: "mural"}).Error; err != nil {
		t.Fatalf("first mural: %v", err)
	}
	// Same name, same user: rejected by the index.
	if err := d.Create(&models.JobType{UserID: u1.ID, Nombre: "mural"}).Error; err == nil {
		t.Fatal("duplicate (user, nombre) accepted")
	}
	// Same name, different user: fine.
	if err := d.Create(&models.JobType{UserID: u2.ID, Nombre: "mural"}).Error; err != nil {
		t.Fatalf("other user's mural rejected: %v", err)
	}
}
