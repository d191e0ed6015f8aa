package store

import (
	"time"

	"github.com/ccaruso/gestion-ingresos/internal/models"
	"gorm.io/gorm"
)

// Movement commands. References to the job, job type and supply are tagged
// variants: either an existing id or the material for a new row. The
// handler decodes and validates the request fully before this package
// touches the store, and the whole write happens in one transaction so a
// failed step leaves nothing behind.

const (
	MovementIngreso = "ingreso"
	MovementGasto   = "gasto"
)

type TipoRef struct {
	ID          uint
	NuevoNombre string
}

type NuevoTrabajo struct {
	Nombre string
	Fecha  time.Time
	Tipo   TipoRef
}

type TrabajoRef struct {
	ID    uint
	Nuevo *NuevoTrabajo
}

type InsumoRef struct {
	ID          uint
	NuevoNombre string
}

type Movement struct {
	Tipo    string // MovementIngreso or MovementGasto
	Fecha   time.Time
	Monto   float64
	Tiempo  float64
	Trabajo TrabajoRef
	Insumo  InsumoRef // gasto only
}

// RecordMovement creates the payment or expense, creating the referenced
// job, job type and supply inline when the tagged variants ask for it.
// Either everything commits or nothing does.
func (s *Store) RecordMovement(userID uint, m Movement) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		trabajo, err := resolveTrabajo(tx, userID, m.Trabajo)
		if err != nil {
			return err
		}

		if m.Tipo == MovementIngreso {
			pago := models.Payment{
				UserID:    userID,
				TrabajoID: trabajo.ID,
				Fecha:     m.Fecha,
				Monto:     m.Monto,
			}
			return tx.Create(&pago).Error
		}

		insumo, err := resolveInsumo(tx, userID, m.Insumo)
		if err != nil {
			return err
		}
		gasto := models.Expense{
			UserID:    userID,
			TrabajoID: trabajo.ID,
			InsumoID:  insumo.ID,
			Fecha:     m.Fecha,
			Monto:     m.Monto,
			Tiempo:    m.Tiempo,
		}
		return tx.Create(&gasto).Error
	})
}

func resolveTrabajo(tx *gorm.DB, userID uint, ref TrabajoRef) (*models.Job, error) {
	if ref.Nuevo == nil {
		var trabajo models.Job
		if err := tx.Where("id = ? AND user_id = ?", ref.ID, userID).First(&trabajo).Error; err != nil {
			return nil, asStoreErr(err)
		}
		return &trabajo, nil
	}

	tipo, err := resolveTipo(tx, userID, ref.Nuevo.Tipo)
	if err != nil {
		return nil, err
	}
	job := models.Job{
		UserID: userID,
		Nombre: ref.Nuevo.Nombre,
		Fecha:  ref.Nuevo.Fecha,
		TipoID: tipo.ID,
	}
	var existing int64
	if err := tx.Model(&models.Job{}).
		Where("user_id = ? AND nombre = ?", userID, job.Nombre).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrConflict
	}
	if err := tx.Create(&job).Error; err != nil {
		return nil, asStoreErr(err)
	}
	return &job, nil
}

func resolveTipo(tx *gorm.DB, userID uint, ref TipoRef) (*models.JobType, error) {
	if ref.NuevoNombre == "" {
		var tipo models.JobType
		if err := tx.Where("id = ? AND user_id = ?", ref.ID, userID).First(&tipo).Error; err != nil {
			return nil, asStoreErr(err)
		}
		return &tipo, nil
	}
	tipo := models.JobType{UserID: userID, Nombre: ref.NuevoNombre}
	if err := createJobTypeTx(tx, &tipo); err != nil {
		return nil, err
	}
	return &tipo, nil
}

func resolveInsumo(tx *gorm.DB, userID uint, ref InsumoRef) (*models.Supply, error) {
	if ref.NuevoNombre == "" {
		var insumo models.Supply
		if err := tx.Where("id = ? AND user_id = ?", ref.ID, userID).First(&insumo).Error; err != nil {
			return nil, asStoreErr(err)
		}
		return &insumo, nil
	}
	insumo := models.Supply{UserID: userID, Nombre: ref.NuevoNombre}
	if err := createSupplyTx(tx, &insumo); err != nil {
		return nil, err
	}
	return &insumo, nil
}
