package store

import (
	"time"

	"github.com/ccaruso/gestion-ingresos/internal/models"
	"gorm.io/gorm"
)

// Jobs lists the user's jobs newest first, with payments and expenses
// loaded so derived metrics can be computed.
func (s *Store) Jobs(userID uint) ([]models.Job, error) {
	var trabajos []models.Job
	err := s.db.Where("user_id = ?", userID).
		Preload("Tipo").
		Preload("Pagos").
		Preload("Gastos").
		Order("fecha DESC").
		Find(&trabajos).Error
	return trabajos, err
}

// JobsForType lists the jobs of one job type, with rows loaded.
func (s *Store) JobsForType(userID, tipoID uint) ([]models.Job, error) {
	var trabajos []models.Job
	err := s.db.Where("user_id = ? AND tipo_id = ?", userID, tipoID).
		Preload("Tipo").
		Preload("Pagos").
		Preload("Gastos").
		Order("fecha").
		Find(&trabajos).Error
	return trabajos, err
}

func (s *Store) JobByID(userID, id uint) (*models.Job, error) {
	var trabajo models.Job
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&trabajo).Error; err != nil {
		return nil, asStoreErr(err)
	}
	return &trabajo, nil
}

// JobDetail loads a job with its payments, expenses and supply names.
func (s *Store) JobDetail(userID, id uint) (*models.Job, error) {
	var trabajo models.Job
	err := s.db.Where("id = ? AND user_id = ?", id, userID).
		Preload("Tipo").
		Preload("Pagos").
		Preload("Gastos").
		Preload("Gastos.Insumo").
		First(&trabajo).Error
	if err != nil {
		return nil, asStoreErr(err)
	}
	return &trabajo, nil
}

func (s *Store) CreateJob(userID uint, nombre string, fecha time.Time, tipoID uint) (*models.Job, error) {
	job := models.Job{UserID: userID, Nombre: nombre, Fecha: fecha, TipoID: tipoID}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return createJobTx(tx, &job)
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func createJobTx(tx *gorm.DB, job *models.Job) error {
	// The referenced type must belong to the same user.
	var tipo models.JobType
	if err := tx.Where("id = ? AND user_id = ?", job.TipoID, job.UserID).First(&tipo).Error; err != nil {
		return asStoreErr(err)
	}
	var existing int64
	if err := tx.Model(&models.Job{}).
		Where("user_id = ? AND nombre = ?", job.UserID, job.Nombre).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return ErrConflict
	}
	return asStoreErr(tx.Create(job).Error)
}

// UpdateJob edits name, date and type of an owned job.
func (s *Store) UpdateJob(userID, id uint, nombre string, fecha time.Time, tipoID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var trabajo models.Job
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&trabajo).Error; err != nil {
			return asStoreErr(err)
		}
		var tipo models.JobType
		if err := tx.Where("id = ? AND user_id = ?", tipoID, userID).First(&tipo).Error; err != nil {
			return asStoreErr(err)
		}
		var taken int64
		if err := tx.Model(&models.Job{}).
			Where("user_id = ? AND nombre = ? AND id <> ?", userID, nombre, id).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrConflict
		}
		trabajo.Nombre = nombre
		trabajo.Fecha = fecha
		trabajo.TipoID = tipoID
		return asStoreErr(tx.Save(&trabajo).Error)
	})
}

// DeleteJob removes a job and cascades to its payments and expenses in one
// transaction; no orphaned rows survive.
func (s *Store) DeleteJob(userID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var trabajo models.Job
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&trabajo).Error; err != nil {
			return asStoreErr(err)
		}
		if err := tx.Where("trabajo_id = ?", trabajo.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trabajo_id = ?", trabajo.ID).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		return tx.Delete(&trabajo).Error
	})
}

func (s *Store) DeletePayment(userID, id uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Payment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteExpense(userID, id uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Payments returns all of a user's payments newest first, with job names.
func (s *Store) Payments(userID uint) ([]models.Payment, error) {
	var pagos []models.Payment
	err := s.db.Where("user_id = ?", userID).
		Preload("Trabajo").
		Order("fecha DESC").
		Find(&pagos).Error
	return pagos, err
}

// Expenses returns all of a user's expenses newest first, with job and
// supply names.
func (s *Store) Expenses(userID uint) ([]models.Expense, error) {
	var gastos []models.Expense
	err := s.db.Where("user_id = ?", userID).
		Preload("Trabajo").
		Preload("Insumo").
		Order("fecha DESC").
		Find(&gastos).Error
	return gastos, err
}

// ExpensesForSupply returns the expenses charged against one supply,
// oldest first, with job and supply names.
func (s *Store) ExpensesForSupply(userID, insumoID uint) ([]models.Expense, error) {
	if _, err := s.SupplyByID(userID, insumoID); err != nil {
		return nil, err
	}
	var gastos []models.Expense
	err := s.db.Where("user_id = ? AND insumo_id = ?", userID, insumoID).
		Preload("Trabajo").
		Preload("Insumo").
		Order("fecha").
		Find(&gastos).Error
	return gastos, err
}
