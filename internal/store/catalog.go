package store

import (
	"github.com/ccaruso/gestion-ingresos/internal/models"
	"gorm.io/gorm"
)

// Catalog entities: supplies and job types. Both share the same policies:
// (user, nombre) must be unique, and rows with dependents cannot be deleted.

func (s *Store) Supplies(userID uint) ([]models.Supply, error) {
	var insumos []models.Supply
	err := s.db.Where("user_id = ?", userID).Order("nombre").Find(&insumos).Error
	return insumos, err
}

func (s *Store) SupplyByID(userID, id uint) (*models.Supply, error) {
	var insumo models.Supply
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&insumo).Error; err != nil {
		return nil, asStoreErr(err)
	}
	return &insumo, nil
}

func (s *Store) CreateSupply(userID uint, nombre string) (*models.Supply, error) {
	insumo := models.Supply{UserID: userID, Nombre: nombre}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return createSupplyTx(tx, &insumo)
	})
	if err != nil {
		return nil, err
	}
	return &insumo, nil
}

func createSupplyTx(tx *gorm.DB, insumo *models.Supply) error {
	var existing int64
	if err := tx.Model(&models.Supply{}).
		Where("user_id = ? AND nombre = ?", insumo.UserID, insumo.Nombre).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return ErrConflict
	}
	return asStoreErr(tx.Create(insumo).Error)
}

func (s *Store) RenameSupply(userID, id uint, nombre string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var insumo models.Supply
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&insumo).Error; err != nil {
			return asStoreErr(err)
		}
		var taken int64
		if err := tx.Model(&models.Supply{}).
			Where("user_id = ? AND nombre = ? AND id <> ?", userID, nombre, id).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrConflict
		}
		insumo.Nombre = nombre
		return asStoreErr(tx.Save(&insumo).Error)
	})
}

// DeleteSupply refuses to delete a supply that still has expenses; the
// caller gets ErrConflict and both sides stay intact.
func (s *Store) DeleteSupply(userID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var insumo models.Supply
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&insumo).Error; err != nil {
			return asStoreErr(err)
		}
		var dependents int64
		if err := tx.Model(&models.Expense{}).Where("insumo_id = ?", insumo.ID).Count(&dependents).Error; err != nil {
			return err
		}
		if dependents > 0 {
			return ErrConflict
		}
		return tx.Delete(&insumo).Error
	})
}

func (s *Store) JobTypes(userID uint) ([]models.JobType, error) {
	var tipos []models.JobType
	err := s.db.Where("user_id = ?", userID).Order("nombre").Find(&tipos).Error
	return tipos, err
}

func (s *Store) JobTypeByID(userID, id uint) (*models.JobType, error) {
	var tipo models.JobType
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&tipo).Error; err != nil {
		return nil, asStoreErr(err)
	}
	return &tipo, nil
}

func (s *Store) CreateJobType(userID uint, nombre string) (*models.JobType, error) {
	tipo := models.JobType{UserID: userID, Nombre: nombre}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return createJobTypeTx(tx, &tipo)
	})
	if err != nil {
		return nil, err
	}
	return &tipo, nil
}

func createJobTypeTx(tx *gorm.DB, tipo *models.JobType) error {
	var existing int64
	if err := tx.Model(&models.JobType{}).
		Where("user_id = ? AND nombre = ?", tipo.UserID, tipo.Nombre).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return ErrConflict
	}
	return asStoreErr(tx.Create(tipo).Error)
}

func (s *Store) RenameJobType(userID, id uint, nombre string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var tipo models.JobType
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&tipo).Error; err != nil {
			return asStoreErr(err)
		}
		var taken int64
		if err := tx.Model(&models.JobType{}).
			Where("user_id = ? AND nombre = ? AND id <> ?", userID, nombre, id).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrConflict
		}
		tipo.Nombre = nombre
		return asStoreErr(tx.Save(&tipo).Error)
	})
}

func (s *Store) DeleteJobType(userID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var tipo models.JobType
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&tipo).Error; err != nil {
			return asStoreErr(err)
		}
		var dependents int64
		if err := tx.Model(&models.Job{}).Where("tipo_id = ?", tipo.ID).Count(&dependents).Error; err != nil {
			return err
		}
		if dependents > 0 {
			return ErrConflict
		}
		return tx.Delete(&tipo).Error
	})
}
