package store

import (
	"errors"

	"github.com/ccaruso/gestion-ingresos/internal/models"
	"gorm.io/gorm"
)

// UserByID is used by the session verifier.
func (s *Store) UserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, asStoreErr(err)
	}
	return &user, nil
}

// UpsertLogin implements the first-login lifecycle: an unknown email creates
// the user; a known email only refreshes the avatar, name and email stay as
// they were created.
func (s *Store) UpsertLogin(email, name, avatarURL string) (*models.User, error) {
	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("email = ?", email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = models.User{Email: email, Name: name, AvatarURL: avatarURL}
			return tx.Create(&user).Error
		}
		if err != nil {
			return err
		}
		// The provider may serve a fresh avatar at any time.
		user.AvatarURL = avatarURL
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
