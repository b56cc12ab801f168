package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hostelops/complaints/internal/errs"
	"github.com/hostelops/complaints/internal/models"
)

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", errs.ErrNotFound, email)
		}
		return nil, errs.Store("get user", err)
	}
	return &user, nil
}

// CreateUserIfNotExists inserts u unless a user with the same email exists,
// in which case it returns errs.ErrConflict.
func (r *GormRepo) CreateUserIfNotExists(ctx context.Context, u *models.User) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Where("email = ?", u.Email).Count(&n).Error; err != nil {
			return errs.Store("check user", err)
		}
		if n > 0 {
			return fmt.Errorf("%w: email %s already registered", errs.ErrConflict, u.Email)
		}
		if err := tx.Create(u).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: email %s already registered", errs.ErrConflict, u.Email)
			}
			return errs.Store("create user", err)
		}
		return nil
	})
	return err
}
