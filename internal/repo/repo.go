package repo

import (
	"gorm.io/gorm"

	"github.com/hostelops/complaints/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// AutoMigrate creates or updates the schema from the models. Used for sqlite
// and for postgres when SQL migrations are disabled.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Complaint{})
}
