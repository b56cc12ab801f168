package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hostelops/complaints/internal/errs"
	"github.com/hostelops/complaints/internal/models"
)

func withOwner(db *gorm.DB) *gorm.DB {
	return db.Preload("Owner", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email")
	})
}

func (r *GormRepo) CreateComplaint(ctx context.Context, c *models.Complaint) (*models.Complaint, error) {
	if err := r.DB.WithContext(ctx).Create(c).Error; err != nil {
		return nil, errs.Store("create complaint", err)
	}
	return c, nil
}

func (r *GormRepo) ListComplaints(ctx context.Context, f models.ComplaintFilter) ([]models.Complaint, error) {
	q := withOwner(r.DB.WithContext(ctx).Model(&models.Complaint{}))
	if f.OwnerID != nil {
		q = q.Where("user_id = ?", *f.OwnerID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	complaints := make([]models.Complaint, 0)
	if err := q.Order("created_at DESC").Order("id DESC").Find(&complaints).Error; err != nil {
		return nil, errs.Store("list complaints", err)
	}
	return complaints, nil
}

// UpdateComplaintStatus sets status and updated_at in one transaction and
// returns the stored row.
func (r *GormRepo) UpdateComplaintStatus(ctx context.Context, id uuid.UUID, status models.Status, at time.Time) (*models.Complaint, error) {
	var updated models.Complaint
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Complaint{}).Where("id = ?", id).Updates(map[string]any{
			"status":     status,
			"updated_at": at,
		})
		if res.Error != nil {
			return errs.Store("update complaint", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: complaint %s", errs.ErrNotFound, id)
		}
		if err := withOwner(tx).Where("id = ?", id).First(&updated).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: complaint %s", errs.ErrNotFound, id)
			}
			return errs.Store("reload complaint", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SearchComplaints is the store-side fallback for full-text search: a
// case-insensitive substring match on category and description.
func (r *GormRepo) SearchComplaints(ctx context.Context, query string, ownerID *uuid.UUID, offset, limit int) ([]models.Complaint, error) {
	pattern := "%" + strings.ToLower(escapeLike(query)) + "%"
	q := withOwner(r.DB.WithContext(ctx).Model(&models.Complaint{})).
		Where("(LOWER(category) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')", pattern, pattern)
	if ownerID != nil {
		q = q.Where("user_id = ?", *ownerID)
	}

	complaints := make([]models.Complaint, 0)
	if err := q.Order("created_at DESC").Order("id DESC").Offset(offset).Limit(limit).Find(&complaints).Error; err != nil {
		return nil, errs.Store("search complaints", err)
	}
	return complaints, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
