package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/hostelops/complaints/internal/models"
)

const (
	TypeComplaintCreated       = "complaint_created"
	TypeComplaintStatusUpdated = "complaint_status_updated"
	TypeUserRegistered         = "user_registered"
)

type ComplaintCreated struct {
	Type        string          `json:"type"`
	ComplaintID uuid.UUID       `json:"complaintID"`
	UserID      uuid.UUID       `json:"userID"`
	Category    string          `json:"category"`
	Priority    models.Priority `json:"priority"`
	Status      models.Status   `json:"status"`
	At          time.Time       `json:"at"`
}

type ComplaintStatusUpdated struct {
	Type        string        `json:"type"`
	ComplaintID uuid.UUID     `json:"complaintID"`
	OwnerID     uuid.UUID     `json:"ownerID"`
	Status      models.Status `json:"status"`
	UpdatedBy   uuid.UUID     `json:"updatedBy"`
	At          time.Time     `json:"at"`
}

type UserRegistered struct {
	Type   string      `json:"type"`
	UserID uuid.UUID   `json:"userID"`
	Role   models.Role `json:"role"`
	At     time.Time   `json:"at"`
}

func NewComplaintCreated(c *models.Complaint) ComplaintCreated {
	return ComplaintCreated{
		Type:        TypeComplaintCreated,
		ComplaintID: c.ID,
		UserID:      c.UserID,
		Category:    c.Category,
		Priority:    c.Priority,
		Status:      c.Status,
		At:          c.CreatedAt,
	}
}

func NewComplaintStatusUpdated(c *models.Complaint, by uuid.UUID) ComplaintStatusUpdated {
	return ComplaintStatusUpdated{
		Type:        TypeComplaintStatusUpdated,
		ComplaintID: c.ID,
		OwnerID:     c.UserID,
		Status:      c.Status,
		UpdatedBy:   by,
		At:          c.UpdatedAt,
	}
}

func NewUserRegistered(u *models.User) UserRegistered {
	return UserRegistered{
		Type:   TypeUserRegistered,
		UserID: u.ID,
		Role:   u.Role,
		At:     u.CreatedAt,
	}
}
