package transport

import (
	"time"

	"github.com/google/uuid"

	"github.com/hostelops/complaints/internal/models"
)

type CreateComplaintRequest struct {
	Category    string `json:"category"    validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=5000"`
	Priority    string `json:"priority"    validate:"required"`
	// Status is accepted and ignored; new complaints always start Pending.
	Status string `json:"status,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ListComplaintsQuery struct {
	Status   string `query:"status"`
	Category string `query:"category"`
}

type SearchComplaintsQuery struct {
	Q    string `query:"q"    validate:"required,max=200"`
	Page int    `query:"page"`
	Size int    `query:"size"`
}

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role"     validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID    uuid.UUID   `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type OwnerView struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ComplaintResponse struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Priority    models.Priority `json:"priority"`
	Status      models.Status   `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Users       *OwnerView      `json:"users,omitempty"`
}

func NewComplaintResponse(c *models.Complaint) ComplaintResponse {
	resp := ComplaintResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		Category:    c.Category,
		Description: c.Description,
		Priority:    c.Priority,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.Owner != nil {
		resp.Users = &OwnerView{Name: c.Owner.Name, Email: c.Owner.Email}
	}
	return resp
}

func NewComplaintList(cs []models.Complaint) []ComplaintResponse {
	out := make([]ComplaintResponse, 0, len(cs))
	for i := range cs {
		out = append(out, NewComplaintResponse(&cs[i]))
	}
	return out
}
