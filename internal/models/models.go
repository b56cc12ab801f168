package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"          json:"id"`
	Name         string    `gorm:"size:255;not null"             json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null"             json:"-"`
	Role         Role      `gorm:"size:20;not null"              json:"role"`
	CreatedAt    time.Time `gorm:"not null"                      json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (User) TableName() string {
	return "users"
}

type Complaint struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"                  json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"              json:"user_id"`
	Category    string    `gorm:"size:100;index;not null"               json:"category"`
	Description string    `gorm:"type:text;not null"                    json:"description"`
	Priority    Priority  `gorm:"size:20;not null;default:Medium"       json:"priority"`
	Status      Status    `gorm:"size:20;index;not null;default:Pending" json:"status"`
	CreatedAt   time.Time `gorm:"index;not null"                        json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null"                              json:"updated_at"`

	Owner *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Complaint) TableName() string {
	return "complaints"
}

// Identity is the verified caller behind a request.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

func (i Identity) IsAdmin() bool   { return i.Role == RoleAdmin }
func (i Identity) IsStudent() bool { return i.Role == RoleStudent }

type ComplaintFilter struct {
	Status   *Status
	Category string
	OwnerID  *uuid.UUID
}
