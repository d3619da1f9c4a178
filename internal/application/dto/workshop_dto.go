package dto

import (
	"time"

	"github.com/jhoicas/revops-api/pkg/currency"
)

// CreateWorkshopRequest workshop setup input.
type CreateWorkshopRequest struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	GSTNumber    string `json:"gst_number"`
	CurrencyCode string `json:"currency_code"`
}

// UpdateWorkshopRequest nil fields are left unchanged.
type UpdateWorkshopRequest struct {
	Name         *string `json:"name"`
	Address      *string `json:"address"`
	Phone        *string `json:"phone"`
	GSTNumber    *string `json:"gst_number"`
	CurrencyCode *string `json:"currency_code"`
}

// WorkshopResponse workshop with its resolved currency.
type WorkshopResponse struct {
	ID           string        `json:"id"`
	OwnerID      string        `json:"owner_id"`
	Name         string        `json:"name"`
	Address      string        `json:"address"`
	Phone        string        `json:"phone"`
	GSTNumber    string        `json:"gst_number"`
	CurrencyCode string        `json:"currency_code"`
	Currency     currency.Info `json:"currency"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// InviteCodeResponse an invite code; Available drives the copy action.
type InviteCodeResponse struct {
	ID         string     `json:"id"`
	Code       string     `json:"code"`
	WorkshopID string     `json:"workshop_id"`
	IsActive   bool       `json:"is_active"`
	UsedBy     *string    `json:"used_by"`
	UsedAt     *time.Time `json:"used_at"`
	Available  bool       `json:"available"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ManagerResponse an active membership with the manager's contact data.
type ManagerResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	WorkshopID string    `json:"workshop_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	JoinedAt   time.Time `json:"joined_at"`
	IsActive   bool      `json:"is_active"`
}
