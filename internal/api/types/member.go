// internal/api/types/member.go
package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMemberRequest is the request body for creating a member.
// InitialBalance is optional and defaults to zero.
type CreateMemberRequest struct {
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Email          string          `json:"email"`
	BirthDate      time.Time       `json:"birthDate"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

// UpdateMemberRequest is the request body for updating a member.
// It deliberately carries no balance, birth date or registration date,
// so those fields cannot be changed through the update endpoint.
type UpdateMemberRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsActive  bool   `json:"isActive"`
}

// MemberResponse is the member representation returned by the API.
type MemberResponse struct {
	ID               int             `json:"id"`
	FirstName        string          `json:"firstName"`
	LastName         string          `json:"lastName"`
	Email            string          `json:"email"`
	BirthDate        time.Time       `json:"birthDate"`
	RegistrationDate time.Time       `json:"registrationDate"`
	IsActive         bool            `json:"isActive"`
	Balance          decimal.Decimal `json:"balance"`
}
