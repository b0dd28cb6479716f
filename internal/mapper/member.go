// internal/mapper/member.go
package mapper

import (
	"member-service/internal/api/types"
	"member-service/internal/domain"
)

// Pure field-copy functions between the persisted Member shape and the
// request/response shapes. No reflection-based auto-mapping; the field
// sets are small and fixed.

// ToMemberResponse copies all fields of a member verbatim into the
// response shape.
func ToMemberResponse(m *domain.Member) types.MemberResponse {
	return types.MemberResponse{
		ID:               m.ID,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Email:            m.Email,
		BirthDate:        m.BirthDate,
		RegistrationDate: m.RegistrationDate,
		IsActive:         m.IsActive,
		Balance:          m.Balance,
	}
}

// ToMemberResponses maps a slice of members to response shapes,
// preserving order. A nil or empty input yields an empty slice.
func ToMemberResponses(members []domain.Member) []types.MemberResponse {
	responses := make([]types.MemberResponse, 0, len(members))
	for i := range members {
		responses = append(responses, ToMemberResponse(&members[i]))
	}
	return responses
}

// MemberFromCreateRequest builds a new Member from a create request.
// The registration date is stamped at mapping time, the active flag is
// forced to true regardless of the request, and the balance is taken
// from the request's initial-balance field.
func MemberFromCreateRequest(req types.CreateMemberRequest) *domain.Member {
	return domain.NewMember(req.FirstName, req.LastName, req.Email, req.BirthDate, req.InitialBalance)
}

// ApplyUpdateRequest overwrites the mutable fields of an existing member
// in place. Balance, birth date, registration date and id are left
// untouched; the update shape does not even carry them.
func ApplyUpdateRequest(req types.UpdateMemberRequest, m *domain.Member) {
	m.FirstName = req.FirstName
	m.LastName = req.LastName
	m.Email = req.Email
	m.IsActive = req.IsActive
}
