// internal/service/member_service.go
package service

import (
	"context"
	"fmt"

	"member-service/internal/api/types"
	"member-service/internal/mapper"
	"member-service/internal/repository"
	"member-service/internal/util"
)

// MemberService defines the interface for member-related business logic.
//
// Absence is a normal outcome for the lookup and update operations: they
// return (nil, nil) rather than an error, so the boundary layer decides
// the not-found response. util.ErrDuplicateEmail is the only business
// error; everything else propagates as an infrastructure failure.
type MemberService interface {
	GetAllMembers(ctx context.Context) ([]types.MemberResponse, error)
	GetMemberByID(ctx context.Context, id int) (*types.MemberResponse, error)
	GetMemberByEmail(ctx context.Context, email string) (*types.MemberResponse, error)
	CreateMember(ctx context.Context, req types.CreateMemberRequest) (*types.MemberResponse, error)
	UpdateMember(ctx context.Context, id int, req types.UpdateMemberRequest) (*types.MemberResponse, error)
	DeleteMember(ctx context.Context, id int) (bool, error)
}

// memberService implements the MemberService interface.
type memberService struct {
	dbExecutor repository.DBExecutor // e.g. *sqlx.DB
	memberRepo repository.MemberRepository
}

// NewMemberService creates a new instance of MemberService.
func NewMemberService(dbExecutor repository.DBExecutor, memberRepo repository.MemberRepository) MemberService {
	return &memberService{
		dbExecutor: dbExecutor,
		memberRepo: memberRepo,
	}
}

// GetAllMembers returns every member mapped to the response shape.
func (s *memberService) GetAllMembers(ctx context.Context) ([]types.MemberResponse, error) {
	members, err := s.memberRepo.ListAll(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("get all members: %w", err)
	}
	return mapper.ToMemberResponses(members), nil
}

// GetMemberByID returns the member with the given id, or (nil, nil) if
// no such member exists.
func (s *memberService) GetMemberByID(ctx context.Context, id int) (*types.MemberResponse, error) {
	member, err := s.memberRepo.GetByID(ctx, s.dbExecutor, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get member by id %d: %w", id, err)
	}
	resp := mapper.ToMemberResponse(member)
	return &resp, nil
}

// GetMemberByEmail returns the member with the given email (matched
// case-insensitively), or (nil, nil) if no such member exists.
func (s *memberService) GetMemberByEmail(ctx context.Context, email string) (*types.MemberResponse, error) {
	member, err := s.memberRepo.GetByEmail(ctx, s.dbExecutor, email)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get member by email '%s': %w", email, err)
	}
	resp := mapper.ToMemberResponse(member)
	return &resp, nil
}

// CreateMember creates a new member after checking that the email is not
// already taken. The pre-check and the insert are not serialized across
// requests, so two concurrent creates for the same email can both pass
// the check; the unique index on the email column is the final backstop
// and its violation also surfaces as util.ErrDuplicateEmail.
func (s *memberService) CreateMember(ctx context.Context, req types.CreateMemberRequest) (*types.MemberResponse, error) {
	exists, err := s.memberRepo.ExistsByEmail(ctx, s.dbExecutor, req.Email)
	if err != nil {
		return nil, fmt.Errorf("create member: failed to check email '%s': %w", req.Email, err)
	}
	if exists {
		return nil, util.ErrDuplicateEmail
	}

	member := mapper.MemberFromCreateRequest(req)
	if err := s.memberRepo.Insert(ctx, s.dbExecutor, member); err != nil {
		if util.IsError(err, util.ErrDuplicateEmail) {
			return nil, util.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create member: %w", err)
	}

	resp := mapper.ToMemberResponse(member)
	return &resp, nil
}

// UpdateMember updates the mutable fields of an existing member. It
// returns (nil, nil) when the id is unknown. When the request carries a
// new email, its availability is re-checked before persisting.
//
// The email-change detection is an exact string comparison while the
// existence check is case-insensitive, so changing only the casing of
// the current email triggers the check against the member's own row and
// fails with util.ErrDuplicateEmail.
func (s *memberService) UpdateMember(ctx context.Context, id int, req types.UpdateMemberRequest) (*types.MemberResponse, error) {
	existing, err := s.memberRepo.GetByID(ctx, s.dbExecutor, id)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("update member %d: %w", id, err)
	}

	if req.Email != "" && req.Email != existing.Email {
		exists, err := s.memberRepo.ExistsByEmail(ctx, s.dbExecutor, req.Email)
		if err != nil {
			return nil, fmt.Errorf("update member %d: failed to check email '%s': %w", id, req.Email, err)
		}
		if exists {
			return nil, util.ErrDuplicateEmail
		}
	}

	mapper.ApplyUpdateRequest(req, existing)

	if err := s.memberRepo.Update(ctx, s.dbExecutor, existing); err != nil {
		if util.IsError(err, util.ErrDuplicateEmail) {
			return nil, util.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update member %d: %w", id, err)
	}

	resp := mapper.ToMemberResponse(existing)
	return &resp, nil
}

// DeleteMember removes the member with the given id. It returns false
// when no such member exists, which is not an error.
func (s *memberService) DeleteMember(ctx context.Context, id int) (bool, error) {
	exists, err := s.memberRepo.ExistsByID(ctx, s.dbExecutor, id)
	if err != nil {
		return false, fmt.Errorf("delete member %d: failed to check existence: %w", id, err)
	}
	if !exists {
		return false, nil
	}

	if err := s.memberRepo.Delete(ctx, s.dbExecutor, id); err != nil {
		return false, fmt.Errorf("delete member %d: %w", id, err)
	}
	return true, nil
}
