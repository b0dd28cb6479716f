// internal/service/member_service_test.go
package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"member-service/internal/api/types"
	"member-service/internal/domain"
	"member-service/internal/repository"
	"member-service/internal/util"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockMemberRepository is a mock implementation of repository.MemberRepository.
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) ListAll(ctx context.Context, q repository.DBExecutor) ([]domain.Member, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *MockMemberRepository) GetByID(ctx context.Context, q repository.DBExecutor, id int) (*domain.Member, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) GetByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.Member, error) {
	args := m.Called(ctx, q, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) ExistsByID(ctx context.Context, q repository.DBExecutor, id int) (bool, error) {
	args := m.Called(ctx, q, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberRepository) ExistsByEmail(ctx context.Context, q repository.DBExecutor, email string) (bool, error) {
	args := m.Called(ctx, q, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberRepository) Insert(ctx context.Context, q repository.DBExecutor, member *domain.Member) error {
	args := m.Called(ctx, q, member)
	return args.Error(0)
}

func (m *MockMemberRepository) Update(ctx context.Context, q repository.DBExecutor, member *domain.Member) error {
	args := m.Called(ctx, q, member)
	return args.Error(0)
}

func (m *MockMemberRepository) Delete(ctx context.Context, q repository.DBExecutor, id int) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func testMember(id int, email string) *domain.Member {
	return &domain.Member{
		ID:               id,
		FirstName:        "Juan",
		LastName:         "Pérez",
		Email:            email,
		BirthDate:        time.Date(1985, time.May, 15, 0, 0, 0, 0, time.UTC),
		RegistrationDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		IsActive:         true,
		Balance:          decimal.RequireFromString("1000.00"),
	}
}

// TestGetAllMembers tests the GetAllMembers method of MemberService.
func TestGetAllMembers(t *testing.T) {
	t.Run("ReturnsAllMembers", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockMemberRepository)
		mockExecutor := new(MockDBExecutor)
		svc := NewMemberService(mockExecutor, mockRepo)

		members := []domain.Member{*testMember(1, "a@x.com"), *testMember(2, "b@x.com")}
		mockRepo.On("ListAll", ctx, mockExecutor).Return(members, nil).Once()

		result, err := svc.GetAllMembers(ctx)

		assert.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Equal(t, 1, result[0].ID)
		assert.Equal(t, "b@x.com", result[1].Email)

		mock.AssertExpectationsForObjects(t, mockRepo)
	})

	t.Run("EmptyStoreReturnsEmptyList", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockMemberRepository)
		mockExecutor := new(MockDBExecutor)
		svc := NewMemberService(mockExecutor, mockRepo)

		mockRepo.On("ListAll", ctx, mockExecutor).Return([]domain.Member{}, nil).Once()

		result, err := svc.GetAllMembers(ctx)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)

		mock.AssertExpectationsForObjects(t, mockRepo)
	})

	t.Run("StorageErrorPropagates", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockMemberRepository)
		mockExecutor := new(MockDBExecutor)
		svc := NewMemberService(mockExecutor, mockRepo)

		mockRepo.On("ListAll", ctx, mockExecutor).Return(nil, errors.New("db unreachable")).Once()

		result, err := svc.GetAllMembers(ctx)

		assert.Error(t, err)
		assert.Nil(t, result)

		mock.AssertExpectationsForObjects(t, mockRepo)
	})
}

// TestGetMemberByID tests the GetMemberByID method of MemberService.
func TestGetMemberByID(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockMemberRepository)
		mockExecutor := new(MockDBExecutor)
		svc := NewMemberService(mockExecutor, mockRepo)

		member := testMember(1, "a@x.com")
		mockRepo.On("GetByID", ctx, mockExecutor, 1).Return(member, nil).Once()

		result, err := svc.GetMemberByID(ctx, 1)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, member.Email, result.Email)
		assert.True(t, member.Balance.Equal(result.Balance))

		mock.AssertExpectationsForObjects(t, mockRepo)
	})

	t.Run("AbsentIsNotAnError", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockMemberRepository)
		mockExecutor := new(MockDBExecutor)
		svc := NewMemberService(mockExecutor, mockRepo)

		mockRepo.On("GetByID", ctx, mockExecutor, 42).Return(nil, util.ErrNotFound).Once()

		result, err := svc.GetMemberByID(ctx, 42)

		assert.NoError(t, err)
		assert.Nil(t, result)

		mock.AssertExpectationsForObjects(t, mockRepo)
	})
}

// TestGetMemberByEmail tests the GetMemberByEmail method of MemberService.
func TestGetMemberByEmail(t *testing.T) {
	t.Run("AbsentIsNotAnError", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockMemberRepository)
		mockExecutor := new(MockDBExecutor)
		svc := NewMemberService(mockExecutor, mockRepo)

		mockRepo.On("GetByEmail", ctx, mockExecutor, "missing@x.com").Return(nil, util.ErrNotFound).Once()

		result, err := svc.GetMemberByEmail(ctx, "missing@x.com")

		assert.NoError(t, err)
		assert.Nil(t, result)

		mock.AssertExpectationsForObjects(t, mockRepo)
	})
}

// TestCreateMember tests the CreateMember method of MemberService.
func TestCreateMember(t *testing.T) {
	req := types.CreateMemberRequest{
		FirstName:      "Ana",
		LastName:       "López",
		Email:          "ana.lopez@example.com",
		BirthDate:      time.Date(1992, time.April, 3, 0, 0, 0, 0, time.UTC),
		InitialBalance: decimal.RequireFromString("250.00"),
	}

	t.Run("SuccessfulCreate", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockMemberRepository)
		mockExecutor := new(MockDBExecutor)
		svc := NewMemberService(mockExecutor, mockRepo)

		before := time.Now().UTC()
		mockRepo.On("ExistsByEmail", ctx, mockExecutor, req.Email).Return(false, nil).Once()
		mockRepo.On("Insert", ctx, mockExecutor, mock.AnythingOfType("*domain.Member")).
			Run(func(args mock.Arguments) {
				args.Get(2).(*domain.Member).ID = 7 // Storage assigns the id
			}).Return(nil).Once()

		result, err := svc.CreateMember(ctx, req)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, 7, result.ID)
		assert.True(t, result.IsActive)
		assert.True(t, result.Balance.Equal(req.InitialBalance))
		assert.Equal(t, req.BirthDate, result.BirthDate)
		assert.WithinRange(t, result.RegistrationDate, before, time.Now().UTC().Add(time.Second))

		mock.AssertExpectationsForObjects(t, mockRepo)
	})

	t.Run("DuplicateEmailPreCheck", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockMemberRepository)
		mockExecutor := new(MockDBExecutor)
		svc := NewMemberService(mockExecutor, mockRepo)

		mockRepo.On("ExistsByEmail", ctx, mockExecutor, req.Email).Return(true, nil).Once()

		result, err := svc.CreateMember(ctx, req)

		assert.ErrorIs(t, err, util.ErrDuplicateEmail)
		assert.Nil(t, result)

		// No insert is attempted once the pre-check fails.
		mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)

		mock.AssertExpectationsForObjects(t, mockRepo)
	})

	t.Run("DuplicateEmailInsertBackstop", func(t *testing.T) {
		// The pre-check can be bypassed by a concurrent create for the
		// same email; the unique index rejection must still surface as a
		// duplicate-email error.
		ctx := context.Background()
		mockRepo := new(MockMemberRepository)
		mockExecutor := new(MockDBExecutor)
		svc := NewMemberService(mockExecutor, mockRepo)

		mockRepo.On("ExistsByEmail", ctx, mockExecutor, req.Email).Return(false, nil).Once()
		mockRepo.On("Insert", ctx, mockExecutor, mock.AnythingOfType("*domain.Member")).
			Return(util.ErrDuplicateEmail).Once()

		result, err := svc.CreateMember(ctx, req)

		assert.ErrorIs(t, err, util.ErrDuplicateEmail)
		assert.Nil(t, result)

		mock.AssertExpectationsForObjects(t, mockRepo)
	})
}

// TestUpdateMember tests the UpdateMember method of MemberService.
func TestUpdateMember(t *testing.T) {
	t.Run("SuccessfulUpdateSameEmail", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockMemberRepository)
		mockExecutor := new(MockDBExecutor)
		svc := NewMemberService(mockExecutor, mockRepo)

		existing := testMember(1, "a@x.com")
		originalBalance := existing.Balance
		originalBirthDate := existing.BirthDate
		originalRegistration := existing.RegistrationDate

		req := types.UpdateMemberRequest{
			FirstName: "Juan",
			LastName:  "Pérez",
			Email:     "a@x.com", // unchanged
			IsActive:  false,
		}

		mockRepo.On("GetByID", ctx, mockExecutor, 1).Return(existing, nil).Once()
		mockRepo.On("Update", ctx, mockExecutor, existing).Return(nil).Once()

		result, err := svc.UpdateMember(ctx, 1, req)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.False(t, result.IsActive)
		assert.Equal(t, "a@x.com", result.Email)
		assert.True(t, originalBalance.Equal(result.Balance))
		assert.Equal(t, originalBirthDate, result.BirthDate)
		assert.Equal(t, originalRegistration, result.RegistrationDate)

		// The email did not change, so no availability check runs.
		mockRepo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything, mock.Anything)

		mock.AssertExpectationsForObjects(t, mockRepo)
	})

	t.Run("AbsentIsNotAnError", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockMemberRepository)
		mockExecutor := new(MockDBExecutor)
		svc := NewMemberService(mockExecutor, mockRepo)

		mockRepo.On("GetByID", ctx, mockExecutor, 99).Return(nil, util.ErrNotFound).Once()

		result, err := svc.UpdateMember(ctx, 99, types.UpdateMemberRequest{
			FirstName: "X", LastName: "Y", Email: "x@y.com", IsActive: true,
		})

		assert.NoError(t, err)
		assert.Nil(t, result)

		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)

		mock.AssertExpectationsForObjects(t, mockRepo)
	})

	t.Run("EmailTakenByAnotherMember", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockMemberRepository)
		mockExecutor := new(MockDBExecutor)
		svc := NewMemberService(mockExecutor, mockRepo)

		existing := testMember(1, "a@x.com")
		req := types.UpdateMemberRequest{
			FirstName: "Juan", LastName: "Pérez", Email: "b@x.com", IsActive: true,
		}

		mockRepo.On("GetByID", ctx, mockExecutor, 1).Return(existing, nil).Once()
		mockRepo.On("ExistsByEmail", ctx, mockExecutor, "b@x.com").Return(true, nil).Once()

		result, err := svc.UpdateMember(ctx, 1, req)

		assert.ErrorIs(t, err, util.ErrDuplicateEmail)
		assert.Nil(t, result)

		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)

		mock.AssertExpectationsForObjects(t, mockRepo)
	})

	t.Run("EmailChangedToAvailableOne", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockMemberRepository)
		mockExecutor := new(MockDBExecutor)
		svc := NewMemberService(mockExecutor, mockRepo)

		existing := testMember(1, "a@x.com")
		req := types.UpdateMemberRequest{
			FirstName: "Juan", LastName: "Pérez", Email: "new@x.com", IsActive: true,
		}

		mockRepo.On("GetByID", ctx, mockExecutor, 1).Return(existing, nil).Once()
		mockRepo.On("ExistsByEmail", ctx, mockExecutor, "new@x.com").Return(false, nil).Once()
		mockRepo.On("Update", ctx, mockExecutor, existing).Return(nil).Once()

		result, err := svc.UpdateMember(ctx, 1, req)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, "new@x.com", result.Email)

		mock.AssertExpectationsForObjects(t, mockRepo)
	})

	t.Run("CaseOnlyEmailChangeHitsOwnRow", func(t *testing.T) {
		// The change detection compares exact strings while the
		// availability check is case-insensitive, so re-casing the
		// member's own email matches its own row and is rejected.
		ctx := context.Background()
		mockRepo := new(MockMemberRepository)
		mockExecutor := new(MockDBExecutor)
		svc := NewMemberService(mockExecutor, mockRepo)

		existing := testMember(1, "a@x.com")
		req := types.UpdateMemberRequest{
			FirstName: "Juan", LastName: "Pérez", Email: "A@X.com", IsActive: true,
		}

		mockRepo.On("GetByID", ctx, mockExecutor, 1).Return(existing, nil).Once()
		mockRepo.On("ExistsByEmail", ctx, mockExecutor, "A@X.com").Return(true, nil).Once()

		result, err := svc.UpdateMember(ctx, 1, req)

		assert.ErrorIs(t, err, util.ErrDuplicateEmail)
		assert.Nil(t, result)

		mock.AssertExpectationsForObjects(t, mockRepo)
	})
}

// TestDeleteMember tests the DeleteMember method of MemberService.
func TestDeleteMember(t *testing.T) {
	t.Run("ExistingMemberIsDeleted", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockMemberRepository)
		mockExecutor := new(MockDBExecutor)
		svc := NewMemberService(mockExecutor, mockRepo)

		mockRepo.On("ExistsByID", ctx, mockExecutor, 1).Return(true, nil).Once()
		mockRepo.On("Delete", ctx, mockExecutor, 1).Return(nil).Once()

		deleted, err := svc.DeleteMember(ctx, 1)

		assert.NoError(t, err)
		assert.True(t, deleted)

		mock.AssertExpectationsForObjects(t, mockRepo)
	})

	t.Run("AbsentMemberReturnsFalse", func(t *testing.T) {
		ctx := context.Background()
		mockRepo := new(MockMemberRepository)
		mockExecutor := new(MockDBExecutor)
		svc := NewMemberService(mockExecutor, mockRepo)

		mockRepo.On("ExistsByID", ctx, mockExecutor, 42).Return(false, nil).Once()

		deleted, err := svc.DeleteMember(ctx, 42)

		assert.NoError(t, err)
		assert.False(t, deleted)

		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)

		mock.AssertExpectationsForObjects(t, mockRepo)
	})
}
