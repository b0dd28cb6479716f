// internal/api/handler/member.go
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"member-service/internal/api/types"
	"member-service/internal/service"
	"member-service/internal/util"
)

// DefaultTimeout is the per-request timeout applied by the router.
const DefaultTimeout = 60 * time.Second

const (
	maxNameLength  = 50
	maxEmailLength = 100
)

// MemberHandler handles HTTP requests for member operations.
type MemberHandler struct {
	service service.MemberService
	logger  *slog.Logger
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(svc service.MemberService, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{
		service: svc,
		logger:  logger,
	}
}

// Helper function to send JSON responses.
func (h *MemberHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses.
func (h *MemberHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrDuplicateEmail):
		statusCode = http.StatusBadRequest
		message = util.ErrDuplicateEmail.Error()
	case util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, map[string]string{"error": message})
}

// validateName checks a first or last name field.
func validateName(name string) bool {
	return name != "" && len(name) <= maxNameLength
}

// validateEmail checks the email field length bounds only; format
// validation is not part of this service's contract.
func validateEmail(email string) bool {
	return email != "" && len(email) <= maxEmailLength
}

// ListMembers handles listing all members.
// GET /members
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.GetAllMembers(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, members)
}

// GetMemberByID handles fetching a single member by id.
// GET /members/{memberID}
func (h *MemberHandler) GetMemberByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "memberID"))
	if err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	member, err := h.service.GetMemberByID(r.Context(), id)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	if member == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	h.respondWithJSON(w, http.StatusOK, member)
}

// GetMemberByEmail handles fetching a single member by email.
// GET /members/email/{email}
func (h *MemberHandler) GetMemberByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	member, err := h.service.GetMemberByEmail(r.Context(), email)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	if member == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	h.respondWithJSON(w, http.StatusOK, member)
}

// CreateMember handles creating a new member.
// POST /members
func (h *MemberHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req types.CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	// Basic validation
	if !validateName(req.FirstName) || !validateName(req.LastName) {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}
	if !validateEmail(req.Email) {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}
	if req.BirthDate.IsZero() {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}
	if req.InitialBalance.IsNegative() {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	member, err := h.service.CreateMember(r.Context(), req)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/members/%d", member.ID))
	h.respondWithJSON(w, http.StatusCreated, member)
}

// UpdateMember handles updating an existing member.
// PUT /members/{memberID}
func (h *MemberHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "memberID"))
	if err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	var req types.UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	// Basic validation
	if !validateName(req.FirstName) || !validateName(req.LastName) {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}
	if !validateEmail(req.Email) {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	member, err := h.service.UpdateMember(r.Context(), id, req)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	if member == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	h.respondWithJSON(w, http.StatusOK, member)
}

// DeleteMember handles deleting a member.
// DELETE /members/{memberID}
func (h *MemberHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "memberID"))
	if err != nil {
		h.respondWithError(w, util.ErrInvalidInput)
		return
	}

	deleted, err := h.service.DeleteMember(r.Context(), id)
	if err != nil {
		h.respondWithError(w, err)
		return
	}
	if !deleted {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
