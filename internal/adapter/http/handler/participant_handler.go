package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/tripledger/internal/adapter/http/dto"
	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/usecase"
)

// ParticipantService defines the behavior needed by ParticipantHandler.
type ParticipantService interface {
	CreateParticipant(ctx context.Context, input usecase.CreateParticipantInput) (*domain.Participant, error)
	GetParticipant(ctx context.Context, id string) (*domain.Participant, error)
	RemoveParticipant(ctx context.Context, participantID string) error
}

// ParticipantHandler handles roster-related HTTP requests.
type ParticipantHandler struct {
	rosterUC ParticipantService
}

// NewParticipantHandler creates a new ParticipantHandler.
func NewParticipantHandler(rosterUC ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{rosterUC: rosterUC}
}

// Create adds a participant to a plan.
func (h *ParticipantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	participant, err := h.rosterUC.CreateParticipant(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create participant", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.ParticipantFromDomain(participant))
}

// Get retrieves a participant by ID.
func (h *ParticipantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing participant ID", "")
		return
	}

	participant, err := h.rosterUC.GetParticipant(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get participant", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ParticipantFromDomain(participant))
}

// Remove deletes a participant and re-splits the expenses they shared.
func (h *ParticipantHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing participant ID", "")
		return
	}

	if err := h.rosterUC.RemoveParticipant(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to remove participant", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
