package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/internal/utils"
	"github.com/MKhiriev/go-home-inventory/models"
)

const tokenTypeBearer = "bearer"

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.AccountCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, r, ErrInvalidJSON)
		return
	}

	account, err := h.services.AccountService.Register(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Int64("account_id", account.ID).Msg("account registered")
	utils.WriteJSON(w, account, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, r, ErrInvalidJSON)
		return
	}

	account, err := h.services.AccountService.Authenticate(ctx, credentials.Email, credentials.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.TokenService.Issue(ctx, account.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("account_id", account.ID).Msg("account logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.TokenResponse{AccessToken: token.SignedString, TokenType: tokenTypeBearer}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request, accountID int64) {
	account, err := h.services.AccountService.FindByID(r.Context(), accountID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, account, http.StatusOK)
}

// deleteMe removes the caller's account and all of its items.
func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request, accountID int64) {
	if err := h.services.AccountService.Delete(r.Context(), accountID); err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Msg("account deleted")
	utils.WriteJSON(w, models.MessageResponse{Message: "Account deleted"}, http.StatusOK)
}
