package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/GlebRadaev/adrewards/internal/domain"
	"github.com/GlebRadaev/adrewards/internal/dto"
	userservice "github.com/GlebRadaev/adrewards/internal/service/userservice"
	"github.com/GlebRadaev/adrewards/pkg/utils"
)

const eventAdViewed = "ad_viewed"

type Service interface {
	Resolve(ctx context.Context, identity userservice.Identity) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	RecordAdView(ctx context.Context, id string) (*domain.User, error)
	ResetUser(ctx context.Context, id string) (*domain.User, error)
}

type UserHandler struct {
	userService Service
}

func New(userService Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Resolve godoc
//
//	@Summary		Resolve or create a user
//	@Description	Map the Telegram identity onto a durable user record, creating one with zeroed balance on first contact.
//	@Tags			User
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ResolveUserRequestDTO	true	"Identity payload"
//	@Success		200		{object}	dto.UserResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user [post]
func (h *UserHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req dto.ResolveUserRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.Resolve(r.Context(), userservice.Identity{
		TelegramID: req.TelegramID,
		Name:       req.TelegramName,
		Username:   req.TelegramUsername,
		PhotoURL:   req.PhotoURL,
	})
	if err != nil {
		if errors.Is(err, userservice.ErrNoIdentity) {
			utils.RespondWithError(w, http.StatusBadRequest, "Identity required")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.UserResponseDTO{User: toUserDTO(user)})
}

// Get godoc
//
//	@Summary		Get user snapshot
//	@Description	Return the user's balance and quota state. The daily counter is reset first if the UTC date rolled over.
//	@Tags			User
//	@Produce		json
//	@Param			userId	query		string	true	"User ID"
//	@Success		200		{object}	dto.UserResponseDTO
//	@Failure		400		{object}	utils.Response	"User ID required"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user [get]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "User ID required")
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.UserResponseDTO{User: toUserDTO(user)})
}

// AdView godoc
//
//	@Summary		Credit a completed ad view
//	@Description	The client reports the ad_viewed event; the server computes the new balance and counters.
//	@Tags			User
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AdViewRequestDTO	true	"Ad view event"
//	@Success		200		{object}	dto.UserResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid event or quota exhausted"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user [put]
func (h *UserHandler) AdView(w http.ResponseWriter, r *http.Request) {
	var req dto.AdViewRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "User ID required")
		return
	}
	if req.Event != eventAdViewed {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported event")
		return
	}

	user, err := h.userService.RecordAdView(r.Context(), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, userservice.ErrQuotaExceeded):
			utils.RespondWithError(w, http.StatusBadRequest, "Daily ad view quota exhausted")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.UserResponseDTO{User: toUserDTO(user)})
}

// Reset godoc
//
//	@Summary		Administrative reset
//	@Description	Zero the user's balance and view counters. The record is kept.
//	@Tags			User
//	@Security		BearerAuth
//	@Produce		json
//	@Param			userId	query		string	true	"User ID"
//	@Success		200		{object}	dto.UserResponseDTO
//	@Failure		400		{object}	utils.Response	"User ID required"
//	@Failure		401		{object}	utils.Response	"Unauthorized"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user [delete]
func (h *UserHandler) Reset(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "User ID required")
		return
	}

	user, err := h.userService.ResetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.UserResponseDTO{User: toUserDTO(user)})
}

func toUserDTO(user *domain.User) dto.UserDTO {
	return dto.UserDTO{
		ID:               user.ID,
		TelegramID:       user.TelegramID,
		TelegramName:     user.TelegramName,
		TelegramUsername: user.TelegramUsername,
		PhotoURL:         user.PhotoURL,
		DanaNumber:       user.DanaNumber,
		DanaName:         user.DanaName,
		Balance:          user.Balance,
		TodayAdViews:     user.TodayAdViews,
		TotalAdViews:     user.TotalAdViews,
		LastAdViewDate:   user.LastAdViewDate.Format(time.DateOnly),
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}
