package withdrawal

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/GlebRadaev/adrewards/internal/domain"
	"github.com/GlebRadaev/adrewards/internal/dto"
	withdrawalservice "github.com/GlebRadaev/adrewards/internal/service/withdrawalservice"
	"github.com/GlebRadaev/adrewards/pkg/utils"
	"github.com/GlebRadaev/adrewards/pkg/validate"
)

type Service interface {
	RequestWithdrawal(ctx context.Context, userID, danaNumber, danaName string, amount int64) (int64, error)
	GetHistory(ctx context.Context, userID string) (*domain.User, []domain.Withdrawal, error)
	GetProofOfPayment(ctx context.Context) ([]domain.WithdrawalWithUser, error)
}

type WithdrawalHandler struct {
	withdrawalService Service
}

func New(withdrawalService Service) *WithdrawalHandler {
	return &WithdrawalHandler{
		withdrawalService: withdrawalService,
	}
}

// Withdraw godoc
//
//	@Summary		Request a withdrawal
//	@Description	Debit the balance and create a PENDING withdrawal for the payout destination. Both happen in one transaction.
//	@Tags			Withdrawal
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawRequestDTO	true	"Withdrawal request payload"
//	@Success		200		{object}	dto.WithdrawResponseDTO
//	@Failure		400		{object}	utils.Response	"Validation failure or insufficient balance"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/withdraw [post]
func (h *WithdrawalHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req dto.WithdrawRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UserID == "" || req.DanaNumber == "" || req.DanaName == "" || req.Amount == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if !validate.IsPayoutNumber(req.DanaNumber) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payout number")
		return
	}

	amount, err := req.Amount.Float64()
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid withdrawal amount")
		return
	}

	remaining, err := h.withdrawalService.RequestWithdrawal(r.Context(), req.UserID, req.DanaNumber, req.DanaName, int64(amount))
	if err != nil {
		switch {
		case errors.Is(err, withdrawalservice.ErrInvalidAmount):
			utils.RespondWithError(w, http.StatusBadRequest, "Withdrawal amount below minimum")
		case errors.Is(err, withdrawalservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusBadRequest, "Insufficient balance")
		case errors.Is(err, withdrawalservice.ErrUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WithdrawResponseDTO{
		RemainingBalance: remaining,
		Message:          "withdrawal request accepted",
	})
}

// History godoc
//
//	@Summary		Get withdrawal history
//	@Description	List the user's withdrawals newest first, with the saved payout destination.
//	@Tags			Withdrawal
//	@Produce		json
//	@Param			userId	query		string	true	"User ID"
//	@Success		200		{object}	dto.WithdrawalHistoryResponseDTO
//	@Failure		400		{object}	utils.Response	"User ID required"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/withdrawal-history [get]
func (h *WithdrawalHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "User ID required")
		return
	}

	user, withdrawals, err := h.withdrawalService.GetHistory(r.Context(), userID)
	if err != nil {
		if errors.Is(err, withdrawalservice.ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch withdrawals")
		return
	}

	response := dto.WithdrawalHistoryResponseDTO{
		DanaNumber:  user.DanaNumber,
		DanaName:    user.DanaName,
		Withdrawals: make([]dto.WithdrawalDTO, len(withdrawals)),
	}
	for i, wd := range withdrawals {
		response.Withdrawals[i] = dto.WithdrawalDTO{
			ID:        wd.ID,
			Amount:    wd.Amount,
			Status:    wd.Status,
			CreatedAt: wd.CreatedAt,
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Proof godoc
//
//	@Summary		Proof of payment listing
//	@Description	The most recent withdrawals across all users, with payout numbers redacted to the last four digits.
//	@Tags			Withdrawal
//	@Produce		json
//	@Success		200	{object}	dto.ProofOfPaymentResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/proof-of-payment [get]
func (h *WithdrawalHandler) Proof(w http.ResponseWriter, r *http.Request) {
	withdrawals, err := h.withdrawalService.GetProofOfPayment(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch payments")
		return
	}

	response := dto.ProofOfPaymentResponseDTO{
		Withdrawals: make([]dto.ProofWithdrawalDTO, len(withdrawals)),
	}
	for i, wd := range withdrawals {
		response.Withdrawals[i] = dto.ProofWithdrawalDTO{
			ID:        wd.ID,
			Amount:    wd.Amount,
			Status:    wd.Status,
			UpdatedAt: wd.UpdatedAt,
			User: dto.ProofUserDTO{
				TelegramUsername: wd.TelegramUsername,
				DanaNumber:       wd.DanaNumber,
			},
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}
