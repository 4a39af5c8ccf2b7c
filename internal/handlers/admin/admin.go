package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/GlebRadaev/adrewards/internal/domain"
	"github.com/GlebRadaev/adrewards/internal/dto"
	adminservice "github.com/GlebRadaev/adrewards/internal/service/adminservice"
	withdrawalservice "github.com/GlebRadaev/adrewards/internal/service/withdrawalservice"
	"github.com/GlebRadaev/adrewards/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type Service interface {
	Login(password string) (string, error)
}

type WithdrawalService interface {
	UpdateStatus(ctx context.Context, id, status string) (*domain.Withdrawal, error)
	GetAllForExport(ctx context.Context) ([]domain.WithdrawalWithUser, error)
}

type AdminHandler struct {
	adminService      Service
	withdrawalService WithdrawalService
}

func New(adminService Service, withdrawalService WithdrawalService) *AdminHandler {
	return &AdminHandler{
		adminService:      adminService,
		withdrawalService: withdrawalService,
	}
}

// Login godoc
//
//	@Summary		Operator login
//	@Description	Exchange the operator password for a bearer token.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AdminLoginRequestDTO	true	"Login payload"
//	@Success		200		{object}	dto.AdminLoginResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Invalid credentials"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/login [post]
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminLoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Password required")
		return
	}

	token, err := h.adminService.Login(req.Password)
	if err != nil {
		if errors.Is(err, adminservice.ErrInvalidCredentials) {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	utils.RespondWithJSON(w, http.StatusOK, dto.AdminLoginResponseDTO{Token: token})
}

// UpdateStatus godoc
//
//	@Summary		Advance a withdrawal status
//	@Description	Move a withdrawal through PENDING -> PROCESSING -> SUCCESS, or to FAILED. Terminal states never change.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Withdrawal ID"
//	@Param			request	body		dto.UpdateWithdrawalStatusRequestDTO	true	"Target status"
//	@Success		200		{object}	dto.WithdrawalDTO
//	@Failure		400		{object}	utils.Response	"Unknown status"
//	@Failure		401		{object}	utils.Response	"Unauthorized"
//	@Failure		404		{object}	utils.Response	"Withdrawal not found"
//	@Failure		409		{object}	utils.Response	"Invalid transition"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/withdrawals/{id}/status [patch]
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateWithdrawalStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	withdrawal, err := h.withdrawalService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, withdrawalservice.ErrInvalidStatus):
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown withdrawal status")
		case errors.Is(err, withdrawalservice.ErrWithdrawalNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Withdrawal not found")
		case errors.Is(err, withdrawalservice.ErrInvalidTransition):
			utils.RespondWithError(w, http.StatusConflict, "Invalid status transition")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WithdrawalDTO{
		ID:        withdrawal.ID,
		Amount:    withdrawal.Amount,
		Status:    withdrawal.Status,
		CreatedAt: withdrawal.CreatedAt,
	})
}

// Export godoc
//
//	@Summary		Export withdrawals report
//	@Description	Download recent withdrawals with full payout data as an xlsx file.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Success		200	{file}		file
//	@Failure		401	{object}	utils.Response	"Unauthorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/withdrawals/export [get]
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	withdrawals, err := h.withdrawalService.GetAllForExport(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	f := excelize.NewFile()
	sheetName := "Withdrawals"
	index, _ := f.NewSheet(sheetName)
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"ID", "User ID", "Username", "Payout Number", "Amount", "Remaining Balance", "Status", "Created At", "Updated At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, wd := range withdrawals {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), wd.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), wd.UserID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), wd.TelegramUsername)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), wd.DanaNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), wd.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), wd.RemainingBalance)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), wd.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), wd.CreatedAt.Format("02.01.2006 15:04"))
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), wd.UpdatedAt.Format("02.01.2006 15:04"))
	}

	filename := "withdrawals_" + time.Now().UTC().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := f.Write(w); err != nil {
		zap.L().Error("can't write xlsx report", zap.Error(err))
	}
}
