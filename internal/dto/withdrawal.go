package dto

import (
	"encoding/json"
	"time"
)

type WithdrawRequestDTO struct {
	UserID     string      `json:"userId" example:"8b2f2f5e-25c7-47c0-a4a9-bb1a07dd53a1"`
	DanaNumber string      `json:"danaNumber" example:"081234567890"`
	DanaName   string      `json:"danaName" example:"Budi Santoso"`
	Amount     json.Number `json:"amount" swaggertype:"integer" example:"3000"`
}

type WithdrawResponseDTO struct {
	RemainingBalance int64  `json:"remainingBalance" example:"2000"`
	Message          string `json:"message" example:"withdrawal request accepted"`
}

type WithdrawalDTO struct {
	ID        string    `json:"id"`
	Amount    int64     `json:"amount" example:"3000"`
	Status    string    `json:"status" example:"PENDING"`
	CreatedAt time.Time `json:"createdAt"`
}

type WithdrawalHistoryResponseDTO struct {
	DanaNumber  string          `json:"danaNumber"`
	DanaName    string          `json:"danaName"`
	Withdrawals []WithdrawalDTO `json:"withdrawals"`
}

type ProofUserDTO struct {
	TelegramUsername string `json:"telegramUsername" example:"budi123"`
	DanaNumber       string `json:"danaNumber" example:"********7890"`
}

type ProofWithdrawalDTO struct {
	ID        string       `json:"id"`
	Amount    int64        `json:"amount" example:"3000"`
	Status    string       `json:"status" example:"SUCCESS"`
	UpdatedAt time.Time    `json:"updatedAt"`
	User      ProofUserDTO `json:"user"`
}

type ProofOfPaymentResponseDTO struct {
	Withdrawals []ProofWithdrawalDTO `json:"withdrawals"`
}
