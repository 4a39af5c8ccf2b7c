package dto

import "time"

type ResolveUserRequestDTO struct {
	TelegramID       int64  `json:"telegramId" example:"12345678"`
	TelegramName     string `json:"telegramName" example:"Budi"`
	TelegramUsername string `json:"telegramUsername" example:"budi123"`
	PhotoURL         string `json:"photoUrl" example:"https://t.me/i/userpic/budi.jpg"`
}

type AdViewRequestDTO struct {
	UserID string `json:"userId" example:"8b2f2f5e-25c7-47c0-a4a9-bb1a07dd53a1"`
	Event  string `json:"event" example:"ad_viewed"`
}

type UserDTO struct {
	ID               string    `json:"id"`
	TelegramID       int64     `json:"telegramId"`
	TelegramName     string    `json:"telegramName"`
	TelegramUsername string    `json:"telegramUsername"`
	PhotoURL         string    `json:"photoUrl,omitempty"`
	DanaNumber       string    `json:"danaNumber"`
	DanaName         string    `json:"danaName"`
	Balance          int64     `json:"balance" example:"5000"`
	TodayAdViews     int       `json:"todayAdViews" example:"12"`
	TotalAdViews     int64     `json:"totalAdViews" example:"340"`
	LastAdViewDate   string    `json:"lastAdViewDate" example:"2024-01-02"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type UserResponseDTO struct {
	User UserDTO `json:"user"`
}
