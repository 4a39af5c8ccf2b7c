package dto

type AdminLoginRequestDTO struct {
	Password string `json:"password"`
}

type AdminLoginResponseDTO struct {
	Token string `json:"token"`
}

type UpdateWithdrawalStatusRequestDTO struct {
	Status string `json:"status" example:"PROCESSING"`
}
