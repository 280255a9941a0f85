package dto

import (
	"encoding/json"
	"time"

	"github.com/ignatzorin/proposal-builder/internal/models"
)

// RegisterRequest — тело запроса регистрации.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	Username    string `json:"username"`
	CompanyName string `json:"company_name"`
}

// LoginRequest — тело запроса входа.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest — тело запроса обновления токенов.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateProposalRequest — тело запроса создания предложения.
// Поле template позволяет наполнить документ стартовыми разделами
// одноимённого шаблона, если собственные разделы не переданы.
type CreateProposalRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Sections    models.SectionList `json:"sections"`
	Settings    *models.Settings   `json:"settings"`
	Client      models.ClientInfo  `json:"client"`
	ExpiryDate  *time.Time         `json:"expiry_date"`
	TotalValue  *float64           `json:"total_value"`
	Template    string             `json:"template"`
}

// UpdateProposalRequest — частичное обновление предложения.
// Незаполненные поля не изменяют документ.
type UpdateProposalRequest struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Sections    *models.SectionList `json:"sections"`
	Settings    *models.Settings    `json:"settings"`
	Client      *models.ClientInfo  `json:"client"`
	Status      *string             `json:"status"`
	ExpiryDate  *time.Time          `json:"expiry_date"`
	TotalValue  *float64            `json:"total_value"`
}

// UpdateSectionRequest — полная замена одного раздела.
type UpdateSectionRequest struct {
	Title    string           `json:"title"`
	Order    int              `json:"order"`
	Elements []models.Element `json:"elements"`
}

// UpdateElementRequest — полная замена одного блока.
type UpdateElementRequest struct {
	Type     string              `json:"type" binding:"required"`
	Content  json.RawMessage     `json:"content"`
	Position models.Position     `json:"position"`
	Style    models.ElementStyle `json:"style"`
}
