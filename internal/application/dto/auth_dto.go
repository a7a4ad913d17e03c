package dto

import (
	"time"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
)

// LoginRequest credenciales reenviadas al backend.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token del workspace creado para este login.
type LoginResponse struct {
	Token       string       `json:"token"`
	WorkspaceID string       `json:"workspaceId"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        *entity.User `json:"user"`
}

// CompanyRequest cambio de empresa activa.
type CompanyRequest struct {
	CompanyID string `json:"companyId"`
}
