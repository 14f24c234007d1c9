// Package schemas holds the wire-level request/response shapes of the guest
// API. The persistence models never cross the HTTP boundary directly; the
// mapping functions here are the only bridge.
package schemas

import (
	"time"

	"restopos/models"
	"restopos/services"
)

// LoginRequest is the guest login body. Field names follow the original
// POS contract.
type LoginRequest struct {
	Email string `json:"email" binding:"required"`
	Name  string `json:"nombre" binding:"required"`
}

type LoginResponse struct {
	Status       int     `json:"status"`
	Code         string  `json:"code"`
	CustomerID   string  `json:"id_usuario"`
	SessionID    string  `json:"id_sesion_mesa"`
	SessionToken string  `json:"token_sesion"`
	Message      string  `json:"message"`
	ExpiresAt    *string `json:"fecha_expiracion"`
}

func NewLoginResponse(result *services.LoginResult, message string) LoginResponse {
	var expires *string
	if !result.ExpiresAt.IsZero() {
		v := result.ExpiresAt.Format(time.RFC3339)
		expires = &v
	}
	return LoginResponse{
		Status:       200,
		Code:         "SUCCESS",
		CustomerID:   result.CustomerID,
		SessionID:    result.SessionID,
		SessionToken: result.Token,
		Message:      message,
		ExpiresAt:    expires,
	}
}

type ParticipantInfo struct {
	CustomerID string `json:"id_usuario"`
	Name       string `json:"nombre"`
	Email      string `json:"email"`
	JoinedAt   string `json:"fecha_union"`
}

type SessionDetail struct {
	ID              string            `json:"id_sesion_mesa"`
	TableID         string            `json:"id_mesa"`
	Token           string            `json:"token_sesion"`
	Status          string            `json:"estado"`
	StartedAt       string            `json:"fecha_inicio"`
	EndedAt         *string           `json:"fecha_fin"`
	DurationMinutes int               `json:"duracion_minutos"`
	ExpiresAt       string            `json:"fecha_expiracion"`
	Participants    []ParticipantInfo `json:"participantes,omitempty"`
}

func NewSessionDetail(session *models.TableSession, participants []models.SessionParticipant) SessionDetail {
	detail := SessionDetail{
		ID:              session.ID,
		TableID:         session.TableID,
		Token:           session.Token,
		Status:          session.Status,
		StartedAt:       session.StartedAt.Format(time.RFC3339),
		DurationMinutes: session.DurationMinutes,
		ExpiresAt:       session.ExpiresAt().Format(time.RFC3339),
	}
	if session.EndedAt != nil {
		v := session.EndedAt.Format(time.RFC3339)
		detail.EndedAt = &v
	}
	for _, p := range participants {
		detail.Participants = append(detail.Participants, ParticipantInfo{
			CustomerID: p.CustomerID,
			Name:       p.Customer.Name,
			Email:      p.Customer.Email,
			JoinedAt:   p.JoinedAt.Format(time.RFC3339),
		})
	}
	return detail
}
