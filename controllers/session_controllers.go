package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restopos/models"
	"restopos/repository"
	"restopos/schemas"
	"restopos/services"
	"restopos/utils"
)

type SessionController struct {
	DB           *gorm.DB
	Login        *services.LoginService
	Maintenance  *services.SessionMaintenanceService
	sessions     *repository.SessionRepository
	participants *repository.ParticipantRepository
}

func NewSessionController(db *gorm.DB, sessionMinutes int) *SessionController {
	return &SessionController{
		DB:           db,
		Login:        services.NewLoginService(db, sessionMinutes),
		Maintenance:  services.NewSessionMaintenanceService(db),
		sessions:     repository.NewSessionRepository(db),
		participants: repository.NewParticipantRepository(db),
	}
}

// GuestLogin -> POST /login?id_mesa=<id>
// Joins the caller to the table's shared session, rolling the session over
// when the previous one has expired.
func (sc *SessionController) GuestLogin(c *gin.Context) {
	tableID := c.Query("id_mesa")
	if tableID == "" {
		utils.RespondDetail(c, http.StatusUnprocessableEntity, "id_mesa query parameter is required")
		return
	}

	var req schemas.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result, err := sc.Login.Login(services.LoginInput{
		Email:   req.Email,
		Name:    req.Name,
		TableID: tableID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMesaNotFound):
			utils.RespondDetailCode(c, http.StatusNotFound, "Mesa no encontrada", "MESA_NOT_FOUND")
		case errors.Is(err, services.ErrMesaInactive):
			utils.RespondDetailCode(c, http.StatusNotFound, "La mesa no está activa", "MESA_INACTIVE")
		case errors.Is(err, services.ErrInvalidEmail):
			utils.RespondDetail(c, http.StatusUnprocessableEntity, "El email no tiene un formato válido")
		case errors.Is(err, gorm.ErrDuplicatedKey):
			utils.RespondDetail(c, http.StatusBadRequest, err.Error())
		default:
			utils.ErrorLogger.Printf("Guest login failed for table %s: %v", tableID, err)
			utils.RespondDetail(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, schemas.NewLoginResponse(result, "Sesión iniciada correctamente"))
}

// GetSessionByToken -> GET /sessions/:token
// Guest re-entry: resolves the shared token to the session and its guests.
func (sc *SessionController) GetSessionByToken(c *gin.Context) {
	token := c.Param("token")

	session, err := sc.sessions.ByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondDetailCode(c, http.StatusNotFound, "Sesión no encontrada", "SESSION_NOT_FOUND")
			return
		}
		utils.RespondDetail(c, http.StatusInternalServerError, err.Error())
		return
	}

	participants, err := sc.participants.ForSession(session.ID)
	if err != nil {
		utils.RespondDetail(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, schemas.NewSessionDetail(session, participants))
}

// ListSessions -> GET /admin/sessions?id_mesa=&estado=&limit=&offset=
func (sc *SessionController) ListSessions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	sessions, total, err := sc.sessions.List(repository.SessionFilter{
		TableID: c.Query("id_mesa"),
		Status:  c.Query("estado"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	items := make([]schemas.SessionDetail, 0, len(sessions))
	for i := range sessions {
		items = append(items, schemas.NewSessionDetail(&sessions[i], nil))
	}

	utils.RespondJSON(c, http.StatusOK, "List of sessions", gin.H{
		"total": total,
		"items": items,
	})
}

// GetSessionByID -> GET /admin/sessions/:session_id
func (sc *SessionController) GetSessionByID(c *gin.Context) {
	session, err := sc.sessions.ByID(c.Param("session_id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	participants, err := sc.participants.ForSession(session.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session detail", schemas.NewSessionDetail(session, participants))
}

// CloseSession -> POST /admin/sessions/:session_id/close
// Manual close: terminal state cerrada, as opposed to the sweep's finalizada.
func (sc *SessionController) CloseSession(c *gin.Context) {
	session, err := sc.sessions.ByID(c.Param("session_id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if session.Status != models.SessionActive {
		utils.RespondError(c, http.StatusBadRequest, &CustomError{"Session is not active"})
		return
	}

	if err := sc.sessions.Close(session.ID, models.SessionClosed, time.Now()); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Session %s closed manually", session.ID)
	utils.RespondJSON(c, http.StatusOK, "Session closed", gin.H{"id": session.ID})
}

// UpdateSession -> PATCH /admin/sessions/:session_id
// Generic field update for operational fixes (state, window length).
func (sc *SessionController) UpdateSession(c *gin.Context) {
	var body struct {
		Status          *string `json:"estado"`
		DurationMinutes *int    `json:"duracion_minutos"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := sc.sessions.ByID(c.Param("session_id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	fields := map[string]interface{}{}
	if body.Status != nil {
		switch *body.Status {
		case models.SessionActive, models.SessionInactive, models.SessionClosed, models.SessionFinalized:
			fields["status"] = *body.Status
		default:
			utils.RespondError(c, http.StatusBadRequest, &CustomError{"Unknown session state"})
			return
		}
	}
	if body.DurationMinutes != nil {
		if *body.DurationMinutes <= 0 {
			utils.RespondError(c, http.StatusBadRequest, &CustomError{"Duration must be positive"})
			return
		}
		fields["duration_minutes"] = *body.DurationMinutes
	}
	if len(fields) == 0 {
		utils.RespondError(c, http.StatusBadRequest, &CustomError{"Nothing to update"})
		return
	}

	if err := sc.sessions.UpdateFields(session.ID, fields); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	updated, err := sc.sessions.ByID(session.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Session updated", schemas.NewSessionDetail(updated, nil))
}

// DeleteSession -> DELETE /admin/sessions/:session_id
func (sc *SessionController) DeleteSession(c *gin.Context) {
	session, err := sc.sessions.ByID(c.Param("session_id"))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := sc.sessions.Delete(session.ID); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Session %s deleted", session.ID)
	utils.RespondJSON(c, http.StatusOK, "Session deleted", gin.H{"id": session.ID})
}

// RepairDuplicates -> POST /admin/sessions/repair-duplicates
func (sc *SessionController) RepairDuplicates(c *gin.Context) {
	report, err := sc.Maintenance.RepairDuplicateActives()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Duplicate sessions repaired", report)
}

// SweepExpired -> POST /admin/sessions/sweep-expired
func (sc *SessionController) SweepExpired(c *gin.Context) {
	finalized, err := sc.Maintenance.SweepExpired()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Expired sessions finalized", gin.H{
		"sessions_finalized": finalized,
	})
}
