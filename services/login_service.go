package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"restopos/models"
	"restopos/repository"
	"restopos/utils"
)

var (
	ErrMesaNotFound = errors.New("mesa not found")
	ErrMesaInactive = errors.New("mesa is not active")
	ErrInvalidEmail = errors.New("email format is not valid")
)

// LoginService drives the guest login protocol: resolve the table, resolve
// or create the guest, then reuse, roll over or open the shared table
// session.
type LoginService struct {
	tables         *repository.TableRepository
	customers      *repository.CustomerRepository
	sessions       *repository.SessionRepository
	participants   *repository.ParticipantRepository
	sessionMinutes int
}

func NewLoginService(db *gorm.DB, sessionMinutes int) *LoginService {
	if sessionMinutes <= 0 {
		sessionMinutes = 120
	}
	return &LoginService{
		tables:         repository.NewTableRepository(db),
		customers:      repository.NewCustomerRepository(db),
		sessions:       repository.NewSessionRepository(db),
		participants:   repository.NewParticipantRepository(db),
		sessionMinutes: sessionMinutes,
	}
}

type LoginInput struct {
	Email   string
	Name    string
	TableID string
}

type LoginResult struct {
	CustomerID string
	SessionID  string
	Token      string
	ExpiresAt  time.Time
}

// ValidEmail applies the deliberately loose check inherited from the POS:
// anything containing "@", "correo" or "mail" passes.
func ValidEmail(email string) bool {
	lower := strings.ToLower(email)
	return strings.Contains(lower, "@") ||
		strings.Contains(lower, "correo") ||
		strings.Contains(lower, "mail")
}

func (s *LoginService) Login(in LoginInput) (*LoginResult, error) {
	if !ValidEmail(in.Email) {
		return nil, ErrInvalidEmail
	}

	table, err := s.tables.ByID(in.TableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMesaNotFound
		}
		return nil, err
	}
	if !table.Active {
		return nil, ErrMesaInactive
	}

	now := time.Now()

	customer, err := s.resolveCustomer(in.Email, in.Name, now)
	if err != nil {
		return nil, err
	}

	session, err := s.resolveSession(table.ID, customer.ID, now)
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Guest %s joined session %s on table %d", customer.Email, session.ID, table.Number)

	return &LoginResult{
		CustomerID: customer.ID,
		SessionID:  session.ID,
		Token:      session.Token,
		ExpiresAt:  session.ExpiresAt(),
	}, nil
}

func (s *LoginService) resolveCustomer(email, name string, now time.Time) (*models.Customer, error) {
	customer, err := s.customers.ByEmail(email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		customer = &models.Customer{
			Email:        email,
			Name:         name,
			LastAccessAt: now,
		}
		if err := s.customers.Create(customer); err != nil {
			return nil, err
		}
		return customer, nil
	}

	if err := s.customers.Touch(customer, name, now); err != nil {
		return nil, err
	}
	return customer, nil
}

// resolveSession implements the session state machine. The reads and writes
// are deliberately not atomic: under concurrent logins two sessions can end
// up active on one table, which the maintenance sweep repairs afterwards.
func (s *LoginService) resolveSession(tableID, customerID string, now time.Time) (*models.TableSession, error) {
	existing, err := s.sessions.ActiveForTable(tableID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return s.openSession(tableID, customerID, now)
	}

	if existing.Expired(now) {
		// Housekeeping only: a failure here must not block the rollover.
		if err := s.sessions.Close(existing.ID, models.SessionFinalized, now); err != nil {
			utils.ErrorLogger.Printf("could not finalize expired session %s: %v", existing.ID, err)
		}
		return s.openSession(tableID, customerID, now)
	}

	joined, err := s.participants.Exists(existing.ID, customerID)
	if err != nil {
		return nil, err
	}
	if !joined {
		if err := s.participants.Add(existing.ID, customerID, now); err != nil {
			return nil, err
		}
	}
	return existing, nil
}

func (s *LoginService) openSession(tableID, customerID string, now time.Time) (*models.TableSession, error) {
	session := &models.TableSession{
		TableID:         tableID,
		CreatedByID:     customerID,
		Token:           utils.NewSessionToken(),
		Status:          models.SessionActive,
		StartedAt:       now,
		DurationMinutes: s.sessionMinutes,
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, err
	}
	if err := s.participants.Add(session.ID, customerID, now); err != nil {
		return nil, err
	}
	return session, nil
}
