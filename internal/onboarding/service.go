package onboarding

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/dashapi"
	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/hours"
	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/metrics"
	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/model"
)

// API is the part of the onboarding backend the service needs.
type API interface {
	GetOnboarding(ctx context.Context, companyID string) (*dashapi.Onboarding, error)
	SaveBusinessHours(ctx context.Context, companyID string, hours model.WeeklyScheduleWire) error
}

// ValidationError carries the form validator's message when a save is refused.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Service opens, edits and saves business-hours sessions.
type Service struct {
	api      API
	sessions *SessionStore
	logger   *zerolog.Logger
}

// NewService creates a service. A nil logger discards output.
func NewService(api API, sessions *SessionStore, logger *zerolog.Logger) *Service {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if sessions == nil {
		sessions = NewSessionStore(0)
	}
	return &Service{api: api, sessions: sessions, logger: logger}
}

// Open returns the company's session, loading the stored schedule the first
// time. Later calls reuse the loaded state without another request.
// The request runs outside the session lock; concurrent first opens of the
// same company share one request in the API client.
func (s *Service) Open(ctx context.Context, companyID string) (*Session, error) {
	session := s.sessions.GetOrCreate(companyID)
	metrics.SetActiveSessions(s.sessions.Len())
	if session.Loaded() {
		return session, nil
	}

	resp, err := s.api.GetOnboarding(ctx, companyID)
	if err != nil {
		metrics.IncScheduleLoad("error")
		s.logger.Error().Err(err).Str("company_id", companyID).Msg("failed to load business hours")
		return nil, fmt.Errorf("load business hours: %w", err)
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	if session.loaded {
		return session, nil
	}
	session.Timezone = resp.Timezone
	session.manager.ReconcileFromServer(resp.BusinessHours)
	session.loaded = true
	metrics.IncScheduleLoad("ok")
	s.logger.Debug().
		Str("company_id", companyID).
		Str("mode", string(session.manager.Mode())).
		Msg("business hours loaded")
	return session, nil
}

// Reload discards local edits and loads the stored schedule again.
func (s *Service) Reload(ctx context.Context, companyID string) (*Session, error) {
	s.Discard(companyID)
	return s.Open(ctx, companyID)
}

// Save validates the session and submits its payload. A form that fails
// validation is not sent and yields *ValidationError.
func (s *Service) Save(ctx context.Context, companyID string) error {
	session := s.sessions.Get(companyID)
	if session == nil {
		return fmt.Errorf("no open session for company %s", companyID)
	}

	var (
		msg     string
		payload model.WeeklyScheduleWire
	)
	session.View(func(m *hours.Manager) {
		msg = m.Validate()
		payload = m.ToAPIPayload()
	})
	if msg != "" {
		metrics.IncValidationFailure()
		s.logger.Info().Str("company_id", companyID).Str("reason", msg).Msg("business hours rejected")
		return &ValidationError{Message: msg}
	}

	if err := s.api.SaveBusinessHours(ctx, companyID, payload); err != nil {
		metrics.IncScheduleSave("error")
		s.logger.Error().Err(err).Str("company_id", companyID).Msg("failed to save business hours")
		return fmt.Errorf("save business hours: %w", err)
	}

	metrics.IncScheduleSave("ok")
	s.logger.Info().Str("company_id", companyID).Msg("business hours saved")
	return nil
}

// Discard drops the company's session.
func (s *Service) Discard(companyID string) {
	s.sessions.Delete(companyID)
	metrics.SetActiveSessions(s.sessions.Len())
}

// RunCleanup removes idle sessions every interval until ctx is done.
func (s *Service) RunCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.sessions.Cleanup(); removed > 0 {
				s.logger.Info().Int("removed", removed).Msg("expired onboarding sessions")
			}
			metrics.SetActiveSessions(s.sessions.Len())
		}
	}
}
