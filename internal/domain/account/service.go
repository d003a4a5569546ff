package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rpggio/bizpilot/internal/domain/journal"
	"github.com/rpggio/bizpilot/internal/resource"
)

// ResourceName is the journal name for signups.
const ResourceName = "users"

// Service handles account operations.
type Service struct {
	remote  Remote
	journal resource.Journal
	logger  *slog.Logger
}

// NewService creates a new account service. j may be nil.
func NewService(remote Remote, j resource.Journal, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{remote: remote, journal: j, logger: logger}
}

// Signup validates the request locally and submits it.
func (s *Service) Signup(ctx context.Context, req SignupRequest) error {
	err := resource.Check(ResourceName, req).Err()
	if err == nil {
		err = resource.AsNetworkError("signup", s.remote.Signup(ctx, req))
	}
	s.record(ctx, req, err)
	if err != nil {
		return err
	}
	s.logger.Info("signup submitted", "request", req)
	return nil
}

func (s *Service) record(ctx context.Context, req SignupRequest, err error) {
	if s.journal == nil {
		return
	}
	entry := &journal.Entry{
		Resource:  ResourceName,
		Operation: journal.OpSignup,
		EntityID:  req.Email,
		Outcome:   journal.OutcomeOK,
		CreatedAt: time.Now(),
	}
	if err != nil {
		entry.Outcome = journal.OutcomeNetworkFailed
		if errors.Is(err, resource.ErrValidation) {
			entry.Outcome = journal.OutcomeValidationFailed
		}
		entry.Detail = err.Error()
	}
	if err := s.journal.Log(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Warn("journal write failed", "op", journal.OpSignup, "error", err)
	}
}
