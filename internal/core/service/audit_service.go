package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/userhub/accounts-api/internal/api/metrics"
	"github.com/userhub/accounts-api/internal/core/domain"
	"github.com/userhub/accounts-api/internal/core/ports"
)

const defaultAuditLimit = 50

type auditService struct {
	eventRepo ports.EventRepository
	log       zerolog.Logger
}

// NewAuditService returns an AuditService persisting the security audit trail.
func NewAuditService(eventRepo ports.EventRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{eventRepo: eventRepo, log: log}
}

// Process persists a single audit event delivered by a dispatcher worker.
func (s *auditService) Process(ctx context.Context, in ports.AuthEventInput) error {
	event := &domain.AuthEvent{
		Action:    in.Action,
		Username:  in.Username,
		AccountID: in.AccountID,
		Reason:    in.Reason,
		Timestamp: in.Timestamp,
	}

	if err := s.eventRepo.InsertEvent(ctx, event); err != nil {
		metrics.AuditEventsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("process audit event: %w", err)
	}

	metrics.AuditEventsTotal.WithLabelValues(in.Action).Inc()
	s.log.Debug().
		Str("action", in.Action).
		Str("username", in.Username).
		Msg("audit event recorded")

	return nil
}

func (s *auditService) ListRecent(ctx context.Context, limit int) ([]domain.AuthEvent, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	events, err := s.eventRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return events, nil
}
