package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
	"github.com/241luca/soccer-manager/pkg/logger"
)

type sweepOrganizationStorage interface {
	ListActiveIDs(ctx context.Context) ([]string, error)
}

type sweepDocumentStorage interface {
	ExpiringBefore(ctx context.Context, organizationID string, before time.Time) ([]entity.Document, error)
}

type sweepPaymentStorage interface {
	Unpaid(ctx context.Context, organizationID string, dueBefore time.Time) ([]entity.Payment, error)
}

type sweepMatchStorage interface {
	ScheduledBetween(ctx context.Context, organizationID string, from, to time.Time) ([]entity.Match, error)
}

type sweepTransportStorage interface {
	ActiveRoutes(ctx context.Context, organizationID string) ([]entity.BusRoute, error)
	CountAssignments(ctx context.Context, routeID string) (int64, error)
}

// sweepNotifier is the slice of NotificationService the sweep needs: creating
// notifications and checking the dedup window.
type sweepNotifier interface {
	Create(ctx context.Context, organizationID string, data dto.CreateNotification) (*entity.Notification, error)
	ExistsSince(ctx context.Context, organizationID string, notificationType entity.NotificationType, relatedEntityID string, since time.Time) (bool, error)
}

const (
	paymentDedupWindow   = 7 * 24 * time.Hour
	transportDedupWindow = 7 * 24 * time.Hour
	capacityThreshold    = 0.9
)

// SweepService runs the periodic checks that turn domain state into
// notifications: expiring documents, overdue payments, next-day matches and
// nearly full bus routes. Each check looks up a prior notification for the
// same entity inside its dedup window, so a sweep can run any number of
// times without duplicating.
type SweepService struct {
	organizations sweepOrganizationStorage
	documents     sweepDocumentStorage
	payments      sweepPaymentStorage
	matches       sweepMatchStorage
	transport     sweepTransportStorage
	notifier      sweepNotifier
	clock         clockwork.Clock
	logger        *logger.Logger
}

func NewSweepService(
	organizations sweepOrganizationStorage,
	documents sweepDocumentStorage,
	payments sweepPaymentStorage,
	matches sweepMatchStorage,
	transport sweepTransportStorage,
	notifier sweepNotifier,
	clock clockwork.Clock,
	log *logger.Logger,
) *SweepService {
	return &SweepService{
		organizations: organizations,
		documents:     documents,
		payments:      payments,
		matches:       matches,
		transport:     transport,
		notifier:      notifier,
		clock:         clock,
		logger:        log,
	}
}

// Run sweeps every active organization. Per-organization failures are logged
// and do not stop the rest of the run.
func (s *SweepService) Run(ctx context.Context) error {
	ids, err := s.organizations.ListActiveIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err = s.RunOrganization(ctx, id); err != nil {
			s.logger.Errorf("sweep failed for organization %s: %v", id, err)
		}
	}
	return nil
}

func (s *SweepService) RunOrganization(ctx context.Context, organizationID string) error {
	if err := s.checkDocuments(ctx, organizationID); err != nil {
		return fmt.Errorf("document check: %w", err)
	}
	if err := s.checkPayments(ctx, organizationID); err != nil {
		return fmt.Errorf("payment check: %w", err)
	}
	if err := s.checkMatches(ctx, organizationID); err != nil {
		return fmt.Errorf("match check: %w", err)
	}
	if err := s.checkTransport(ctx, organizationID); err != nil {
		return fmt.Errorf("transport check: %w", err)
	}
	return nil
}

// checkDocuments notifies on documents expiring within 30 days or already
// expired. Urgency drives both the severity and how often the reminder
// repeats: expired and last-week documents daily, inside two weeks every
// three days, otherwise weekly.
func (s *SweepService) checkDocuments(ctx context.Context, organizationID string) error {
	now := s.clock.Now()
	documents, err := s.documents.ExpiringBefore(ctx, organizationID, now.AddDate(0, 0, 30))
	if err != nil {
		return err
	}
	for i := range documents {
		d := &documents[i]
		daysLeft := int(d.ExpiryDate.Sub(now).Hours() / 24)

		var severity entity.NotificationSeverity
		var window time.Duration
		switch {
		case daysLeft <= 7:
			severity = entity.SeverityError
			window = 24 * time.Hour
		case daysLeft <= 15:
			severity = entity.SeverityWarning
			window = 3 * 24 * time.Hour
		default:
			severity = entity.SeverityInfo
			window = 7 * 24 * time.Hour
		}

		exists, err := s.notifier.ExistsSince(ctx, organizationID, entity.NotificationTypeDocumentExpiry, d.ID, now.Add(-window))
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		title := "Document expiring"
		message := fmt.Sprintf("%s of %s %s expires in %d days",
			d.DocumentType.Name, d.Athlete.FirstName, d.Athlete.LastName, daysLeft)
		if daysLeft < 0 {
			title = "Document expired"
			message = fmt.Sprintf("%s of %s %s expired %d days ago",
				d.DocumentType.Name, d.Athlete.FirstName, d.Athlete.LastName, -daysLeft)
		}

		if _, err = s.notifier.Create(ctx, organizationID, dto.CreateNotification{
			Type:              string(entity.NotificationTypeDocumentExpiry),
			Severity:          string(severity),
			Title:             title,
			Message:           message,
			RelatedEntityType: "document",
			RelatedEntityID:   d.ID,
		}); err != nil {
			return err
		}
	}
	return nil
}

// checkPayments reminds about unpaid payments past their due date, at most
// once a week per payment. A month overdue escalates to error severity.
func (s *SweepService) checkPayments(ctx context.Context, organizationID string) error {
	now := s.clock.Now()
	payments, err := s.payments.Unpaid(ctx, organizationID, now)
	if err != nil {
		return err
	}
	for i := range payments {
		p := &payments[i]

		exists, err := s.notifier.ExistsSince(ctx, organizationID, entity.NotificationTypePaymentOverdue, p.ID, now.Add(-paymentDedupWindow))
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		days := p.DaysOverdue(now)
		severity := entity.SeverityWarning
		if days > 30 {
			severity = entity.SeverityError
		}

		if _, err = s.notifier.Create(ctx, organizationID, dto.CreateNotification{
			Type:     string(entity.NotificationTypePaymentOverdue),
			Severity: string(severity),
			Title:    "Payment overdue",
			Message: fmt.Sprintf("%s %s has a payment of %.2f EUR overdue by %d days",
				p.Athlete.FirstName, p.Athlete.LastName, p.Amount, days),
			RelatedEntityType: "payment",
			RelatedEntityID:   p.ID,
		}); err != nil {
			return err
		}
	}
	return nil
}

// checkMatches reminds about matches scheduled for tomorrow. One reminder per
// match; the lookup window covers the whole lead time so a reminder never
// repeats.
func (s *SweepService) checkMatches(ctx context.Context, organizationID string) error {
	now := s.clock.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	to := from.AddDate(0, 0, 1)

	matches, err := s.matches.ScheduledBetween(ctx, organizationID, from, to)
	if err != nil {
		return err
	}
	for i := range matches {
		m := &matches[i]

		exists, err := s.notifier.ExistsSince(ctx, organizationID, entity.NotificationTypeMatchReminder, m.ID, now.Add(-48*time.Hour))
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		opponent := m.AwayTeamName
		if m.AwayTeam != nil {
			opponent = m.AwayTeam.Name
		}
		if _, err = s.notifier.Create(ctx, organizationID, dto.CreateNotification{
			Type:     string(entity.NotificationTypeMatchReminder),
			Severity: string(entity.SeverityInfo),
			Title:    "Match tomorrow",
			Message: fmt.Sprintf("%s vs %s tomorrow at %s, %s",
				m.HomeTeam.Name, opponent, m.Time, m.Venue),
			RelatedEntityType: "match",
			RelatedEntityID:   m.ID,
		}); err != nil {
			return err
		}
	}
	return nil
}

// checkTransport flags active bus routes at 90% capacity or above, at most
// once a week per route.
func (s *SweepService) checkTransport(ctx context.Context, organizationID string) error {
	now := s.clock.Now()
	routes, err := s.transport.ActiveRoutes(ctx, organizationID)
	if err != nil {
		return err
	}
	for i := range routes {
		r := &routes[i]
		if r.Bus.Capacity <= 0 {
			continue
		}
		assigned, err := s.transport.CountAssignments(ctx, r.ID)
		if err != nil {
			return err
		}
		if float64(assigned) < float64(r.Bus.Capacity)*capacityThreshold {
			continue
		}

		exists, err := s.notifier.ExistsSince(ctx, organizationID, entity.NotificationTypeTransportCapacity, r.ID, now.Add(-transportDedupWindow))
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		if _, err = s.notifier.Create(ctx, organizationID, dto.CreateNotification{
			Type:     string(entity.NotificationTypeTransportCapacity),
			Severity: string(entity.SeverityWarning),
			Title:    "Bus route almost full",
			Message: fmt.Sprintf("Route %s has %d of %d seats taken",
				r.Name, assigned, r.Bus.Capacity),
			RelatedEntityType: "bus_route",
			RelatedEntityID:   r.ID,
		}); err != nil {
			return err
		}
	}
	return nil
}
