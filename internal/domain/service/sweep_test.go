package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type fakeSweepOrgs struct {
	ids []string
}

func (f *fakeSweepOrgs) ListActiveIDs(_ context.Context) ([]string, error) {
	return f.ids, nil
}

type fakeSweepDocs struct {
	documents []entity.Document
}

func (f *fakeSweepDocs) ExpiringBefore(_ context.Context, _ string, before time.Time) ([]entity.Document, error) {
	var out []entity.Document
	for _, d := range f.documents {
		if d.ExpiryDate.Before(before) {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeSweepPayments struct {
	payments []entity.Payment
}

func (f *fakeSweepPayments) Unpaid(_ context.Context, _ string, dueBefore time.Time) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range f.payments {
		if p.DueDate.Before(dueBefore) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeSweepMatches struct {
	matches []entity.Match
}

func (f *fakeSweepMatches) ScheduledBetween(_ context.Context, _ string, from, to time.Time) ([]entity.Match, error) {
	var out []entity.Match
	for _, m := range f.matches {
		if m.Status == entity.MatchStatusScheduled && !m.Date.Before(from) && m.Date.Before(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeSweepTransport struct {
	routes      []entity.BusRoute
	assignments map[string]int64
}

func (f *fakeSweepTransport) ActiveRoutes(_ context.Context, _ string) ([]entity.BusRoute, error) {
	return f.routes, nil
}

func (f *fakeSweepTransport) CountAssignments(_ context.Context, routeID string) (int64, error) {
	return f.assignments[routeID], nil
}

// fakeSweepNotifier stamps created notifications with the fake clock so the
// dedup window behaves like the real storage.
type fakeSweepNotifier struct {
	clock   clockwork.Clock
	created []entity.Notification
}

func (f *fakeSweepNotifier) Create(_ context.Context, organizationID string, data dto.CreateNotification) (*entity.Notification, error) {
	n := entity.Notification{
		ID:              uuid.New().String(),
		CreatedAt:       f.clock.Now(),
		OrganizationID:  organizationID,
		Type:            entity.NotificationType(data.Type),
		Severity:        entity.NotificationSeverity(data.Severity),
		Title:           data.Title,
		Message:         data.Message,
		RelatedEntityID: data.RelatedEntityID,
	}
	f.created = append(f.created, n)
	return &n, nil
}

func (f *fakeSweepNotifier) ExistsSince(_ context.Context, organizationID string, notificationType entity.NotificationType, relatedEntityID string, since time.Time) (bool, error) {
	for _, n := range f.created {
		if n.OrganizationID == organizationID && n.Type == notificationType &&
			n.RelatedEntityID == relatedEntityID && n.CreatedAt.After(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSweepNotifier) bySeverity(severity entity.NotificationSeverity) []entity.Notification {
	var out []entity.Notification
	for _, n := range f.created {
		if n.Severity == severity {
			out = append(out, n)
		}
	}
	return out
}

type sweepFixture struct {
	service   *SweepService
	docs      *fakeSweepDocs
	payments  *fakeSweepPayments
	matches   *fakeSweepMatches
	transport *fakeSweepTransport
	notifier  *fakeSweepNotifier
	clock     clockwork.FakeClock
}

func newSweepFixture(t *testing.T) *sweepFixture {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC))
	docs := &fakeSweepDocs{}
	payments := &fakeSweepPayments{}
	matches := &fakeSweepMatches{}
	transport := &fakeSweepTransport{assignments: make(map[string]int64)}
	notifier := &fakeSweepNotifier{clock: clock}

	return &sweepFixture{
		service: NewSweepService(&fakeSweepOrgs{ids: []string{testOrgID}},
			docs, payments, matches, transport, notifier, clock, testLogger()),
		docs:      docs,
		payments:  payments,
		matches:   matches,
		transport: transport,
		notifier:  notifier,
		clock:     clock,
	}
}

func (f *sweepFixture) addDocument(daysToExpiry int) entity.Document {
	d := entity.Document{
		ID:         uuid.New().String(),
		ExpiryDate: f.clock.Now().AddDate(0, 0, daysToExpiry),
		Athlete:    entity.Athlete{FirstName: "Luca", LastName: "Verdi"},
		DocumentType: entity.DocumentType{
			Name: "Certificato Medico",
		},
	}
	f.docs.documents = append(f.docs.documents, d)
	return d
}

func TestSweepDocumentSeverityTiers(t *testing.T) {
	f := newSweepFixture(t)
	f.addDocument(3)
	f.addDocument(10)
	f.addDocument(25)

	require.NoError(t, f.service.RunOrganization(context.Background(), testOrgID))

	require.Len(t, f.notifier.created, 3)
	assert.Len(t, f.notifier.bySeverity(entity.SeverityError), 1)
	assert.Len(t, f.notifier.bySeverity(entity.SeverityWarning), 1)
	assert.Len(t, f.notifier.bySeverity(entity.SeverityInfo), 1)
}

func TestSweepRunTwiceSameDayNoDuplicates(t *testing.T) {
	f := newSweepFixture(t)
	f.addDocument(3)
	f.payments.payments = []entity.Payment{{
		ID:      uuid.New().String(),
		Amount:  50,
		DueDate: f.clock.Now().AddDate(0, 0, -10),
		Status:  entity.PaymentStatusOverdue,
		Athlete: entity.Athlete{FirstName: "Luca", LastName: "Verdi"},
	}}
	f.matches.matches = []entity.Match{{
		ID:       uuid.New().String(),
		Date:     f.clock.Now().AddDate(0, 0, 1),
		Status:   entity.MatchStatusScheduled,
		Time:     "15:30",
		Venue:    "Campo Comunale",
		HomeTeam: entity.Team{Name: "Under 15"},
	}}

	require.NoError(t, f.service.RunOrganization(context.Background(), testOrgID))
	first := len(f.notifier.created)
	require.Equal(t, 3, first)

	f.clock.Advance(6 * time.Hour)
	require.NoError(t, f.service.RunOrganization(context.Background(), testOrgID))

	assert.Equal(t, first, len(f.notifier.created))
}

func TestSweepUrgentDocumentRepeatsDaily(t *testing.T) {
	f := newSweepFixture(t)
	f.addDocument(3)
	f.addDocument(25)

	require.NoError(t, f.service.RunOrganization(context.Background(), testOrgID))
	require.Len(t, f.notifier.created, 2)

	f.clock.Advance(25 * time.Hour)
	require.NoError(t, f.service.RunOrganization(context.Background(), testOrgID))

	// The urgent one fires again past its daily window, the info-tier
	// reminder stays quiet for a week.
	assert.Len(t, f.notifier.created, 3)
	assert.Len(t, f.notifier.bySeverity(entity.SeverityError), 2)
	assert.Len(t, f.notifier.bySeverity(entity.SeverityInfo), 1)
}

func TestSweepExpiredDocumentMessage(t *testing.T) {
	f := newSweepFixture(t)
	f.addDocument(-5)

	require.NoError(t, f.service.RunOrganization(context.Background(), testOrgID))

	require.Len(t, f.notifier.created, 1)
	assert.Equal(t, "Document expired", f.notifier.created[0].Title)
	assert.Equal(t, entity.SeverityError, f.notifier.created[0].Severity)
}

func TestSweepPaymentEscalatesAfterMonth(t *testing.T) {
	f := newSweepFixture(t)
	f.payments.payments = []entity.Payment{
		{
			ID:      uuid.New().String(),
			Amount:  50,
			DueDate: f.clock.Now().AddDate(0, 0, -10),
			Athlete: entity.Athlete{FirstName: "Luca", LastName: "Verdi"},
		},
		{
			ID:      uuid.New().String(),
			Amount:  100,
			DueDate: f.clock.Now().AddDate(0, 0, -40),
			Athlete: entity.Athlete{FirstName: "Marco", LastName: "Neri"},
		},
	}

	require.NoError(t, f.service.RunOrganization(context.Background(), testOrgID))

	require.Len(t, f.notifier.created, 2)
	assert.Len(t, f.notifier.bySeverity(entity.SeverityWarning), 1)
	assert.Len(t, f.notifier.bySeverity(entity.SeverityError), 1)
}

func TestSweepMatchReminderOnlyForTomorrow(t *testing.T) {
	f := newSweepFixture(t)
	f.matches.matches = []entity.Match{
		{
			ID:       uuid.New().String(),
			Date:     time.Date(2026, time.March, 2, 15, 0, 0, 0, time.UTC),
			Status:   entity.MatchStatusScheduled,
			HomeTeam: entity.Team{Name: "Under 15"},
		},
		{
			ID:       uuid.New().String(),
			Date:     time.Date(2026, time.March, 4, 15, 0, 0, 0, time.UTC),
			Status:   entity.MatchStatusScheduled,
			HomeTeam: entity.Team{Name: "Under 17"},
		},
	}

	require.NoError(t, f.service.RunOrganization(context.Background(), testOrgID))

	require.Len(t, f.notifier.created, 1)
	assert.Equal(t, entity.NotificationTypeMatchReminder, f.notifier.created[0].Type)
}

func TestSweepTransportCapacityThreshold(t *testing.T) {
	f := newSweepFixture(t)
	full := entity.BusRoute{
		ID:   uuid.New().String(),
		Name: "Linea Nord",
		Bus:  entity.Bus{Capacity: 10},
	}
	roomy := entity.BusRoute{
		ID:   uuid.New().String(),
		Name: "Linea Sud",
		Bus:  entity.Bus{Capacity: 10},
	}
	f.transport.routes = []entity.BusRoute{full, roomy}
	f.transport.assignments[full.ID] = 9
	f.transport.assignments[roomy.ID] = 8

	require.NoError(t, f.service.RunOrganization(context.Background(), testOrgID))

	require.Len(t, f.notifier.created, 1)
	assert.Equal(t, entity.NotificationTypeTransportCapacity, f.notifier.created[0].Type)
	assert.Equal(t, full.ID, f.notifier.created[0].RelatedEntityID)
}

func TestSweepRunCoversAllOrganizations(t *testing.T) {
	f := newSweepFixture(t)
	f.addDocument(3)

	require.NoError(t, f.service.Run(context.Background()))

	assert.Len(t, f.notifier.created, 1)
}
