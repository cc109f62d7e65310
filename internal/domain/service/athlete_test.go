package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/common/errorz"
	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type fakeAthleteStorage struct {
	athletes map[string]*entity.Athlete
}

func newFakeAthleteStorage() *fakeAthleteStorage {
	return &fakeAthleteStorage{athletes: make(map[string]*entity.Athlete)}
}

func (f *fakeAthleteStorage) Create(_ context.Context, athlete *entity.Athlete) (*entity.Athlete, error) {
	if athlete.ID == "" {
		athlete.ID = uuid.New().String()
	}
	f.athletes[athlete.ID] = athlete
	return athlete, nil
}

func (f *fakeAthleteStorage) Get(_ context.Context, organizationID, id string) (*entity.Athlete, error) {
	a, ok := f.athletes[id]
	if !ok || a.OrganizationID != organizationID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *a
	return &clone, nil
}

func (f *fakeAthleteStorage) List(_ context.Context, organizationID string, filter dto.AthleteFilter) ([]entity.Athlete, int64, error) {
	var out []entity.Athlete
	for _, a := range f.athletes {
		if a.OrganizationID == organizationID {
			out = append(out, *a)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAthleteStorage) Update(_ context.Context, athlete *entity.Athlete) (*entity.Athlete, error) {
	clone := *athlete
	f.athletes[athlete.ID] = &clone
	return athlete, nil
}

func (f *fakeAthleteStorage) Delete(_ context.Context, id string) error {
	delete(f.athletes, id)
	return nil
}

func (f *fakeAthleteStorage) FiscalCodeTaken(_ context.Context, organizationID, fiscalCode, excludeID string) (bool, error) {
	for _, a := range f.athletes {
		if a.OrganizationID == organizationID && a.FiscalCode == fiscalCode && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAthleteStorage) JerseyTaken(_ context.Context, teamID string, number int, excludeID string) (bool, error) {
	for _, a := range f.athletes {
		if a.TeamID != nil && *a.TeamID == teamID && a.JerseyNumber != nil && *a.JerseyNumber == number && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeTeamLookup struct {
	teams map[string]*entity.Team
}

func (f *fakeTeamLookup) Get(_ context.Context, organizationID, id string) (*entity.Team, error) {
	team, ok := f.teams[id]
	if !ok || team.OrganizationID != organizationID {
		return nil, gorm.ErrRecordNotFound
	}
	return team, nil
}

// recordingNotifier captures emitted notifications for assertions.
type recordingNotifier struct {
	sent []dto.CreateNotification
}

func (r *recordingNotifier) Notify(_ context.Context, _ string, data dto.CreateNotification) {
	r.sent = append(r.sent, data)
}

const testOrgID = "11111111-1111-1111-1111-111111111111"

type athleteFixture struct {
	service  *AthleteService
	athletes *fakeAthleteStorage
	teams    *fakeTeamLookup
	notify   *recordingNotifier
	clock    clockwork.FakeClock
}

func newAthleteFixture(t *testing.T) *athleteFixture {
	t.Helper()
	athletes := newFakeAthleteStorage()
	teams := &fakeTeamLookup{teams: make(map[string]*entity.Team)}
	notify := &recordingNotifier{}
	clock := clockwork.NewFakeClockAt(date(2026, time.March, 1))

	return &athleteFixture{
		service:  NewAthleteService(athletes, teams, notify, clock),
		athletes: athletes,
		teams:    teams,
		notify:   notify,
		clock:    clock,
	}
}

func (f *athleteFixture) seedTeam(minAge, maxAge int) *entity.Team {
	team := &entity.Team{
		ID:             uuid.New().String(),
		OrganizationID: testOrgID,
		Name:           "Under 15",
		MinAge:         minAge,
		MaxAge:         maxAge,
	}
	f.teams.teams[team.ID] = team
	return team
}

func TestCreateAthlete(t *testing.T) {
	f := newAthleteFixture(t)
	team := f.seedTeam(13, 15)

	athlete, err := f.service.Create(context.Background(), testOrgID, dto.CreateAthlete{
		FirstName:    "Luca",
		LastName:     "Verdi",
		BirthDate:    date(2012, time.June, 10),
		FiscalCode:   "VRDLCU12H10F205X",
		TeamID:       team.ID,
		JerseyNumber: intPtr(10),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.AthleteStatusActive, athlete.Status)
	assert.False(t, athlete.NeedsPromotion)
	assert.Empty(t, f.notify.sent)
}

func TestCreateAthleteFiscalCodeConflict(t *testing.T) {
	f := newAthleteFixture(t)
	_, err := f.service.Create(context.Background(), testOrgID, dto.CreateAthlete{
		FirstName:  "Luca",
		LastName:   "Verdi",
		BirthDate:  date(2012, time.June, 10),
		FiscalCode: "VRDLCU12H10F205X",
	})
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), testOrgID, dto.CreateAthlete{
		FirstName:  "Luca",
		LastName:   "Verdi Jr",
		BirthDate:  date(2013, time.June, 10),
		FiscalCode: "VRDLCU12H10F205X",
	})

	require.Error(t, err)
	assert.Equal(t, errorz.KindConflict, errorz.KindOf(err))
}

func TestCreateAthleteJerseyTaken(t *testing.T) {
	f := newAthleteFixture(t)
	team := f.seedTeam(13, 15)

	_, err := f.service.Create(context.Background(), testOrgID, dto.CreateAthlete{
		FirstName:    "Luca",
		LastName:     "Verdi",
		BirthDate:    date(2012, time.June, 10),
		TeamID:       team.ID,
		JerseyNumber: intPtr(10),
	})
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), testOrgID, dto.CreateAthlete{
		FirstName:    "Marco",
		LastName:     "Neri",
		BirthDate:    date(2012, time.July, 2),
		TeamID:       team.ID,
		JerseyNumber: intPtr(10),
	})

	require.Error(t, err)
	assert.Equal(t, errorz.KindConflict, errorz.KindOf(err))
}

func TestCreateAthleteOutsideBracketFlagsPromotion(t *testing.T) {
	f := newAthleteFixture(t)
	team := f.seedTeam(13, 15)

	// Born 2009: 17 years old in March 2026, above the bracket.
	athlete, err := f.service.Create(context.Background(), testOrgID, dto.CreateAthlete{
		FirstName: "Paolo",
		LastName:  "Gialli",
		BirthDate: date(2009, time.January, 20),
		TeamID:    team.ID,
	})

	require.NoError(t, err)
	assert.True(t, athlete.NeedsPromotion)
	require.Len(t, f.notify.sent, 1)
	assert.Equal(t, string(entity.NotificationTypeAthletePromotion), f.notify.sent[0].Type)
}

func TestUpdateAthleteUnassignTeamClearsPromotionFlag(t *testing.T) {
	f := newAthleteFixture(t)
	team := f.seedTeam(13, 15)

	athlete, err := f.service.Create(context.Background(), testOrgID, dto.CreateAthlete{
		FirstName: "Paolo",
		LastName:  "Gialli",
		BirthDate: date(2009, time.January, 20),
		TeamID:    team.ID,
	})
	require.NoError(t, err)
	require.True(t, athlete.NeedsPromotion)

	updated, err := f.service.Update(context.Background(), testOrgID, athlete.ID, dto.UpdateAthlete{
		TeamID: strPtr(""),
	})

	require.NoError(t, err)
	assert.Nil(t, updated.TeamID)
	assert.False(t, updated.NeedsPromotion)
}

func TestGetAthleteWrongOrganization(t *testing.T) {
	f := newAthleteFixture(t)
	athlete, err := f.service.Create(context.Background(), testOrgID, dto.CreateAthlete{
		FirstName: "Luca",
		LastName:  "Verdi",
		BirthDate: date(2012, time.June, 10),
	})
	require.NoError(t, err)

	_, err = f.service.Get(context.Background(), uuid.New().String(), athlete.ID)

	require.Error(t, err)
	assert.Equal(t, errorz.KindNotFound, errorz.KindOf(err))
}
