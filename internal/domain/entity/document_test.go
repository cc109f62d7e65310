package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDocumentComputeStatus(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		expiry time.Time
		want   DocumentStatus
	}{
		{"valid", now.AddDate(0, 0, 60), DocumentStatusValid},
		{"expiring", now.AddDate(0, 0, 10), DocumentStatusExpiring},
		{"expires today", now, DocumentStatusExpired},
		{"expired", now.AddDate(0, 0, -1), DocumentStatusExpired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Document{ExpiryDate: tc.expiry}
			assert.Equal(t, tc.want, d.ComputeStatus(now))
		})
	}
}

func TestAthleteAge(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	birthdayPassed := Athlete{BirthDate: time.Date(2012, time.January, 15, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, 14, birthdayPassed.Age(now))

	birthdayAhead := Athlete{BirthDate: time.Date(2012, time.June, 15, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, 13, birthdayAhead.Age(now))
}

func TestMatchStatusTransitions(t *testing.T) {
	assert.True(t, MatchStatusScheduled.CanTransition(MatchStatusInProgress))
	assert.True(t, MatchStatusScheduled.CanTransition(MatchStatusPostponed))
	assert.True(t, MatchStatusInProgress.CanTransition(MatchStatusCompleted))
	assert.True(t, MatchStatusCancelled.CanTransition(MatchStatusScheduled))
	assert.True(t, MatchStatusPostponed.CanTransition(MatchStatusScheduled))

	assert.False(t, MatchStatusCompleted.CanTransition(MatchStatusScheduled))
	assert.False(t, MatchStatusCompleted.CanTransition(MatchStatusInProgress))
	assert.False(t, MatchStatusScheduled.CanTransition(MatchStatusCompleted))
	assert.False(t, MatchStatusCancelled.CanTransition(MatchStatusInProgress))
}
