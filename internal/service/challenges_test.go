package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookishapp/bookish-core/internal/errors"
	"github.com/bookishapp/bookish-core/internal/kv"
	"github.com/bookishapp/bookish-core/internal/logger"
	"github.com/bookishapp/bookish-core/internal/notify"
	"github.com/bookishapp/bookish-core/internal/seed"
	"github.com/bookishapp/bookish-core/internal/store"
	"github.com/bookishapp/bookish-core/internal/validation"
)

func newChallengesFixture(t *testing.T) (*ChallengesService, *store.Challenges) {
	t.Helper()
	ch := store.NewChallenges(kv.NewMemory(), notify.NewNoop(), logger.Discard().Logger)
	t.Cleanup(ch.Flush)
	svc := NewChallengesService(ch, validation.New(), logger.Discard().Logger)
	return svc, ch
}

func TestChallengesServiceCreateChallenge(t *testing.T) {
	svc, ch := newChallengesFixture(t)

	challenge, err := svc.CreateChallenge(context.Background(), ChallengeInput{
		Title:  "Summer Sprint",
		Target: 10,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, challenge.ID)
	assert.Equal(t, 0, challenge.Progress)

	stored, err := ch.Challenge(challenge.ID)
	require.NoError(t, err)
	assert.False(t, stored.Completed())
}

func TestChallengesServiceCreateChallengeValidates(t *testing.T) {
	svc, _ := newChallengesFixture(t)

	_, err := svc.CreateChallenge(context.Background(), ChallengeInput{Title: "No Target"})

	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestChallengesServiceSummaries(t *testing.T) {
	svc, ch := newChallengesFixture(t)
	ch.Bootstrap(seed.ReadingChallenges(), seed.Badges(), seed.Events())

	summaries, err := svc.ChallengeSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	// challenge1: 12 of 50.
	assert.Equal(t, 24, summaries[0].ProgressPercent)
	assert.False(t, summaries[0].Completed)

	require.NoError(t, ch.CompleteChallenge("challenge1"))
	summaries, err = svc.ChallengeSummaries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, summaries[0].ProgressPercent)
	assert.True(t, summaries[0].Completed)
}

func TestChallengesServiceSummarize(t *testing.T) {
	svc, ch := newChallengesFixture(t)
	ch.Bootstrap(seed.ReadingChallenges(), seed.Badges(), seed.Events())

	summary, err := svc.Summarize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.ChallengesTotal)
	assert.Equal(t, 0, summary.ChallengesCompleted)
	assert.Equal(t, 5, summary.BadgesTotal)
	assert.Equal(t, 3, summary.BadgesUnlocked)
	assert.Equal(t, 3, summary.EventsTotal)
	assert.Equal(t, 2, summary.EventsJoined)

	require.NoError(t, ch.UnlockBadge("badge4"))
	require.NoError(t, ch.JoinEvent("event3"))

	summary, err = svc.Summarize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, summary.BadgesUnlocked)
	assert.Equal(t, 3, summary.EventsJoined)
}
