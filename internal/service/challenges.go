package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bookishapp/bookish-core/internal/domain"
	"github.com/bookishapp/bookish-core/internal/id"
	"github.com/bookishapp/bookish-core/internal/store"
	"github.com/bookishapp/bookish-core/internal/validation"
)

// ChallengesService orchestrates reading challenges, badges and events, and
// builds the profile screen's summary read models.
type ChallengesService struct {
	challenges *store.Challenges
	validator  *validation.Validator
	logger     *slog.Logger
}

// NewChallengesService creates a challenges service.
func NewChallengesService(challenges *store.Challenges, validator *validation.Validator, logger *slog.Logger) *ChallengesService {
	return &ChallengesService{
		challenges: challenges,
		validator:  validator,
		logger:     logger,
	}
}

// ChallengeInput is the validated payload for creating a challenge.
type ChallengeInput struct {
	Title       string    `json:"title" validate:"required,max=256"`
	Description string    `json:"description" validate:"max=2048"`
	Target      int       `json:"target" validate:"required,gt=0"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

// CreateChallenge validates the input, assigns an id, and stores the
// challenge with zero progress.
func (s *ChallengesService) CreateChallenge(ctx context.Context, input ChallengeInput) (*domain.ReadingChallenge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	challengeID, err := id.Generate(id.PrefixChallenge)
	if err != nil {
		return nil, fmt.Errorf("generate challenge ID: %w", err)
	}

	challenge := domain.ReadingChallenge{
		ID:          challengeID,
		Title:       input.Title,
		Description: input.Description,
		Target:      input.Target,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}

	if err := s.challenges.AddChallenge(challenge); err != nil {
		return nil, err
	}

	s.logger.Info("challenge created",
		"challenge_id", challengeID,
		"title", input.Title,
		"target", input.Target,
	)

	return &challenge, nil
}

// ChallengeSummary is the display shape of one challenge.
type ChallengeSummary struct {
	Challenge       domain.ReadingChallenge `json:"challenge"`
	ProgressPercent int                     `json:"progress_percent"`
	Completed       bool                    `json:"completed"`
}

// ChallengeSummaries returns every challenge with its derived display state.
func (s *ChallengesService) ChallengeSummaries(ctx context.Context) ([]ChallengeSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	challenges := s.challenges.Challenges()
	out := make([]ChallengeSummary, 0, len(challenges))
	for i := range challenges {
		c := challenges[i]
		pct := 0
		if c.Target > 0 {
			pct = c.Progress * 100 / c.Target
			if pct > 100 {
				pct = 100
			}
		}
		out = append(out, ChallengeSummary{
			Challenge:       c,
			ProgressPercent: pct,
			Completed:       c.Completed(),
		})
	}
	return out, nil
}

// Summary is the profile screen's achievements read model.
type Summary struct {
	ChallengesTotal     int `json:"challenges_total"`
	ChallengesCompleted int `json:"challenges_completed"`
	BadgesTotal         int `json:"badges_total"`
	BadgesUnlocked      int `json:"badges_unlocked"`
	EventsTotal         int `json:"events_total"`
	EventsJoined        int `json:"events_joined"`
}

// Summarize counts challenges, badges and events for the profile screen.
func (s *ChallengesService) Summarize(ctx context.Context) (*Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := &Summary{}

	for _, c := range s.challenges.Challenges() {
		summary.ChallengesTotal++
		if c.Completed() {
			summary.ChallengesCompleted++
		}
	}
	for _, b := range s.challenges.Badges() {
		summary.BadgesTotal++
		if b.IsUnlocked {
			summary.BadgesUnlocked++
		}
	}
	for _, e := range s.challenges.Events() {
		summary.EventsTotal++
		if e.IsParticipating {
			summary.EventsJoined++
		}
	}

	return summary, nil
}
