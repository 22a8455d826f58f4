package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookishapp/bookish-core/internal/config"
	"github.com/bookishapp/bookish-core/internal/logger"
	"github.com/bookishapp/bookish-core/internal/seed"
	"github.com/bookishapp/bookish-core/internal/service"
	"github.com/bookishapp/bookish-core/internal/validation"
)

// ProvideLibraryService provides the library service with search wired in.
func ProvideLibraryService(i do.Injector) (*service.LibraryService, error) {
	library := do.MustInvoke[*LibraryHandle](i)
	index := do.MustInvoke[*SearchIndexHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewLibraryService(library.Library, validator, log.Logger)
	svc.SetSearchIndex(index.Index)
	return svc, nil
}

// ProvideSocialService provides the social service.
func ProvideSocialService(i do.Injector) (*service.SocialService, error) {
	social := do.MustInvoke[*SocialHandle](i)
	library := do.MustInvoke[*LibraryHandle](i)
	challenges := do.MustInvoke[*ChallengesHandle](i)
	profile := do.MustInvoke[*ProfileHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSocialService(
		social.Social,
		library.Library,
		challenges.Challenges,
		profile.Profile,
		validator,
		log.Logger,
	), nil
}

// ProvideChallengesService provides the challenges service.
func ProvideChallengesService(i do.Injector) (*service.ChallengesService, error) {
	challenges := do.MustInvoke[*ChallengesHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewChallengesService(challenges.Challenges, validator, log.Logger), nil
}

// SeedResult reports first-run fixture population.
type SeedResult struct {
	StoresSeeded int
}

// ProvideSeed populates empty stores with demo fixtures when seeding is
// enabled in the configuration.
func ProvideSeed(i do.Injector) (*SeedResult, error) {
	cfg := do.MustInvoke[*config.Config](i)
	if !cfg.Seed.Enabled {
		return &SeedResult{}, nil
	}

	library := do.MustInvoke[*LibraryHandle](i)
	social := do.MustInvoke[*SocialHandle](i)
	challenges := do.MustInvoke[*ChallengesHandle](i)
	profile := do.MustInvoke[*ProfileHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	seeded := seed.Load(seed.Stores{
		Library:    library.Library,
		Social:     social.Social,
		Challenges: challenges.Challenges,
		Profile:    profile.Profile,
	}, log.Logger)

	return &SeedResult{StoresSeeded: seeded}, nil
}
