package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookishapp/bookish-core/internal/logger"
	"github.com/bookishapp/bookish-core/internal/store"
)

// LibraryHandle wraps the library store, flushing pending snapshot writes on
// shutdown.
type LibraryHandle struct {
	*store.Library
}

// Shutdown implements do.Shutdownable.
func (h *LibraryHandle) Shutdown() error {
	h.Flush()
	return nil
}

// ProvideLibrary provides the library store.
func ProvideLibrary(i do.Injector) (*LibraryHandle, error) {
	adapter := do.MustInvoke[*AdapterHandle](i)
	bus := do.MustInvoke[*BusHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return &LibraryHandle{Library: store.NewLibrary(adapter, bus.Bus, log.Logger)}, nil
}

// SocialHandle wraps the social store.
type SocialHandle struct {
	*store.Social
}

// Shutdown implements do.Shutdownable.
func (h *SocialHandle) Shutdown() error {
	h.Flush()
	return nil
}

// ProvideSocial provides the social store.
func ProvideSocial(i do.Injector) (*SocialHandle, error) {
	adapter := do.MustInvoke[*AdapterHandle](i)
	bus := do.MustInvoke[*BusHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return &SocialHandle{Social: store.NewSocial(adapter, bus.Bus, log.Logger)}, nil
}

// ChallengesHandle wraps the challenges store.
type ChallengesHandle struct {
	*store.Challenges
}

// Shutdown implements do.Shutdownable.
func (h *ChallengesHandle) Shutdown() error {
	h.Flush()
	return nil
}

// ProvideChallenges provides the challenges store.
func ProvideChallenges(i do.Injector) (*ChallengesHandle, error) {
	adapter := do.MustInvoke[*AdapterHandle](i)
	bus := do.MustInvoke[*BusHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return &ChallengesHandle{Challenges: store.NewChallenges(adapter, bus.Bus, log.Logger)}, nil
}

// ThemeHandle wraps the theme store.
type ThemeHandle struct {
	*store.Theme
}

// Shutdown implements do.Shutdownable.
func (h *ThemeHandle) Shutdown() error {
	h.Flush()
	return nil
}

// ProvideTheme provides the theme store.
func ProvideTheme(i do.Injector) (*ThemeHandle, error) {
	adapter := do.MustInvoke[*AdapterHandle](i)
	bus := do.MustInvoke[*BusHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return &ThemeHandle{Theme: store.NewTheme(adapter, bus.Bus, log.Logger)}, nil
}

// ProfileHandle wraps the profile store.
type ProfileHandle struct {
	*store.Profile
}

// Shutdown implements do.Shutdownable.
func (h *ProfileHandle) Shutdown() error {
	h.Flush()
	return nil
}

// ProvideProfile provides the profile store.
func ProvideProfile(i do.Injector) (*ProfileHandle, error) {
	adapter := do.MustInvoke[*AdapterHandle](i)
	bus := do.MustInvoke[*BusHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return &ProfileHandle{Profile: store.NewProfile(adapter, bus.Bus, log.Logger)}, nil
}
