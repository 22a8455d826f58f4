package store

import (
	"log/slog"
	"sync"

	"github.com/bookishapp/bookish-core/internal/domain"
	"github.com/bookishapp/bookish-core/internal/errors"
	"github.com/bookishapp/bookish-core/internal/kv"
	"github.com/bookishapp/bookish-core/internal/notify"
)

// themeSnapshot is the persisted shape of the theme store. Only the selection
// is stored; the dark flag and palette are derived on read.
type themeSnapshot struct {
	Mode domain.ThemeMode `json:"mode"`
}

// Theme owns the user's visual theme selection.
type Theme struct {
	mu           sync.RWMutex
	mode         domain.ThemeMode
	systemIsDark domain.SystemAppearanceFunc

	writer   *snapshotWriter
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewTheme creates the theme store, rehydrating any previous selection.
// An absent or unknown persisted mode falls back to system.
func NewTheme(adapter kv.Adapter, notifier notify.Notifier, logger *slog.Logger) *Theme {
	var snap themeSnapshot
	rehydrate(adapter, kv.KeyTheme, &snap, logger)

	if !snap.Mode.Valid() {
		snap.Mode = domain.ThemeSystem
	}

	return &Theme{
		mode:     snap.Mode,
		writer:   newSnapshotWriter(adapter, kv.KeyTheme, logger),
		notifier: notifier,
		logger:   logger,
	}
}

// SetSystemAppearance injects the OS appearance query used to resolve the
// system mode. A nil query resolves light.
func (t *Theme) SetSystemAppearance(fn domain.SystemAppearanceFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.systemIsDark = fn
}

// SetTheme switches the theme selection.
func (t *Theme) SetTheme(mode domain.ThemeMode) error {
	if !mode.Valid() {
		return errors.Validationf("unknown theme mode %q", mode)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.mode = mode
	t.writer.write(marshalSnapshot(themeSnapshot{Mode: t.mode}))
	t.notifier.Publish(notify.Change{Store: kv.KeyTheme, Op: "set_theme"})
	return nil
}

// Mode returns the current selection.
func (t *Theme) Mode() domain.ThemeMode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode
}

// IsDark resolves the current selection to a dark flag.
func (t *Theme) IsDark() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	dark, _ := domain.ResolveTheme(t.mode, t.systemIsDark)
	return dark
}

// Colors resolves the current selection to a concrete palette.
func (t *Theme) Colors() domain.Palette {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, palette := domain.ResolveTheme(t.mode, t.systemIsDark)
	return palette
}

// Flush blocks until pending snapshot writes have landed.
func (t *Theme) Flush() {
	t.writer.flush()
}
