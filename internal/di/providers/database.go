package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookishapp/bookish-core/internal/config"
	"github.com/bookishapp/bookish-core/internal/kv"
	"github.com/bookishapp/bookish-core/internal/logger"
	"github.com/bookishapp/bookish-core/internal/notify"
)

// AdapterHandle wraps the persistence adapter with shutdown capability.
type AdapterHandle struct {
	kv.Adapter
}

// Shutdown implements do.Shutdownable.
func (h *AdapterHandle) Shutdown() error {
	return h.Close()
}

// ProvideAdapter provides the badger-backed persistence adapter.
func ProvideAdapter(i do.Injector) (*AdapterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	adapter, err := kv.Open(cfg.DatabasePath(), log.Logger, kv.Options{
		SyncWrites: cfg.Data.SyncWrites,
	})
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", cfg.DatabasePath())

	return &AdapterHandle{Adapter: adapter}, nil
}

// BusHandle wraps the notification bus with shutdown capability.
type BusHandle struct {
	*notify.Bus
}

// Shutdown implements do.Shutdownable.
func (h *BusHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideBus provides the change notification bus.
func ProvideBus(i do.Injector) (*BusHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return &BusHandle{Bus: notify.NewBus(log.Logger)}, nil
}
