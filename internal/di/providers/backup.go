package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookishapp/bookish-core/internal/backup"
	"github.com/bookishapp/bookish-core/internal/config"
	"github.com/bookishapp/bookish-core/internal/logger"
)

// ProvideBackup provides the snapshot backup service.
func ProvideBackup(i do.Injector) (*backup.Service, error) {
	cfg := do.MustInvoke[*config.Config](i)
	adapter := do.MustInvoke[*AdapterHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return backup.New(adapter, cfg.BackupPath(), config.Version, log.Logger), nil
}

// ProvideRestorer provides the snapshot restore service.
func ProvideRestorer(i do.Injector) (*backup.Restorer, error) {
	adapter := do.MustInvoke[*AdapterHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return backup.NewRestorer(adapter, log.Logger), nil
}
