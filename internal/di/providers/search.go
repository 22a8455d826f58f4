package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookishapp/bookish-core/internal/config"
	"github.com/bookishapp/bookish-core/internal/logger"
	"github.com/bookishapp/bookish-core/internal/search"
)

// SearchIndexHandle wraps the catalogue index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve catalogue index and wires it to the
// library store so catalogue mutations keep it in sync.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	library := do.MustInvoke[*LibraryHandle](i)

	index, err := search.NewIndex(search.Options{
		DataPath: cfg.Search.IndexPath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	library.SetIndexer(index)

	docCount, _ := index.DocumentCount()
	log.Info("Catalogue index initialized", "documents", docCount)

	// Backfill the index when it is empty but the catalogue is not, e.g.
	// after a mapping-version rebuild.
	if books := library.Books(); docCount == 0 && len(books) > 0 {
		if err := index.IndexBooks(books); err != nil {
			log.Warn("failed to backfill catalogue index", "error", err)
		} else {
			log.Info("backfilled catalogue index", "documents", len(books))
		}
	}

	return &SearchIndexHandle{Index: index}, nil
}
