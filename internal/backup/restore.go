package backup

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"encoding/json/v2"

	"github.com/bookishapp/bookish-core/internal/kv"
)

// RestoreOptions configures restoration.
type RestoreOptions struct {
	DryRun bool // Validate without writing
}

// RestoreResult contains the outcome of a restore operation.
type RestoreResult struct {
	Imported map[string]int `json:"imported"`
	Duration time.Duration  `json:"duration"`
}

// ValidationResult describes backup validity.
type ValidationResult struct {
	Valid    bool      `json:"valid"`
	Manifest *Manifest `json:"manifest,omitempty"`
	Errors   []string  `json:"errors,omitempty"`
	Warnings []string  `json:"warnings,omitempty"`
}

// Restorer restores snapshots from backup archives. Restored snapshots land
// in the adapter only; the stores pick them up on next startup.
type Restorer struct {
	adapter kv.Adapter
	logger  *slog.Logger
}

// NewRestorer creates a Restorer.
func NewRestorer(adapter kv.Adapter, logger *slog.Logger) *Restorer {
	return &Restorer{adapter: adapter, logger: logger}
}

// Restore replaces the adapter's snapshots with the archive's contents.
// Snapshot keys absent from the archive are left untouched.
func (r *Restorer) Restore(ctx context.Context, path string, opts RestoreOptions) (*RestoreResult, error) {
	start := time.Now()

	r.logger.Info("starting restore", "path", path, "dry_run", opts.DryRun)

	validation, err := r.Validate(ctx, path)
	if err != nil {
		return nil, err
	}
	if !validation.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, validation.Errors)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open backup: %w", err)
	}
	defer zr.Close()

	result := &RestoreResult{
		Imported: make(map[string]int),
	}

	for _, key := range validation.Manifest.Snapshots {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		rc, err := openArchiveFile(&zr.Reader, "snapshots/"+key+".json")
		if err != nil {
			return nil, fmt.Errorf("open snapshot %s: %w", key, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read snapshot %s: %w", key, err)
		}

		var probe any
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil, fmt.Errorf("snapshot %s is not valid JSON: %w", key, err)
		}

		if !opts.DryRun {
			if err := r.adapter.Save(key, data); err != nil {
				return nil, fmt.Errorf("save snapshot %s: %w", key, err)
			}
		}

		var counts EntityCounts
		countSnapshot(key, data, &counts)
		result.Imported[key] = counts.Total()
	}

	result.Duration = time.Since(start)

	r.logger.Info("restore complete",
		"imported", result.Imported,
		"dry_run", opts.DryRun,
		"duration", result.Duration)

	return result, nil
}

// Validate checks a backup without importing.
func (r *Restorer) Validate(ctx context.Context, path string) (*ValidationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return &ValidationResult{
			Valid:  false,
			Errors: []string{fmt.Sprintf("failed to open backup: %v", err)},
		}, nil
	}
	defer zr.Close()

	result := &ValidationResult{Valid: true}

	rc, err := openArchiveFile(&zr.Reader, "manifest.json")
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, "missing manifest.json")
		return result, nil
	}

	var manifest Manifest
	if err := json.UnmarshalRead(rc, &manifest); err != nil {
		rc.Close()
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("invalid manifest: %v", err))
		return result, nil
	}
	rc.Close()

	result.Manifest = &manifest

	if manifest.Version != FormatVersion {
		result.Valid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("unsupported version %s (want %s)", manifest.Version, FormatVersion))
	}

	for _, key := range manifest.Snapshots {
		name := "snapshots/" + key + ".json"
		rc, err := openArchiveFile(&zr.Reader, name)
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("missing file: %s", name))
			continue
		}
		rc.Close()
	}

	return result, nil
}
