package backup

import (
	"archive/zip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"encoding/json/v2"

	"github.com/bookishapp/bookish-core/internal/domain"
	"github.com/bookishapp/bookish-core/internal/errors"
	"github.com/bookishapp/bookish-core/internal/kv"
)

// snapshotKeys lists every store snapshot a backup carries, in archive order.
var snapshotKeys = []string{
	kv.KeyLibrary, kv.KeySocial, kv.KeyChallenges, kv.KeyTheme, kv.KeyUser,
}

// Service creates and lists backup archives. Callers should flush the stores
// before creating a backup so the adapter holds the latest snapshots.
type Service struct {
	adapter   kv.Adapter
	backupDir string
	version   string
	logger    *slog.Logger
}

// New creates a backup Service.
func New(adapter kv.Adapter, backupDir, version string, logger *slog.Logger) *Service {
	return &Service{
		adapter:   adapter,
		backupDir: backupDir,
		version:   version,
		logger:    logger,
	}
}

// Options configures backup creation.
type Options struct {
	OutputPath string // Where to write the backup file
}

// Result contains the outcome of a backup operation.
type Result struct {
	Path     string        `json:"path"`
	Size     int64         `json:"size"`
	Counts   EntityCounts  `json:"counts"`
	Duration time.Duration `json:"duration"`
	Checksum string        `json:"checksum"`
}

// Info describes an existing backup.
type Info struct {
	ID        string       `json:"id"`
	Path      string       `json:"path"`
	Size      int64        `json:"size"`
	CreatedAt time.Time    `json:"created_at"`
	Counts    EntityCounts `json:"counts,omitempty"`
}

// Create creates a new backup archive.
func (s *Service) Create(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		timestamp := time.Now().Format("2006-01-02-150405")
		outputPath = filepath.Join(s.backupDir, fmt.Sprintf("backup-%s.bookish.zip", timestamp))
	}

	s.logger.Info("creating backup", "output", outputPath)

	// Write to temp file, rename on success (atomic)
	tmpPath := outputPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("create backup file: %w", err)
	}
	defer os.Remove(tmpPath) // Clean up on failure
	defer f.Close()

	// Tee to SHA-256 hasher
	hash := sha256.New()
	mw := io.MultiWriter(f, hash)
	zw := zip.NewWriter(mw)

	manifest := &Manifest{
		Version:    FormatVersion,
		CreatedAt:  time.Now(),
		AppVersion: s.version,
	}

	for _, key := range snapshotKeys {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		data, err := s.adapter.Load(key)
		if errors.Is(err, errors.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load snapshot %s: %w", key, err)
		}

		countSnapshot(key, data, &manifest.Counts)

		w, err := zw.Create("snapshots/" + key + ".json")
		if err != nil {
			return nil, fmt.Errorf("create archive entry %s: %w", key, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("write snapshot %s: %w", key, err)
		}
		manifest.Snapshots = append(manifest.Snapshots, key)
	}

	if err := writeManifest(zw, manifest); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close backup file: %w", err)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		return nil, fmt.Errorf("finalize backup: %w", err)
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return nil, fmt.Errorf("stat backup: %w", err)
	}

	result := &Result{
		Path:     outputPath,
		Size:     info.Size(),
		Counts:   manifest.Counts,
		Duration: time.Since(start),
		Checksum: hex.EncodeToString(hash.Sum(nil)),
	}

	s.logger.Info("backup complete",
		"path", result.Path,
		"size", result.Size,
		"entities", result.Counts.Total(),
		"duration", result.Duration,
		"checksum", result.Checksum)

	return result, nil
}

// List returns all available backups, newest first.
func (s *Service) List(ctx context.Context) ([]Info, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".bookish.zip") {
			continue
		}

		path := filepath.Join(s.backupDir, entry.Name())
		fi, err := entry.Info()
		if err != nil {
			continue
		}

		info := Info{
			ID:        strings.TrimSuffix(entry.Name(), ".bookish.zip"),
			Path:      path,
			Size:      fi.Size(),
			CreatedAt: fi.ModTime(),
		}

		// Manifest is best effort for listing; a torn archive still shows up.
		if m, err := readManifest(path); err == nil {
			info.CreatedAt = m.CreatedAt
			info.Counts = m.Counts
		}

		backups = append(backups, info)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})

	return backups, nil
}

func writeManifest(zw *zip.Writer, manifest *Manifest) error {
	w, err := zw.Create("manifest.json")
	if err != nil {
		return fmt.Errorf("create manifest entry: %w", err)
	}
	if err := json.MarshalWrite(w, manifest); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func readManifest(path string) (*Manifest, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	rc, err := openArchiveFile(&zr.Reader, "manifest.json")
	if err != nil {
		return nil, ErrInvalidManifest
	}
	defer rc.Close()

	var manifest Manifest
	if err := json.UnmarshalRead(rc, &manifest); err != nil {
		return nil, ErrInvalidManifest
	}
	return &manifest, nil
}

func openArchiveFile(zr *zip.Reader, name string) (io.ReadCloser, error) {
	for _, f := range zr.File {
		if f.Name == name {
			return f.Open()
		}
	}
	return nil, fmt.Errorf("file %s not in archive", name)
}

// countSnapshot decodes a snapshot payload into the manifest counts. An
// undecodable payload contributes nothing; restore-side validation is what
// rejects corrupt archives.
func countSnapshot(key string, data []byte, counts *EntityCounts) {
	switch key {
	case kv.KeyLibrary:
		var snap struct {
			Books     []domain.Book     `json:"books"`
			UserBooks []domain.UserBook `json:"user_books"`
		}
		if json.Unmarshal(data, &snap) == nil {
			counts.Books = len(snap.Books)
			counts.UserBooks = len(snap.UserBooks)
		}
	case kv.KeySocial:
		var snap struct {
			Feed        []domain.FeedItem   `json:"feed"`
			BookClubs   []domain.BookClub   `json:"book_clubs"`
			Discussions []domain.Discussion `json:"discussions"`
			Comments    []domain.Comment    `json:"comments"`
		}
		if json.Unmarshal(data, &snap) == nil {
			counts.FeedItems = len(snap.Feed)
			counts.BookClubs = len(snap.BookClubs)
			counts.Discussions = len(snap.Discussions)
			counts.Comments = len(snap.Comments)
		}
	case kv.KeyChallenges:
		var snap struct {
			Challenges []domain.ReadingChallenge `json:"challenges"`
			Badges     []domain.Badge            `json:"badges"`
			Events     []domain.Event            `json:"events"`
		}
		if json.Unmarshal(data, &snap) == nil {
			counts.Challenges = len(snap.Challenges)
			counts.Badges = len(snap.Badges)
			counts.Events = len(snap.Events)
		}
	case kv.KeyUser:
		var snap struct {
			User *domain.User `json:"user"`
		}
		if json.Unmarshal(data, &snap) == nil && snap.User != nil {
			counts.Users = 1
		}
	}
}
