// Package main provides a read-only inspection tool for the Bookish
// snapshot database.
//
// Usage:
//
//	DB_PATH=~/bookish/db go run ./cmd/dbinspect
package main

import (
	"encoding/json/v2"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"

	"github.com/bookishapp/bookish-core/internal/domain"
	"github.com/bookishapp/bookish-core/internal/kv"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to resolve home directory: %v", err)
		}
		dbPath = filepath.Join(home, "Bookish", "data", "db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Snapshot Inspection ===")
	fmt.Println()

	keys := []string{kv.KeyLibrary, kv.KeySocial, kv.KeyChallenges, kv.KeyTheme, kv.KeyUser}
	for _, key := range keys {
		data, err := read(db, key)
		if err != nil {
			log.Fatalf("Error reading snapshot %q: %v", key, err)
		}
		if data == nil {
			fmt.Printf("%-10s (absent)\n", key)
			continue
		}
		fmt.Printf("%-10s %6d bytes\n", key, len(data))
		describe(key, data)
		fmt.Println()
	}
}

// read fetches a single snapshot value, nil if the key has never been
// written.
func read(db *badger.DB, key string) ([]byte, error) {
	var data []byte
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	return data, err
}

// describe decodes a snapshot and prints its collection counts. A payload
// that fails to decode is reported, not fatal; the stores themselves treat
// corrupt snapshots as empty state.
func describe(key string, data []byte) {
	switch key {
	case kv.KeyLibrary:
		var snap struct {
			Books     []domain.Book     `json:"books"`
			UserBooks []domain.UserBook `json:"user_books"`
		}
		if err := json.Unmarshal(data, &snap); err != nil {
			fmt.Printf("  decode error: %v\n", err)
			return
		}
		fmt.Printf("  books: %d, user_books: %d\n", len(snap.Books), len(snap.UserBooks))
		wishlisted := 0
		for _, ub := range snap.UserBooks {
			if ub.IsWishlisted {
				wishlisted++
			}
		}
		fmt.Printf("  wishlisted: %d\n", wishlisted)

	case kv.KeySocial:
		var snap struct {
			Feed        []domain.FeedItem   `json:"feed"`
			BookClubs   []domain.BookClub   `json:"book_clubs"`
			JoinedClubs domain.JoinedClubs  `json:"joined_clubs"`
			Discussions []domain.Discussion `json:"discussions"`
			Comments    []domain.Comment    `json:"comments"`
		}
		if err := json.Unmarshal(data, &snap); err != nil {
			fmt.Printf("  decode error: %v\n", err)
			return
		}
		fmt.Printf("  feed: %d, book_clubs: %d, joined: %d, discussions: %d, comments: %d\n",
			len(snap.Feed), len(snap.BookClubs), len(snap.JoinedClubs),
			len(snap.Discussions), len(snap.Comments))

	case kv.KeyChallenges:
		var snap struct {
			Challenges []domain.ReadingChallenge `json:"challenges"`
			Badges     []domain.Badge            `json:"badges"`
			Events     []domain.Event            `json:"events"`
		}
		if err := json.Unmarshal(data, &snap); err != nil {
			fmt.Printf("  decode error: %v\n", err)
			return
		}
		completed := 0
		for _, c := range snap.Challenges {
			if c.Completed() {
				completed++
			}
		}
		unlocked := 0
		for _, b := range snap.Badges {
			if b.IsUnlocked {
				unlocked++
			}
		}
		fmt.Printf("  challenges: %d (%d completed), badges: %d (%d unlocked), events: %d\n",
			len(snap.Challenges), completed, len(snap.Badges), unlocked, len(snap.Events))

	case kv.KeyTheme:
		var snap struct {
			Mode domain.ThemeMode `json:"mode"`
		}
		if err := json.Unmarshal(data, &snap); err != nil {
			fmt.Printf("  decode error: %v\n", err)
			return
		}
		fmt.Printf("  mode: %s\n", snap.Mode)

	case kv.KeyUser:
		var snap struct {
			User *domain.User `json:"user"`
		}
		if err := json.Unmarshal(data, &snap); err != nil {
			fmt.Printf("  decode error: %v\n", err)
			return
		}
		if snap.User == nil {
			fmt.Println("  no profile set")
		} else {
			fmt.Printf("  user: %s (@%s)\n", snap.User.Name, snap.User.Username)
		}
	}
}
