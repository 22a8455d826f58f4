// Package main provides the entry point for the Bookish engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/bookishapp/bookish-core/internal/backup"
	"github.com/bookishapp/bookish-core/internal/di"
	"github.com/bookishapp/bookish-core/internal/di/providers"
	"github.com/bookishapp/bookish-core/internal/logger"
	"github.com/bookishapp/bookish-core/internal/search"
	"github.com/bookishapp/bookish-core/internal/service"
)

// Config owns -seed and the rest of the configuration flags; these two are
// the command's own. Both must be registered before LoadConfig parses the
// global flag set during bootstrap.
var (
	showSummary = flag.Bool("summary", false, "Print library, feed and challenge summaries and exit")
	searchQuery = flag.String("search", "", "Run a catalogue search for the given query and exit")
	takeBackup  = flag.Bool("backup", false, "Write a snapshot backup archive and exit")
	restorePath = flag.String("restore", "", "Restore snapshots from a backup archive and exit")
)

func main() {
	// Create DI container
	injector := di.NewContainer()

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap engine: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	if seeded, err := do.Invoke[*providers.SeedResult](injector); err == nil && seeded.StoresSeeded > 0 {
		log.Info("Loaded demo fixtures", "stores", seeded.StoresSeeded)
	}

	ctx := context.Background()
	oneShot := false

	if *searchQuery != "" {
		oneShot = true
		if err := runSearch(ctx, injector, *searchQuery); err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
	}

	if *showSummary {
		oneShot = true
		if err := printSummaries(ctx, injector); err != nil {
			fmt.Fprintf(os.Stderr, "Summary failed: %v\n", err)
			os.Exit(1)
		}
	}

	if *takeBackup {
		oneShot = true
		if err := runBackup(ctx, injector); err != nil {
			fmt.Fprintf(os.Stderr, "Backup failed: %v\n", err)
			os.Exit(1)
		}
	}

	if *restorePath != "" {
		oneShot = true
		if err := runRestore(ctx, injector, *restorePath); err != nil {
			fmt.Fprintf(os.Stderr, "Restore failed: %v\n", err)
			os.Exit(1)
		}
	}

	if !oneShot {
		// Wait for shutdown signal
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
	}

	log.Info("Shutting down engine gracefully...")

	// Shutdown all services in reverse order
	// The DI container handles shutdown order automatically
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	log.Info("Happy reading...")
}

// flushStores waits for every store's pending snapshot writes so the adapter
// holds current state.
func flushStores(injector do.Injector) {
	do.MustInvoke[*providers.LibraryHandle](injector).Flush()
	do.MustInvoke[*providers.SocialHandle](injector).Flush()
	do.MustInvoke[*providers.ChallengesHandle](injector).Flush()
	do.MustInvoke[*providers.ThemeHandle](injector).Flush()
	do.MustInvoke[*providers.ProfileHandle](injector).Flush()
}

func runBackup(ctx context.Context, injector do.Injector) error {
	flushStores(injector)

	svc := do.MustInvoke[*backup.Service](injector)
	result, err := svc.Create(ctx, backup.Options{})
	if err != nil {
		return err
	}

	fmt.Printf("Backup written to %s (%d bytes, %d entities)\n",
		result.Path, result.Size, result.Counts.Total())
	return nil
}

// runRestore replaces the persisted snapshots with the archive's contents.
// The stores in this process keep their pre-restore state; the restored
// snapshots are picked up on next startup.
func runRestore(ctx context.Context, injector do.Injector, path string) error {
	flushStores(injector)

	restorer := do.MustInvoke[*backup.Restorer](injector)
	result, err := restorer.Restore(ctx, path, backup.RestoreOptions{})
	if err != nil {
		return err
	}

	fmt.Printf("Restored %d snapshot(s); restart to load them\n", len(result.Imported))
	return nil
}

func runSearch(ctx context.Context, injector do.Injector, query string) error {
	library := do.MustInvoke[*service.LibraryService](injector)

	params := search.DefaultParams()
	params.Query = query

	result, err := library.Search(ctx, params)
	if err != nil {
		return err
	}

	fmt.Printf("%d result(s) for %q in %dms\n", result.Total, query, result.TookMs)
	for _, hit := range result.Hits {
		fmt.Printf("  %-40s %s (%.2f)\n", hit.Title, hit.Author, hit.Score)
	}
	return nil
}

func printSummaries(ctx context.Context, injector do.Injector) error {
	library := do.MustInvoke[*service.LibraryService](injector)
	social := do.MustInvoke[*service.SocialService](injector)
	challenges := do.MustInvoke[*service.ChallengesService](injector)

	entries, err := library.Entries(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Library: %d tracked book(s)\n", len(entries))
	for _, e := range entries {
		fmt.Printf("  [%-9s] %-40s %3d%%\n", e.UserBook.Status, e.Book.Title, e.ProgressPercent)
	}

	feed, err := social.Feed(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nFeed: %d item(s)\n", len(feed))
	for _, item := range feed {
		fmt.Printf("  %-10s by %s (%d likes)\n", item.Kind, item.Username, item.LikesCount)
	}

	summaries, err := challenges.ChallengeSummaries(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nChallenges: %d\n", len(summaries))
	for _, c := range summaries {
		marker := " "
		if c.Completed {
			marker = "*"
		}
		fmt.Printf("  %s %-30s %d/%d (%d%%)\n", marker, c.Challenge.Title,
			c.Challenge.Progress, c.Challenge.Target, c.ProgressPercent)
	}

	overall, err := challenges.Summarize(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nBadges unlocked: %d/%d, events joined: %d/%d\n",
		overall.BadgesUnlocked, overall.BadgesTotal,
		overall.EventsJoined, overall.EventsTotal)
	return nil
}
