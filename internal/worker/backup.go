// Package worker holds the background jobs run alongside the HTTP server.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// BackupStore is the slice of the store the backup worker needs.
type BackupStore interface {
	BackupTo(ctx context.Context, path string) error
}

// BackupCoordinator writes scheduled database snapshots and prunes old ones.
type BackupCoordinator struct {
	store    BackupStore
	schedule cron.Schedule
	dir      string
	keep     int
}

// NewBackupCoordinator parses the 5-field cron expression (minute hour
// day-of-month month day-of-week) and returns a coordinator. Examples:
// "0 2 * * *" (daily 2am), "0 2 * * 1-5" (weekdays 2am).
func NewBackupCoordinator(store BackupStore, schedule, dir string, keep int) (*BackupCoordinator, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(strings.TrimSpace(schedule))
	if err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", schedule, err)
	}

	if keep <= 0 {
		keep = 14
	}

	return &BackupCoordinator{
		store:    store,
		schedule: sched,
		dir:      dir,
		keep:     keep,
	}, nil
}

// Run starts the coordinator loop. It sleeps until the next scheduled time,
// takes a backup, prunes, and repeats until the context is cancelled.
func (c *BackupCoordinator) Run(ctx context.Context) {
	slog.Info("worker started",
		"component", "worker",
		"worker", "backup-coordinator",
		"action", "worker_started",
		"dir", c.dir,
		"keep", c.keep,
	)

	for {
		next := c.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			slog.Info("worker stopped",
				"component", "worker",
				"worker", "backup-coordinator",
				"action", "worker_stopped",
				"reason", "context_cancelled",
			)
			return
		case <-timer.C:
			c.RunOnce(ctx)
		}
	}
}

// RunOnce takes a single backup and prunes old snapshots. Failures are
// logged, never fatal; the next scheduled run tries again.
func (c *BackupCoordinator) RunOnce(ctx context.Context) {
	path := filepath.Join(c.dir, fmt.Sprintf("lexhours-%s.db", time.Now().Format("20060102-150405")))

	if err := c.store.BackupTo(ctx, path); err != nil {
		if ctx.Err() != nil {
			return // Graceful shutdown, don't log as error
		}
		slog.Error("backup failed",
			"component", "worker",
			"worker", "backup-coordinator",
			"action", "backup_failed",
			"path", path,
			"error", err,
		)
		return
	}

	slog.Info("backup written",
		"component", "worker",
		"worker", "backup-coordinator",
		"action", "backup_complete",
		"path", path,
	)

	if pruned, err := c.prune(); err != nil {
		slog.Warn("backup pruning failed",
			"component", "worker",
			"worker", "backup-coordinator",
			"action", "prune_failed",
			"error", err,
		)
	} else if pruned > 0 {
		slog.Info("old backups pruned",
			"component", "worker",
			"worker", "backup-coordinator",
			"action", "prune_complete",
			"pruned", pruned,
		)
	}
}

// prune removes the oldest snapshots beyond the retention count. Snapshot
// names embed their timestamp, so lexical order is chronological order.
func (c *BackupCoordinator) prune() (int, error) {
	matches, err := filepath.Glob(filepath.Join(c.dir, "lexhours-*.db"))
	if err != nil {
		return 0, fmt.Errorf("list backups: %w", err)
	}
	if len(matches) <= c.keep {
		return 0, nil
	}

	sort.Strings(matches)
	excess := matches[:len(matches)-c.keep]
	pruned := 0
	for _, path := range excess {
		if err := os.Remove(path); err != nil {
			return pruned, fmt.Errorf("remove %s: %w", path, err)
		}
		pruned++
	}
	return pruned, nil
}
