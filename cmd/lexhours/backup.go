package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/lexhours/lexhours/internal/config"
	"github.com/lexhours/lexhours/internal/store"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Take a one-shot database backup and exit",
	RunE:  runBackup,
}

func init() {
	rootCmd.AddCommand(backupCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	path := filepath.Join(cfg.Backup.Dir,
		fmt.Sprintf("lexhours-%s.db", time.Now().Format("20060102-150405")))
	if err := db.BackupTo(cmd.Context(), path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "backup written to %s\n", path)
	return nil
}
