package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/lifedash/internal/backup"
	"github.com/julianstephens/lifedash/internal/cli"
	"github.com/julianstephens/lifedash/internal/constants"
	"github.com/julianstephens/lifedash/internal/logger"
	"github.com/julianstephens/lifedash/internal/storage/sqlite"
)

// manager returns the backup manager of a SQLite store. PostgreSQL
// deployments are expected to use pg_dump.
func manager(ctx *cli.Context) (*backup.Manager, *sqlite.Store, error) {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil, nil, fmt.Errorf("backups are only supported for SQLite storage (use pg_dump for PostgreSQL)")
	}
	return backup.NewManager(store.GetConfigPath()), store, nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, _, err := manager(ctx)
	if err != nil {
		return err
	}
	backupPath, err := mgr.CreateBackup(ctx.Ctx())
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, _, err := manager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		ctx.Printf("  %s  %s  (%.1f KB)\n", b.Timestamp.Format("2006-01-02 15:04:05"), b.Name(), sizeKB)
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" optional:"" help:"Path or filename of the backup to restore. Defaults to the newest backup."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, store, err := manager(ctx)
	if err != nil {
		return err
	}

	backupPath, err := c.resolve(mgr)
	if err != nil {
		return err
	}

	if !c.Yes {
		ctx.Println("⚠️  WARNING: This will replace your current database with the backup.")
		ctx.Println("⚠️  IMPORTANT: All lifedash processes (including the TUI) must be stopped before restore.")
		ctx.Println("A backup of your current database will be created before restoring.")
		ctx.Printf("\nRestore from: %s\n", backupPath)
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	if err := store.Close(); err != nil {
		logger.Warn("Failed to close database connection", "error", err)
	}

	saved, err := mgr.RestoreBackup(ctx.Ctx(), backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	if saved != "" {
		ctx.Printf("Previous database saved as: %s\n", filepath.Base(saved))
	}
	ctx.Println("✓ Database restored successfully!")
	return store.Load()
}

// resolve finds the backup by absolute path, relative path, or file name in
// the backup directory. An empty argument picks the newest backup.
func (c *BackupRestoreCmd) resolve(mgr *backup.Manager) (string, error) {
	if c.BackupFile == "" {
		latest, ok, err := mgr.Latest()
		if err != nil {
			return "", fmt.Errorf("failed to list backups: %w", err)
		}
		if !ok {
			return "", fmt.Errorf("no backups found in %s", mgr.GetBackupDir())
		}
		return latest.Path, nil
	}

	if filepath.IsAbs(c.BackupFile) {
		if _, err := os.Stat(c.BackupFile); err != nil {
			return "", fmt.Errorf("backup file not found: %s", c.BackupFile)
		}
		return c.BackupFile, nil
	}
	if _, err := os.Stat(c.BackupFile); err == nil {
		absPath, err := filepath.Abs(c.BackupFile)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return absPath, nil
	}
	possiblePath := filepath.Join(mgr.GetBackupDir(), c.BackupFile)
	if _, err := os.Stat(possiblePath); err == nil {
		return possiblePath, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", mgr.GetBackupDir())
}
