// Package backup snapshots and restores the SQLite database file.
package backup

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/lifedash/internal/constants"
	"github.com/julianstephens/lifedash/internal/logger"
)

const (
	minuteStamp = "20060102-1504"
	secondStamp = "20060102-150405"
	maxAttempts = 100
)

// ErrNoDatabase is returned when there is no database file to back up.
var ErrNoDatabase = stderrors.New("database does not exist")

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Name returns the file name of the backup.
func (b BackupInfo) Name() string {
	return filepath.Base(b.Path)
}

// Manager handles backup operations for one database file.
type Manager struct {
	dbPath    string
	backupDir string
	keep      int
	now       func() time.Time
}

// NewManager creates a backup manager storing snapshots next to dbPath.
func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		keep:      constants.MaxBackups,
		now:       time.Now,
	}
}

// GetBackupDir returns the backup directory path
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup snapshots the database and prunes the oldest backups beyond
// the retention limit.
func (m *Manager) CreateBackup(ctx context.Context) (string, error) {
	path, err := m.snapshot(ctx)
	if err != nil {
		return "", err
	}
	if err := m.prune(); err != nil {
		logger.Warn("Failed to rotate old backups", "dir", m.backupDir, "error", err)
	}
	return path, nil
}

func (m *Manager) snapshot(ctx context.Context) (string, error) {
	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", ErrNoDatabase, m.dbPath)
	}
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	dest, err := m.nextPath()
	if err != nil {
		return "", err
	}
	if err := m.vacuumInto(ctx, dest); err != nil {
		return "", fmt.Errorf("backing up database: %w", err)
	}

	logger.Info("Created database backup", "path", dest)
	return dest, nil
}

// nextPath picks an unused file name, widening the timestamp to seconds and
// then appending a counter on collisions.
func (m *Manager) nextPath() (string, error) {
	now := m.now()
	candidate := m.pathFor(now.Format(minuteStamp))
	if !exists(candidate) {
		return candidate, nil
	}

	stamp := now.Format(secondStamp)
	candidate = m.pathFor(stamp)
	for counter := 1; exists(candidate); counter++ {
		if counter > maxAttempts {
			return "", fmt.Errorf("no free backup file name for %s", stamp)
		}
		candidate = m.pathFor(fmt.Sprintf("%s-%d", stamp, counter))
	}
	return candidate, nil
}

func (m *Manager) pathFor(stamp string) string {
	return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
}

// vacuumInto writes a consistent copy of the live database, falling back to a
// plain file copy when VACUUM INTO is unavailable.
func (m *Manager) vacuumInto(ctx context.Context, dest string) error {
	src, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("opening source database: %w", err)
	}
	defer src.Close()

	if err := checkSchema(ctx, src); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := src.ExecContext(ctx, "VACUUM INTO ?", dest); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		src.Close()
		return copyFile(m.dbPath, dest)
	}
	return nil
}

// ListBackups returns all backups, newest first. Files that do not follow the
// backup naming scheme are ignored.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := parseName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if !backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Timestamp.After(backups[j].Timestamp)
		}
		return backups[i].Path > backups[j].Path
	})
	return backups, nil
}

// Latest returns the newest backup, or false when there is none.
func (m *Manager) Latest() (BackupInfo, bool, error) {
	backups, err := m.ListBackups()
	if err != nil || len(backups) == 0 {
		return BackupInfo{}, false, err
	}
	return backups[0], true, nil
}

// parseName extracts the timestamp from lifedash-YYYYMMDD-HHMM[SS][-N].db.
func parseName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	// counter suffix: a third dash-separated part that is not itself a time
	if parts := strings.Split(stamp, "-"); len(parts) == 3 {
		if _, err := strconv.Atoi(parts[2]); err != nil {
			return time.Time{}, false
		}
		stamp = parts[0] + "-" + parts[1]
	}

	for _, layout := range []string{minuteStamp, secondStamp} {
		if ts, err := time.Parse(layout, stamp); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func (m *Manager) prune() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) <= m.keep {
		return nil
	}
	for _, b := range backups[m.keep:] {
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("removing old backup %s: %w", b.Name(), err)
		}
		logger.Debug("Removed old backup", "path", b.Path)
	}
	return nil
}

// RestoreBackup replaces the database with the given backup. The current
// database, if any, is snapshotted first without rotation; its path is
// returned ("" when there was nothing to save).
func (m *Manager) RestoreBackup(ctx context.Context, backupPath string) (string, error) {
	if !exists(backupPath) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := verify(ctx, backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var saved string
	if exists(m.dbPath) {
		var err error
		if saved, err = m.snapshot(ctx); err != nil {
			return "", fmt.Errorf("backing up current database before restore: %w", err)
		}
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tmp); err != nil {
		return saved, fmt.Errorf("copying backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("Failed to remove temporary restore file", "path", tmp, "error", rmErr)
		}
		return saved, fmt.Errorf("restoring database: %w", err)
	}

	logger.Info("Restored database from backup", "backup", backupPath, "saved", saved)
	return saved, nil
}

func verify(ctx context.Context, path string) error {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	return checkSchema(ctx, db)
}

func checkSchema(ctx context.Context, db *sql.DB) error {
	var count int
	return db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
