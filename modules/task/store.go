package task

import (
	"context"
	"fmt"
	"time"

	domain "github.com/example/task-tracker/domain/task"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store persists tasks in a single SQLite table.
// Every operation checks out one connection for its duration and releases it
// on return, including error paths.
type Store struct {
	db *gorm.DB
}

// OpenStore opens (or creates) the SQLite database at dbPath and migrates the
// tasks table. The caller is responsible for calling Close.
func OpenStore(dbPath string, debug bool) (*Store, error) {
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}
	sqlDB.SetMaxOpenConns(1) // single writer; avoids SQLITE_BUSY

	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		sqlDB.Close()
		return nil, &StorageError{Op: "migrate", Err: err}
	}

	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) withConn(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	if err := s.db.WithContext(ctx).Connection(fn); err != nil {
		return &StorageError{Op: op, Err: err}
	}
	return nil
}

// Add validates and persists a new open task.
func (s *Store) Add(ctx context.Context, text string, start, end time.Time) (*domain.Task, error) {
	if err := domain.Validate(text, start, end); err != nil {
		return nil, err
	}

	// Stored as UTC so that ordering by the text column follows the instant.
	t := &domain.Task{
		Text:      text,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
	}
	err := s.withConn(ctx, "add", func(tx *gorm.DB) error {
		return tx.Create(t).Error
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns all tasks ordered by start time, earliest first.
func (s *Store) List(ctx context.Context) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0)
	err := s.withConn(ctx, "list", func(tx *gorm.DB) error {
		return tx.Order("start_time ASC").Order("id ASC").Find(&tasks).Error
	})
	if err != nil {
		return []domain.Task{}, err
	}
	return tasks, nil
}

// SetCompleted marks a task complete. It reports whether this call changed
// the task; unknown ids and already-completed tasks are no-ops.
func (s *Store) SetCompleted(ctx context.Context, id uint) (bool, error) {
	return s.setFlag(ctx, "complete", "completed", id)
}

// MarkAlerted records that the overdue warning for a task has been shown.
// It reports whether this call changed the task.
func (s *Store) MarkAlerted(ctx context.Context, id uint) (bool, error) {
	return s.setFlag(ctx, "mark-alerted", "alerted", id)
}

// setFlag flips a boolean column from false to true. There is no path back.
func (s *Store) setFlag(ctx context.Context, op, column string, id uint) (bool, error) {
	var changed bool
	err := s.withConn(ctx, op, func(tx *gorm.DB) error {
		result := tx.Model(&domain.Task{}).
			Where("id = ? AND "+column+" = ?", id, false).
			Update(column, true)
		if result.Error != nil {
			return result.Error
		}
		changed = result.RowsAffected > 0
		return nil
	})
	return changed, err
}

// Delete removes a task. Deleting an unknown id is not an error; the result
// reports whether a row was removed.
func (s *Store) Delete(ctx context.Context, id uint) (bool, error) {
	var removed bool
	err := s.withConn(ctx, "delete", func(tx *gorm.DB) error {
		result := tx.Delete(&domain.Task{}, id)
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected > 0
		return nil
	})
	return removed, err
}
