package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/lessonboard/lessonboard/internal/domain"
	"github.com/lessonboard/lessonboard/internal/platform/logger"
	"github.com/lessonboard/lessonboard/internal/store"
)

const lessonColumns = `id, category_id, title, content, created_at, updated_at`

// PostgresLessonStore implements the store.LessonStore interface
// using a PostgreSQL database as the storage backend.
type PostgresLessonStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLessonStore creates a new PostgreSQL implementation of the LessonStore interface.
func NewPostgresLessonStore(db store.DBTX, logger *slog.Logger) *PostgresLessonStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresLessonStore{
		db:     db,
		logger: logger.With(slog.String("component", "lesson_store")),
	}
}

var _ store.LessonStore = (*PostgresLessonStore)(nil)

// Create implements store.LessonStore.Create
func (s *PostgresLessonStore) Create(ctx context.Context, lesson *domain.Lesson) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := lesson.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO lessons (category_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		lesson.CategoryID,
		lesson.Title,
		lesson.Content,
		lesson.CreatedAt,
		lesson.UpdatedAt,
	).Scan(&lesson.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("lesson references unknown category",
				slog.Int64("category_id", lesson.CategoryID))
		}
		log.Error("failed to create lesson", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("lesson created",
		slog.Int64("lesson_id", lesson.ID),
		slog.Int64("category_id", lesson.CategoryID))
	return nil
}

// GetByID implements store.LessonStore.GetByID
func (s *PostgresLessonStore) GetByID(ctx context.Context, id int64) (*domain.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`

	lesson, err := scanLesson(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLessonNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get lesson by ID",
			slog.String("error", err.Error()),
			slog.Int64("lesson_id", id))
		return nil, MapError(err)
	}
	return lesson, nil
}

// Update implements store.LessonStore.Update
func (s *PostgresLessonStore) Update(ctx context.Context, lesson *domain.Lesson) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := lesson.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE lessons
		SET category_id = $1, title = $2, content = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(ctx, query,
		lesson.CategoryID,
		lesson.Title,
		lesson.Content,
		lesson.UpdatedAt,
		lesson.ID,
	)
	if err != nil {
		log.Error("failed to update lesson",
			slog.String("error", err.Error()),
			slog.Int64("lesson_id", lesson.ID))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrLessonNotFound); err != nil {
		return err
	}

	log.Info("lesson updated", slog.Int64("lesson_id", lesson.ID))
	return nil
}

// Delete implements store.LessonStore.Delete
func (s *PostgresLessonStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete lesson",
			slog.String("error", err.Error()),
			slog.Int64("lesson_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrLessonNotFound); err != nil {
		return err
	}

	log.Info("lesson deleted", slog.Int64("lesson_id", id))
	return nil
}

// List implements store.LessonStore.List
func (s *PostgresLessonStore) List(ctx context.Context, limit, offset int) ([]*domain.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to list lessons", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	lessons := make([]*domain.Lesson, 0, limit)
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, MapError(err)
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return lessons, nil
}

// Count implements store.LessonStore.Count
func (s *PostgresLessonStore) Count(ctx context.Context) (int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lessons`).Scan(&total); err != nil {
		return 0, MapError(err)
	}
	return total, nil
}

// WithTx implements store.LessonStore.WithTx
func (s *PostgresLessonStore) WithTx(tx *sql.Tx) store.LessonStore {
	return &PostgresLessonStore{db: tx, logger: s.logger}
}

func scanLesson(row rowScanner) (*domain.Lesson, error) {
	var l domain.Lesson
	err := row.Scan(&l.ID, &l.CategoryID, &l.Title, &l.Content, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
