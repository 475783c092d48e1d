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

const roleColumns = `id, name, description, created_at, updated_at`

// PostgresRoleStore implements the store.RoleStore interface
// using a PostgreSQL database as the storage backend.
type PostgresRoleStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRoleStore creates a new PostgreSQL implementation of the RoleStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresRoleStore(db store.DBTX, logger *slog.Logger) *PostgresRoleStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresRoleStore{
		db:     db,
		logger: logger.With(slog.String("component", "role_store")),
	}
}

// Ensure PostgresRoleStore implements store.RoleStore interface
var _ store.RoleStore = (*PostgresRoleStore)(nil)

// Create implements store.RoleStore.Create
func (s *PostgresRoleStore) Create(ctx context.Context, role *domain.Role) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := role.Validate(); err != nil {
		log.Warn("role validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO roles (name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query,
		role.Name,
		role.Description,
		role.CreatedAt,
		role.UpdatedAt,
	).Scan(&role.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("role name already exists", slog.String("name", role.Name))
			return store.ErrRoleNameExists
		}
		log.Error("failed to create role", slog.String("error", err.Error()))
		return MapError(err)
	}

	log.Info("role created", slog.Int64("role_id", role.ID))
	return nil
}

// GetByID implements store.RoleStore.GetByID
func (s *PostgresRoleStore) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + roleColumns + ` FROM roles WHERE id = $1`

	role, err := scanRole(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("role not found", slog.Int64("role_id", id))
			return nil, store.ErrRoleNotFound
		}
		log.Error("failed to get role by ID",
			slog.String("error", err.Error()),
			slog.Int64("role_id", id))
		return nil, MapError(err)
	}
	return role, nil
}

// Update implements store.RoleStore.Update
func (s *PostgresRoleStore) Update(ctx context.Context, role *domain.Role) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := role.Validate(); err != nil {
		log.Warn("role validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("role_id", role.ID))
		return err
	}

	query := `
		UPDATE roles
		SET name = $1, description = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := s.db.ExecContext(ctx, query,
		role.Name,
		role.Description,
		role.UpdatedAt,
		role.ID,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("role name already exists",
				slog.String("name", role.Name),
				slog.Int64("role_id", role.ID))
			return store.ErrRoleNameExists
		}
		log.Error("failed to update role",
			slog.String("error", err.Error()),
			slog.Int64("role_id", role.ID))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrRoleNotFound); err != nil {
		return err
	}

	log.Info("role updated", slog.Int64("role_id", role.ID))
	return nil
}

// Delete implements store.RoleStore.Delete
func (s *PostgresRoleStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete role",
			slog.String("error", err.Error()),
			slog.Int64("role_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, store.ErrRoleNotFound); err != nil {
		return err
	}

	log.Info("role deleted", slog.Int64("role_id", id))
	return nil
}

// List implements store.RoleStore.List
func (s *PostgresRoleStore) List(ctx context.Context, limit, offset int) ([]*domain.Role, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + roleColumns + ` FROM roles ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to list roles", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	roles := make([]*domain.Role, 0, limit)
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, MapError(err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating role rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return roles, nil
}

// Count implements store.RoleStore.Count
func (s *PostgresRoleStore) Count(ctx context.Context) (int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM roles`).Scan(&total); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).
			Error("failed to count roles", slog.String("error", err.Error()))
		return 0, MapError(err)
	}
	return total, nil
}

func scanRole(row rowScanner) (*domain.Role, error) {
	var c domain.Role
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
