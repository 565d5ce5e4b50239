package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/domain"
	"home-finder-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

const userColumns = "id, clerk_id, email, first_name, last_name, created_at"

// UserRepositoryAdapter implements UserRepositoryPort for PostgreSQL.
type UserRepositoryAdapter struct {
	pool *pgxpool.Pool
}

func NewUserRepositoryAdapter(pool *pgxpool.Pool) (*UserRepositoryAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &UserRepositoryAdapter{pool: pool}, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.ClerkID, &u.Email, &u.FirstName, &u.LastName, &u.CreatedAt)
	return u, err
}

// Create inserts a new user. Unique violations map onto the domain
// errors for the constraint that fired.
func (a *UserRepositoryAdapter) Create(ctx context.Context, user domain.NewUser) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "UserRepositoryAdapter",
		"method":    "Create",
		"clerk_id":  user.ClerkID,
	})

	query := fmt.Sprintf(`INSERT INTO users (clerk_id, email, first_name, last_name)
		VALUES ($1, $2, $3, $4) RETURNING %s`, userColumns)

	created, err := scanUser(a.pool.QueryRow(ctx, query,
		user.ClerkID, user.Email, user.FirstName, user.LastName))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			switch {
			case strings.Contains(pgErr.ConstraintName, "email"):
				repoLogger.Warn("Attempted to create user with duplicate email.", nil)
				return nil, domain.ErrEmailInUse
			case strings.Contains(pgErr.ConstraintName, "clerk_id"):
				repoLogger.Warn("Attempted to create user with duplicate clerk id.", nil)
				return nil, domain.ErrClerkIDInUse
			}
		}
		repoLogger.Error("Failed to create user", err, nil)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	repoLogger.Info("User created.", port.Fields{"user_id": created.ID})
	return &created, nil
}

// FindByID returns (nil, nil) when no user has the given id.
func (a *UserRepositoryAdapter) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	return a.findOne(ctx, query, id)
}

// FindByClerkID returns (nil, nil) when no user has the given external id.
func (a *UserRepositoryAdapter) FindByClerkID(ctx context.Context, clerkID string) (*domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE clerk_id = $1", userColumns)
	return a.findOne(ctx, query, clerkID)
}

// FindByEmail returns (nil, nil) when no user has the given email.
func (a *UserRepositoryAdapter) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE LOWER(email) = LOWER($1)", userColumns)
	return a.findOne(ctx, query, email)
}

func (a *UserRepositoryAdapter) findOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	u, err := scanUser(a.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error("Failed to find user", err, port.Fields{
			"component": "UserRepositoryAdapter",
			"query":     query,
		})
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

// List returns a page of users plus the total count for the filters.
func (a *UserRepositoryAdapter) List(ctx context.Context, filters domain.UserFilters, limit, offset int) ([]domain.User, int, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "UserRepositoryAdapter",
		"method":    "List",
		"limit":     limit,
		"offset":    offset,
	})

	qb := newQueryBuilder()
	qb.AddFoldedEqual("email", filters.Email)
	qb.AddSubstring("first_name", filters.FirstName)
	qb.AddSubstring("last_name", filters.LastName)
	whereClause, args := qb.build()

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM users %s", whereClause)
	var total int64
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		repoLogger.Error("Failed to count users", err, port.Fields{"query": countQuery})
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	if total == 0 {
		return []domain.User{}, 0, nil
	}

	dataQuery := fmt.Sprintf(
		"SELECT %s FROM users %s %s LIMIT $%d OFFSET $%d",
		userColumns, whereClause, userOrderBy(filters.SortBy, filters.SortOrder),
		len(args)+1, len(args)+2,
	)
	pageArgs := append(args, limit, offset)

	rows, err := tx.Query(ctx, dataQuery, pageArgs...)
	if err != nil {
		repoLogger.Error("Failed to query users", err, port.Fields{"query": dataQuery})
		return nil, 0, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error during users iteration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return users, int(total), nil
}

// Update applies the provided fields and returns the updated row.
// Returns (nil, nil) when the user does not exist.
func (a *UserRepositoryAdapter) Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "UserRepositoryAdapter",
		"method":    "Update",
		"user_id":   id,
	})

	setClauses := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)
	argID := 1

	if update.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argID))
		args = append(args, *update.Email)
		argID++
	}
	if update.FirstName != nil {
		setClauses = append(setClauses, fmt.Sprintf("first_name = $%d", argID))
		args = append(args, *update.FirstName)
		argID++
	}
	if update.LastName != nil {
		setClauses = append(setClauses, fmt.Sprintf("last_name = $%d", argID))
		args = append(args, *update.LastName)
		argID++
	}

	// Nothing to change, return the current row.
	if len(setClauses) == 0 {
		return a.FindByID(ctx, id)
	}

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), argID, userColumns)
	args = append(args, id)

	updated, err := scanUser(a.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Attempted to update a user that did not exist.", nil)
			return nil, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			repoLogger.Warn("Attempted to update user to a duplicate email.", nil)
			return nil, domain.ErrEmailInUse
		}
		repoLogger.Error("Failed to update user", err, nil)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	repoLogger.Info("User updated.", nil)
	return &updated, nil
}

// Delete removes a user, reporting whether a row was deleted.
// Favorite rows go with the user via ON DELETE CASCADE.
func (a *UserRepositoryAdapter) Delete(ctx context.Context, id int64) (bool, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "UserRepositoryAdapter",
		"method":    "Delete",
		"user_id":   id,
	})

	cmdTag, err := a.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		repoLogger.Error("Failed to delete user", err, nil)
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Attempted to delete a user that did not exist.", nil)
		return false, nil
	}

	repoLogger.Info("User deleted.", nil)
	return true, nil
}
