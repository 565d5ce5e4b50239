package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/port"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FavoritesRepositoryAdapter implements FavoritesRepositoryPort for
// PostgreSQL. Each favorite is one row keyed by (user_id, property_id),
// so concurrent adds for the same user never overwrite each other.
type FavoritesRepositoryAdapter struct {
	pool *pgxpool.Pool
}

func NewFavoritesRepositoryAdapter(pool *pgxpool.Pool) (*FavoritesRepositoryAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &FavoritesRepositoryAdapter{pool: pool}, nil
}

// Add marks a property as favorited. Adding one that is already present
// succeeds without change.
func (a *FavoritesRepositoryAdapter) Add(ctx context.Context, userID, propertyID int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "FavoritesRepositoryAdapter",
		"method":      "Add",
		"user_id":     userID,
		"property_id": propertyID,
	})

	query := "INSERT INTO user_favorites (user_id, property_id) VALUES ($1, $2)"
	_, err := a.pool.Exec(ctx, query, userID, propertyID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			repoLogger.Warn("Attempted to add a favorite that already exists.", nil)
			return nil
		}
		repoLogger.Error("Failed to add favorite", err, nil)
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	repoLogger.Info("Favorite added.", nil)
	return nil
}

// Remove unmarks a favorited property. Removing one that is absent
// succeeds without change.
func (a *FavoritesRepositoryAdapter) Remove(ctx context.Context, userID, propertyID int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "FavoritesRepositoryAdapter",
		"method":      "Remove",
		"user_id":     userID,
		"property_id": propertyID,
	})

	query := "DELETE FROM user_favorites WHERE user_id = $1 AND property_id = $2"
	cmdTag, err := a.pool.Exec(ctx, query, userID, propertyID)
	if err != nil {
		repoLogger.Error("Failed to remove favorite", err, nil)
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Attempted to remove a favorite that did not exist.", nil)
		return nil
	}

	repoLogger.Info("Favorite removed.", nil)
	return nil
}

// Exists reports whether the property is in the user's favorites.
func (a *FavoritesRepositoryAdapter) Exists(ctx context.Context, userID, propertyID int64) (bool, error) {
	query := "SELECT EXISTS (SELECT 1 FROM user_favorites WHERE user_id = $1 AND property_id = $2)"
	var exists bool
	if err := a.pool.QueryRow(ctx, query, userID, propertyID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

// FindIDsByUser returns the user's favorited property ids, most
// recently added first.
func (a *FavoritesRepositoryAdapter) FindIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	query := "SELECT property_id FROM user_favorites WHERE user_id = $1 ORDER BY created_at DESC, property_id ASC"
	rows, err := a.pool.Query(ctx, query, userID)
	if err != nil {
		logger.Error("Failed to query favorites", err, port.Fields{
			"component": "FavoritesRepositoryAdapter",
			"user_id":   userID,
		})
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan favorite id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during favorites iteration: %w", err)
	}
	return ids, nil
}

// RemoveAllForUser clears a user's favorites set.
func (a *FavoritesRepositoryAdapter) RemoveAllForUser(ctx context.Context, userID int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "FavoritesRepositoryAdapter",
		"method":    "RemoveAllForUser",
		"user_id":   userID,
	})

	cmdTag, err := a.pool.Exec(ctx, "DELETE FROM user_favorites WHERE user_id = $1", userID)
	if err != nil {
		repoLogger.Error("Failed to clear favorites", err, nil)
		return fmt.Errorf("failed to clear favorites: %w", err)
	}

	repoLogger.Debug("Favorites cleared.", port.Fields{"removed_count": cmdTag.RowsAffected()})
	return nil
}
