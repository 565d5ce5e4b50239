package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/domain"
	"home-finder-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const propertyColumns = `id, title, price, type, bedrooms, bathrooms, area, image_url,
	furnishing, availability, amenities, description, contact_name, contact_phone,
	posted_date, is_featured, tags, created_at`

// PropertyStorageAdapter implements PropertyStoragePort for PostgreSQL.
type PropertyStorageAdapter struct {
	pool *pgxpool.Pool
}

func NewPropertyStorageAdapter(pool *pgxpool.Pool) (*PropertyStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PropertyStorageAdapter{pool: pool}, nil
}

func scanProperty(row pgx.Row) (domain.Property, error) {
	var p domain.Property
	err := row.Scan(
		&p.ID, &p.Title, &p.Price, &p.Type, &p.Bedrooms, &p.Bathrooms, &p.Area,
		&p.ImageURL, &p.Furnishing, &p.Availability, &p.Amenities, &p.Description,
		&p.ContactName, &p.ContactPhone, &p.PostedDate, &p.IsFeatured, &p.Tags,
		&p.CreatedAt,
	)
	return p, err
}

// FindWithFilters runs the filtered, sorted, paginated property search.
// The count and the page query run in one transaction so total and items
// describe the same snapshot.
func (a *PropertyStorageAdapter) FindWithFilters(ctx context.Context, filters domain.PropertyFilters, limit, offset int) (*domain.PaginatedProperties, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PropertyStorageAdapter",
		"method":    "FindWithFilters",
		"limit":     limit,
		"offset":    offset,
	})

	whereClause, args := applyPropertyFilters(filters)

	tx, err := a.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM properties %s", whereClause)
	var total int64
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		repoLogger.Error("Failed to count properties", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count properties: %w", err)
	}

	// No second query when nothing matches.
	if total == 0 {
		return &domain.PaginatedProperties{
			Properties: []domain.Property{},
			Total:      0,
			HasMore:    false,
		}, nil
	}

	dataQuery := fmt.Sprintf(
		"SELECT %s FROM properties %s %s LIMIT $%d OFFSET $%d",
		propertyColumns, whereClause, propertyOrderBy(filters.SortBy, filters.SortOrder),
		len(args)+1, len(args)+2,
	)
	pageArgs := append(args, limit, offset)

	rows, err := tx.Query(ctx, dataQuery, pageArgs...)
	if err != nil {
		repoLogger.Error("Failed to query properties", err, port.Fields{"query": dataQuery})
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	properties := make([]domain.Property, 0, limit)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during properties iteration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Property search finished", port.Fields{
		"total_found":   total,
		"items_on_page": len(properties),
	})

	return &domain.PaginatedProperties{
		Properties: properties,
		Total:      int(total),
		HasMore:    domain.HasMorePages(int(total), limit, offset),
	}, nil
}

// FindByID returns (nil, nil) when no listing has the given id.
func (a *PropertyStorageAdapter) FindByID(ctx context.Context, id int64) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PropertyStorageAdapter",
		"method":      "FindByID",
		"property_id": id,
	})

	query := fmt.Sprintf("SELECT %s FROM properties WHERE id = $1", propertyColumns)
	p, err := scanProperty(a.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Property not found by ID.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find property by ID", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find property by id: %w", err)
	}
	return &p, nil
}

// FindByIDs returns the properties that still exist for the given ids.
// Ids without a backing row are skipped, not errors.
func (a *PropertyStorageAdapter) FindByIDs(ctx context.Context, ids []int64) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PropertyStorageAdapter",
		"method":    "FindByIDs",
		"id_count":  len(ids),
	})

	if len(ids) == 0 {
		return []domain.Property{}, nil
	}

	query := fmt.Sprintf("SELECT %s FROM properties WHERE id = ANY($1)", propertyColumns)
	rows, err := a.pool.Query(ctx, query, ids)
	if err != nil {
		repoLogger.Error("Failed to query properties by ids", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query properties by ids: %w", err)
	}
	defer rows.Close()

	properties := make([]domain.Property, 0, len(ids))
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during properties iteration: %w", err)
	}

	repoLogger.Debug("Found properties by ids", port.Fields{"found_count": len(properties)})
	return properties, nil
}

// FindFeatured returns featured listings, most recently posted first.
func (a *PropertyStorageAdapter) FindFeatured(ctx context.Context, limit int) ([]domain.Property, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM properties WHERE is_featured = true ORDER BY posted_date DESC, id ASC LIMIT $1",
		propertyColumns,
	)
	rows, err := a.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query featured properties: %w", err)
	}
	defer rows.Close()

	properties := make([]domain.Property, 0, limit)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during properties iteration: %w", err)
	}
	return properties, nil
}

// Upsert inserts a listing or replaces its mutable fields, keyed on id.
func (a *PropertyStorageAdapter) Upsert(ctx context.Context, p domain.Property) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PropertyStorageAdapter",
		"method":      "Upsert",
		"property_id": p.ID,
	})

	query := `INSERT INTO properties (id, title, price, type, bedrooms, bathrooms, area, image_url,
			furnishing, availability, amenities, description, contact_name, contact_phone,
			posted_date, is_featured, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title, price = EXCLUDED.price, type = EXCLUDED.type,
			bedrooms = EXCLUDED.bedrooms, bathrooms = EXCLUDED.bathrooms, area = EXCLUDED.area,
			image_url = EXCLUDED.image_url, furnishing = EXCLUDED.furnishing,
			availability = EXCLUDED.availability, amenities = EXCLUDED.amenities,
			description = EXCLUDED.description, contact_name = EXCLUDED.contact_name,
			contact_phone = EXCLUDED.contact_phone, posted_date = EXCLUDED.posted_date,
			is_featured = EXCLUDED.is_featured, tags = EXCLUDED.tags`

	_, err := a.pool.Exec(ctx, query,
		p.ID, p.Title, p.Price, p.Type, p.Bedrooms, p.Bathrooms, p.Area, p.ImageURL,
		p.Furnishing, p.Availability, p.Amenities, p.Description, p.ContactName,
		p.ContactPhone, p.PostedDate, p.IsFeatured, p.Tags,
	)
	if err != nil {
		repoLogger.Error("Failed to upsert property", err, nil)
		return fmt.Errorf("failed to upsert property: %w", err)
	}

	repoLogger.Debug("Property upserted.", nil)
	return nil
}

// Delete removes a listing. Removing an absent id is not an error.
func (a *PropertyStorageAdapter) Delete(ctx context.Context, id int64) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PropertyStorageAdapter",
		"method":      "Delete",
		"property_id": id,
	})

	cmdTag, err := a.pool.Exec(ctx, "DELETE FROM properties WHERE id = $1", id)
	if err != nil {
		repoLogger.Error("Failed to delete property", err, nil)
		return fmt.Errorf("failed to delete property: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Attempted to delete a property that did not exist.", nil)
	}
	return nil
}
