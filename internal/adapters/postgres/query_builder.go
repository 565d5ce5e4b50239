package postgres_adapter

import (
	"fmt"
	"strings"

	"home-finder-service/internal/core/domain"
)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argID      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argID:      1,
		conditions: make([]string, 0),
		args:       make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argID))
	qb.args = append(qb.args, arg)
	qb.argID++
}

// AddFloatRange adds inclusive lower/upper bounds for a numeric column.
func (qb *queryBuilder) AddFloatRange(fieldName string, min *float64, max *float64) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

// AddIntEqual adds an exact match for an integer column.
func (qb *queryBuilder) AddIntEqual(fieldName string, value *int) {
	if value != nil {
		qb.addCondition("%s = $%d", fieldName, *value)
	}
}

// AddFoldedEqual adds a case-insensitive exact match for a text column.
func (qb *queryBuilder) AddFoldedEqual(fieldName string, value string) {
	if value != "" {
		qb.addCondition("LOWER(%s) = LOWER($%d)", fieldName, value)
	}
}

// AddSubstring adds a case-insensitive substring match for a text column.
func (qb *queryBuilder) AddSubstring(fieldName string, value string) {
	if value != "" {
		qb.addCondition("%s ILIKE $%d", fieldName, "%"+value+"%")
	}
}

// build assembles the final WHERE clause (empty when unconstrained).
func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

// applyPropertyFilters turns a filter specification into a WHERE clause
// and its arguments. All conditions combine with AND.
func applyPropertyFilters(filters domain.PropertyFilters) (string, []interface{}) {
	qb := newQueryBuilder()

	qb.AddFloatRange("price", filters.MinPrice, filters.MaxPrice)
	qb.AddFoldedEqual("type", filters.Type)
	qb.AddIntEqual("bedrooms", filters.Bedrooms)
	qb.AddIntEqual("bathrooms", filters.Bathrooms)
	qb.AddFoldedEqual("furnishing", filters.Furnishing)
	qb.AddFoldedEqual("availability", filters.Availability)

	return qb.build()
}

// propertyOrderBy maps the sort directives onto an ORDER BY clause.
// Ties break on id so paging stays deterministic.
func propertyOrderBy(sortBy, sortOrder string) string {
	column := "posted_date"
	switch sortBy {
	case domain.SortByPrice:
		column = "price"
	case domain.SortByArea:
		column = "area"
	case domain.SortByCreatedAt:
		column = "created_at"
	case domain.SortByPostedDate:
		column = "posted_date"
	case "":
		// default listing order is most recently posted first
		return "ORDER BY posted_date DESC, id ASC"
	}

	direction := "ASC"
	if sortOrder == domain.SortDesc {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, id ASC", column, direction)
}

// userOrderBy maps the user listing sort directives onto an ORDER BY clause.
func userOrderBy(sortBy, sortOrder string) string {
	column := "created_at"
	switch sortBy {
	case domain.UserSortByFirstName:
		column = "first_name"
	case domain.UserSortByLastName:
		column = "last_name"
	case domain.UserSortByEmail:
		column = "email"
	case domain.UserSortByCreatedAt, "":
		column = "created_at"
	}

	direction := "ASC"
	if sortOrder == domain.SortDesc || sortBy == "" && sortOrder == "" {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, id ASC", column, direction)
}
