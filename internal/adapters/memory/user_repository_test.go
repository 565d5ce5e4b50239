package memory_adapter

import (
	"context"
	"testing"

	"home-finder-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUsers(t *testing.T) *UserRepositoryAdapter {
	t.Helper()
	a := NewUserRepositoryAdapter()
	for _, u := range []domain.NewUser{
		{ClerkID: "user_a", Email: "ann@example.com", FirstName: "Ann"},
		{ClerkID: "user_b", Email: "bob@example.com", FirstName: "Bob"},
		{ClerkID: "user_c", Email: "cleo@example.com", FirstName: "Cleo"},
	} {
		_, err := a.Create(context.Background(), u)
		require.NoError(t, err)
	}
	return a
}

func clerkIDs(users []domain.User) []string {
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ClerkID
	}
	return ids
}

func TestListUsersSortByCreatedAtAsc(t *testing.T) {
	a := seedUsers(t)

	users, total, err := a.List(context.Background(), domain.UserFilters{
		SortBy:    domain.UserSortByCreatedAt,
		SortOrder: domain.SortAsc,
	}, 10, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, total)
	// Oldest account first when ascending is asked for explicitly.
	assert.Equal(t, []string{"user_a", "user_b", "user_c"}, clerkIDs(users))
}

func TestListUsersDefaultOrderIsNewestFirst(t *testing.T) {
	a := seedUsers(t)

	users, _, err := a.List(context.Background(), domain.UserFilters{}, 10, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"user_c", "user_b", "user_a"}, clerkIDs(users))
}

func TestListUsersExplicitAscOverridesDefault(t *testing.T) {
	a := seedUsers(t)

	// sortOrder alone, with no sortBy, still sorts created_at ascending.
	users, _, err := a.List(context.Background(), domain.UserFilters{
		SortOrder: domain.SortAsc,
	}, 10, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"user_a", "user_b", "user_c"}, clerkIDs(users))
}

func TestListUsersSortByEmailDesc(t *testing.T) {
	a := seedUsers(t)

	users, _, err := a.List(context.Background(), domain.UserFilters{
		SortBy:    domain.UserSortByEmail,
		SortOrder: domain.SortDesc,
	}, 10, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"user_c", "user_b", "user_a"}, clerkIDs(users))
}
