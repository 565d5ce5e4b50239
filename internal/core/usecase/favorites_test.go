package usecase

import (
	"context"
	"sync"
	"testing"

	memory_adapter "home-finder-service/internal/adapters/memory"
	"home-finder-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type favoritesFixture struct {
	users     *memory_adapter.UserRepositoryAdapter
	favorites *memory_adapter.FavoritesRepositoryAdapter
	storage   *memory_adapter.PropertyStorageAdapter
	clerkID   string
}

func newFavoritesFixture(t *testing.T) favoritesFixture {
	t.Helper()
	f := favoritesFixture{
		users:     memory_adapter.NewUserRepositoryAdapter(),
		favorites: memory_adapter.NewFavoritesRepositoryAdapter(),
		storage:   memory_adapter.NewPropertyStorageAdapter(),
		clerkID:   "user_2abc",
	}

	_, err := f.users.Create(context.Background(), domain.NewUser{
		ClerkID: f.clerkID,
		Email:   "ann@example.com",
	})
	require.NoError(t, err)

	for _, p := range []domain.Property{
		{ID: 1, Title: "studio", Price: 15000},
		{ID: 2, Title: "apartment", Price: 25000},
		{ID: 3, Title: "villa", Price: 75000},
	} {
		require.NoError(t, f.storage.Upsert(context.Background(), p))
	}
	return f
}

func TestAddToFavoritesIsIdempotent(t *testing.T) {
	f := newFavoritesFixture(t)
	addUC := NewAddToFavoritesUseCase(f.users, f.favorites)
	idsUC := NewGetUserFavoriteIDsUseCase(f.users, f.favorites)

	require.NoError(t, addUC.Execute(context.Background(), f.clerkID, 1))
	require.NoError(t, addUC.Execute(context.Background(), f.clerkID, 1))

	ids, err := idsUC.Execute(context.Background(), f.clerkID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids)
}

func TestRemoveFromFavoritesAbsentEntrySucceeds(t *testing.T) {
	f := newFavoritesFixture(t)
	removeUC := NewRemoveFromFavoritesUseCase(f.users, f.favorites)

	require.NoError(t, removeUC.Execute(context.Background(), f.clerkID, 42))
}

func TestFavoritesRoundTrip(t *testing.T) {
	f := newFavoritesFixture(t)
	addUC := NewAddToFavoritesUseCase(f.users, f.favorites)
	removeUC := NewRemoveFromFavoritesUseCase(f.users, f.favorites)
	statusUC := NewIsFavoritedUseCase(f.users, f.favorites)

	require.NoError(t, addUC.Execute(context.Background(), f.clerkID, 2))

	favorited, err := statusUC.Execute(context.Background(), f.clerkID, 2)
	require.NoError(t, err)
	assert.True(t, favorited)

	require.NoError(t, removeUC.Execute(context.Background(), f.clerkID, 2))

	favorited, err = statusUC.Execute(context.Background(), f.clerkID, 2)
	require.NoError(t, err)
	assert.False(t, favorited)
}

func TestFavoritesUnknownUser(t *testing.T) {
	f := newFavoritesFixture(t)
	addUC := NewAddToFavoritesUseCase(f.users, f.favorites)
	idsUC := NewGetUserFavoriteIDsUseCase(f.users, f.favorites)

	err := addUC.Execute(context.Background(), "user_unknown", 1)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = idsUC.Execute(context.Background(), "user_unknown")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetUserFavoritesKeepsOrderAndSkipsDangling(t *testing.T) {
	f := newFavoritesFixture(t)
	addUC := NewAddToFavoritesUseCase(f.users, f.favorites)
	getUC := NewGetUserFavoritesUseCase(f.users, f.favorites, f.storage)

	require.NoError(t, addUC.Execute(context.Background(), f.clerkID, 1))
	require.NoError(t, addUC.Execute(context.Background(), f.clerkID, 3))
	require.NoError(t, addUC.Execute(context.Background(), f.clerkID, 2))

	// The villa disappears from the catalog but stays favorited.
	require.NoError(t, f.storage.Delete(context.Background(), 3))

	properties, err := getUC.Execute(context.Background(), f.clerkID)
	require.NoError(t, err)

	require.Len(t, properties, 2)
	// Newest addition first, the dangling id silently dropped.
	assert.Equal(t, int64(2), properties[0].ID)
	assert.Equal(t, int64(1), properties[1].ID)
}

func TestGetUserFavoritesEmpty(t *testing.T) {
	f := newFavoritesFixture(t)
	getUC := NewGetUserFavoritesUseCase(f.users, f.favorites, f.storage)

	properties, err := getUC.Execute(context.Background(), f.clerkID)
	require.NoError(t, err)
	assert.Empty(t, properties)
}

func TestConcurrentAddsBothPersist(t *testing.T) {
	f := newFavoritesFixture(t)
	addUC := NewAddToFavoritesUseCase(f.users, f.favorites)
	idsUC := NewGetUserFavoriteIDsUseCase(f.users, f.favorites)

	var wg sync.WaitGroup
	for _, propertyID := range []int64{1, 2} {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			assert.NoError(t, addUC.Execute(context.Background(), f.clerkID, id))
		}(propertyID)
	}
	wg.Wait()

	ids, err := idsUC.Execute(context.Background(), f.clerkID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2}, ids)
}
