package memory_adapter

import (
	"context"
	"sort"
	"sync"
	"time"
)

type favoriteEntry struct {
	propertyID int64
	addedAt    time.Time
	seq        int64
}

// FavoritesRepositoryAdapter is an in-process FavoritesRepositoryPort
// used by the memory store driver. Writes lock per call, so two
// concurrent adds for the same user both land.
type FavoritesRepositoryAdapter struct {
	mu        sync.RWMutex
	favorites map[int64]map[int64]favoriteEntry
	seq       int64
}

func NewFavoritesRepositoryAdapter() *FavoritesRepositoryAdapter {
	return &FavoritesRepositoryAdapter{
		favorites: make(map[int64]map[int64]favoriteEntry),
	}
}

func (a *FavoritesRepositoryAdapter) Add(_ context.Context, userID, propertyID int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	set, ok := a.favorites[userID]
	if !ok {
		set = make(map[int64]favoriteEntry)
		a.favorites[userID] = set
	}
	if _, exists := set[propertyID]; exists {
		return nil
	}

	a.seq++
	set[propertyID] = favoriteEntry{
		propertyID: propertyID,
		addedAt:    time.Now().UTC(),
		seq:        a.seq,
	}
	return nil
}

func (a *FavoritesRepositoryAdapter) Remove(_ context.Context, userID, propertyID int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if set, ok := a.favorites[userID]; ok {
		delete(set, propertyID)
	}
	return nil
}

func (a *FavoritesRepositoryAdapter) Exists(_ context.Context, userID, propertyID int64) (bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	set, ok := a.favorites[userID]
	if !ok {
		return false, nil
	}
	_, exists := set[propertyID]
	return exists, nil
}

func (a *FavoritesRepositoryAdapter) FindIDsByUser(_ context.Context, userID int64) ([]int64, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	set, ok := a.favorites[userID]
	if !ok {
		return []int64{}, nil
	}

	entries := make([]favoriteEntry, 0, len(set))
	for _, e := range set {
		entries = append(entries, e)
	}
	// newest addition first
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq > entries[j].seq })

	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.propertyID
	}
	return ids, nil
}

func (a *FavoritesRepositoryAdapter) RemoveAllForUser(_ context.Context, userID int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.favorites, userID)
	return nil
}
