package memory_adapter

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"home-finder-service/internal/core/domain"
)

// UserRepositoryAdapter is an in-process UserRepositoryPort used by the
// memory store driver.
type UserRepositoryAdapter struct {
	mu     sync.RWMutex
	users  map[int64]domain.User
	nextID int64
}

func NewUserRepositoryAdapter() *UserRepositoryAdapter {
	return &UserRepositoryAdapter{
		users:  make(map[int64]domain.User),
		nextID: 1,
	}
}

func (a *UserRepositoryAdapter) Create(_ context.Context, user domain.NewUser) (*domain.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, existing := range a.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return nil, domain.ErrEmailInUse
		}
		if existing.ClerkID == user.ClerkID {
			return nil, domain.ErrClerkIDInUse
		}
	}

	created := domain.User{
		ID:        a.nextID,
		ClerkID:   user.ClerkID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: time.Now().UTC(),
	}
	a.users[created.ID] = created
	a.nextID++
	return &created, nil
}

func (a *UserRepositoryAdapter) FindByID(_ context.Context, id int64) (*domain.User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	u, ok := a.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (a *UserRepositoryAdapter) FindByClerkID(_ context.Context, clerkID string) (*domain.User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, u := range a.users {
		if u.ClerkID == clerkID {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (a *UserRepositoryAdapter) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, u := range a.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (a *UserRepositoryAdapter) List(_ context.Context, filters domain.UserFilters, limit, offset int) ([]domain.User, int, error) {
	a.mu.RLock()
	matched := make([]domain.User, 0, len(a.users))
	for _, u := range a.users {
		if filters.Email != "" && !strings.EqualFold(u.Email, filters.Email) {
			continue
		}
		if filters.FirstName != "" && !strings.Contains(strings.ToLower(u.FirstName), strings.ToLower(filters.FirstName)) {
			continue
		}
		if filters.LastName != "" && !strings.Contains(strings.ToLower(u.LastName), strings.ToLower(filters.LastName)) {
			continue
		}
		matched = append(matched, u)
	}
	a.mu.RUnlock()

	sortUsers(matched, filters.SortBy, filters.SortOrder)

	total := len(matched)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	page := make([]domain.User, end-start)
	copy(page, matched[start:end])
	return page, total, nil
}

func sortUsers(users []domain.User, sortBy, sortOrder string) {
	var less func(a, b domain.User) bool
	switch sortBy {
	case domain.UserSortByFirstName:
		less = func(a, b domain.User) bool { return a.FirstName < b.FirstName }
	case domain.UserSortByLastName:
		less = func(a, b domain.User) bool { return a.LastName < b.LastName }
	case domain.UserSortByEmail:
		less = func(a, b domain.User) bool { return a.Email < b.Email }
	default: // created_at, or unset
		less = func(a, b domain.User) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}

	// An unsorted listing defaults to newest first; an explicit
	// sortOrder always wins, matching the SQL order by.
	if sortOrder == domain.SortDesc || sortBy == "" && sortOrder == "" {
		base := less
		less = func(a, b domain.User) bool { return base(b, a) }
	}

	sort.SliceStable(users, func(i, j int) bool {
		if less(users[i], users[j]) {
			return true
		}
		if less(users[j], users[i]) {
			return false
		}
		return users[i].ID < users[j].ID
	})
}

func (a *UserRepositoryAdapter) Update(_ context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	u, ok := a.users[id]
	if !ok {
		return nil, nil
	}

	if update.Email != nil {
		for otherID, other := range a.users {
			if otherID != id && strings.EqualFold(other.Email, *update.Email) {
				return nil, domain.ErrEmailInUse
			}
		}
		u.Email = *update.Email
	}
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}

	a.users[id] = u
	return &u, nil
}

func (a *UserRepositoryAdapter) Delete(_ context.Context, id int64) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.users[id]; !ok {
		return false, nil
	}
	delete(a.users, id)
	return true, nil
}
