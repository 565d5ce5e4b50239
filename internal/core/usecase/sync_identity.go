package usecase

import (
	"context"
	"fmt"

	"home-finder-service/internal/contextkeys"
	"home-finder-service/internal/core/domain"
	"home-finder-service/internal/core/port"
)

// SyncIdentityUseCase mirrors identity provider webhook events into the
// local user store. Every event type is an idempotent upsert or delete
// keyed by the external clerk id, so out-of-order and replayed
// deliveries converge: a created event may update an already known
// user, an updated event may create a missing one, and deleting an
// unknown user is a no-op.
type SyncIdentityUseCase struct {
	users     port.UserRepositoryPort
	favorites port.FavoritesRepositoryPort
}

func NewSyncIdentityUseCase(users port.UserRepositoryPort, favorites port.FavoritesRepositoryPort) *SyncIdentityUseCase {
	return &SyncIdentityUseCase{users: users, favorites: favorites}
}

func (uc *SyncIdentityUseCase) Execute(ctx context.Context, event domain.IdentityEvent) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "SyncIdentity",
		"event_type": event.Type,
		"clerk_id":   event.ClerkID,
	})

	ucLogger.Info("Use case started", nil)

	if event.ClerkID == "" {
		ucLogger.Warn("Identity event carries no clerk id.", nil)
		return fmt.Errorf("%w: identity event without clerk id", domain.ErrInvalidInput)
	}

	var err error
	switch event.Type {
	case domain.IdentityUserCreated, domain.IdentityUserUpdated:
		err = uc.upsert(ctx, ucLogger, event)
	case domain.IdentityUserDeleted:
		err = uc.remove(ctx, ucLogger, event.ClerkID)
	default:
		ucLogger.Warn("Unknown identity event type.", nil)
		return fmt.Errorf("%w: unknown identity event type '%s'", domain.ErrInvalidInput, event.Type)
	}
	if err != nil {
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

func (uc *SyncIdentityUseCase) upsert(ctx context.Context, ucLogger port.LoggerPort, event domain.IdentityEvent) error {
	existing, err := uc.users.FindByClerkID(ctx, event.ClerkID)
	if err != nil {
		ucLogger.Error("Failed to look up user by clerk id", err, nil)
		return err
	}

	if existing == nil {
		if !domain.IsValidEmail(event.Email) {
			ucLogger.Warn("Rejected identity event with invalid email.", nil)
			return fmt.Errorf("%w: email '%s' is not valid", domain.ErrInvalidInput, event.Email)
		}
		created, err := uc.users.Create(ctx, domain.NewUser{
			ClerkID:   event.ClerkID,
			Email:     event.Email,
			FirstName: event.FirstName,
			LastName:  event.LastName,
		})
		if err != nil {
			ucLogger.Error("Failed to create user from identity event", err, nil)
			return err
		}
		ucLogger.Info("User created from identity event.", port.Fields{"user_id": created.ID})
		return nil
	}

	update := domain.UserUpdate{
		FirstName: &event.FirstName,
		LastName:  &event.LastName,
	}
	if event.Email != "" {
		if !domain.IsValidEmail(event.Email) {
			ucLogger.Warn("Rejected identity event with invalid email.", nil)
			return fmt.Errorf("%w: email '%s' is not valid", domain.ErrInvalidInput, event.Email)
		}
		update.Email = &event.Email
	}

	if _, err := uc.users.Update(ctx, existing.ID, update); err != nil {
		ucLogger.Error("Failed to update user from identity event", err, nil)
		return err
	}
	ucLogger.Info("User updated from identity event.", port.Fields{"user_id": existing.ID})
	return nil
}

func (uc *SyncIdentityUseCase) remove(ctx context.Context, ucLogger port.LoggerPort, clerkID string) error {
	existing, err := uc.users.FindByClerkID(ctx, clerkID)
	if err != nil {
		ucLogger.Error("Failed to look up user by clerk id", err, nil)
		return err
	}
	if existing == nil {
		// Already gone or never synced. Deletion stays idempotent.
		ucLogger.Warn("Identity deletion for an unknown user, nothing to do.", nil)
		return nil
	}

	if err := uc.favorites.RemoveAllForUser(ctx, existing.ID); err != nil {
		ucLogger.Error("Failed to clear user favorites", err, nil)
		return fmt.Errorf("failed to clear user favorites: %w", err)
	}
	if _, err := uc.users.Delete(ctx, existing.ID); err != nil {
		ucLogger.Error("Failed to delete user from identity event", err, nil)
		return err
	}

	ucLogger.Info("User deleted from identity event.", port.Fields{"user_id": existing.ID})
	return nil
}
