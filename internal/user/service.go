package user

import (
	"context"
	"fmt"

	"cliente-go/internal/validation"

	"github.com/rs/zerolog/log"
)

// Store is the storage system behind the update flow.
type Store interface {
	// FindIDsByEmail returns the ids of all records whose email matches exactly.
	FindIDsByEmail(ctx context.Context, email string) ([]string, error)
	// UpdateFields applies patch to the record with the given id and returns
	// the new values of exactly the patched fields.
	UpdateFields(ctx context.Context, id string, patch Patch) (map[string]any, error)
}

type Service interface {
	Update(ctx context.Context, req *UpdateRequest) (map[string]any, error)
}

type service struct {
	store Store
}

func NewService(store Store) Service {
	return &service{store: store}
}

// Update resolves the user by email and applies the present optional fields.
func (s *service) Update(ctx context.Context, req *UpdateRequest) (map[string]any, error) {
	if err := validation.Validate(req); err != nil {
		log.Warn().
			Interface("errors", validation.FormatError(err)).
			Msg("Invalid update request")
		return nil, ErrEmailRequired
	}

	ids, err := s.store.FindIDsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("looking up user by email: %w", err)
	}
	if len(ids) == 0 {
		return nil, ErrUserNotFound
	}
	if len(ids) > 1 {
		log.Warn().
			Str("email", req.Email).
			Int("matches", len(ids)).
			Str("user_id", ids[0]).
			Msg("Email matches several users, updating the first")
	}
	id := ids[0]

	patch := NewPatch(req)
	if patch.Empty() {
		return nil, ErrNoFields
	}

	updated, err := s.store.UpdateFields(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("updating user %s: %w", id, err)
	}

	log.Info().
		Str("user_id", id).
		Strs("fields", patch.FieldNames()).
		Msg("User updated")
	return updated, nil
}
