package user

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("missing email", func(t *testing.T) {
		store := newMemStore()
		_, err := NewService(store).Update(ctx, &UpdateRequest{Nombre: ptr("Ana")})
		assert.ErrorIs(t, err, ErrEmailRequired)
		assert.Zero(t, store.calls)
	})

	t.Run("unknown email", func(t *testing.T) {
		store := newMemStore()
		_, err := NewService(store).Update(ctx, &UpdateRequest{Email: "a@b.com", Nombre: ptr("Ana")})
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.Zero(t, store.calls)
	})

	t.Run("unknown email wins over empty update", func(t *testing.T) {
		_, err := NewService(newMemStore()).Update(ctx, &UpdateRequest{Email: "a@b.com"})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("no fields to update", func(t *testing.T) {
		store := newMemStore()
		store.put("42", map[string]string{"email": "a@b.com"})

		_, err := NewService(store).Update(ctx, &UpdateRequest{Email: "a@b.com", Nombre: ptr("")})
		assert.ErrorIs(t, err, ErrNoFields)
		assert.Zero(t, store.calls)
	})

	t.Run("updates the resolved id", func(t *testing.T) {
		store := newMemStore()
		store.put("42", map[string]string{"email": "a@b.com", "apellido": "Gómez"})

		updated, err := NewService(store).Update(ctx, &UpdateRequest{Email: "a@b.com", Nombre: ptr("Ana")})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"nombre": "Ana"}, updated)
		assert.Equal(t, "42", store.updatedID)
		assert.Equal(t, "Gómez", store.get("42")["apellido"], "omitted fields stay untouched")
	})

	t.Run("duplicate email updates the first match", func(t *testing.T) {
		store := newMemStore()
		store.put("7", map[string]string{"email": "dup@b.com"})
		store.put("3", map[string]string{"email": "dup@b.com"})

		_, err := NewService(store).Update(ctx, &UpdateRequest{Email: "dup@b.com", Celular: ptr("555")})
		require.NoError(t, err)
		assert.Equal(t, "7", store.updatedID)
		assert.Empty(t, store.get("3")["celular"])
	})

	t.Run("lookup failure is internal", func(t *testing.T) {
		boom := errors.New("index unavailable")
		store := newMemStore()
		store.findErr = boom

		_, err := NewService(store).Update(ctx, &UpdateRequest{Email: "a@b.com", Nombre: ptr("Ana")})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, KindInternal, KindOf(err))
	})

	t.Run("update failure is internal", func(t *testing.T) {
		boom := errors.New("write timeout")
		store := newMemStore()
		store.put("42", map[string]string{"email": "a@b.com"})
		store.updateErr = boom

		_, err := NewService(store).Update(ctx, &UpdateRequest{Email: "a@b.com", Nombre: ptr("Ana")})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, KindInternal, KindOf(err))
	})

	t.Run("record removed between lookup and update", func(t *testing.T) {
		store := newMemStore()
		store.put("42", map[string]string{"email": "a@b.com"})
		store.updateErr = ErrUserNotFound

		_, err := NewService(store).Update(ctx, &UpdateRequest{Email: "a@b.com", Nombre: ptr("Ana")})
		assert.Equal(t, KindNotFound, KindOf(err))
	})
}

func TestService_Update_LogsValidationDetail(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	_, err := NewService(newMemStore()).Update(context.Background(), &UpdateRequest{Nombre: ptr("Ana")})
	require.ErrorIs(t, err, ErrEmailRequired)

	assert.Contains(t, buf.String(), `"message":"Invalid update request"`)
	assert.Contains(t, buf.String(), `"Field":"email"`)
	assert.Contains(t, buf.String(), `"Error":"email is required"`)
}
