package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_SetQueryNotifies(t *testing.T) {
	s := NewState()
	var got []string
	unsubscribe, err := s.Subscribe(func(q string) { got = append(got, q) })
	require.NoError(t, err)

	require.NoError(t, s.SetQuery("keter"))
	require.NoError(t, s.SetQuery("keter"))
	require.NoError(t, s.SetQuery(""))

	q, err := s.Query()
	require.NoError(t, err)
	assert.Empty(t, q)
	assert.Equal(t, []string{"keter", ""}, got, "unchanged value does not notify")

	unsubscribe()
	require.NoError(t, s.SetQuery("safe"))
	assert.Len(t, got, 2)
}

func TestState_NilFailsLoudly(t *testing.T) {
	var s *State

	_, err := s.Query()
	assert.ErrorIs(t, err, ErrNotAttached)
	assert.ErrorIs(t, s.SetQuery("x"), ErrNotAttached)
	_, err = s.Subscribe(func(string) {})
	assert.True(t, IsNotAttached(err))

	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestFromContext(t *testing.T) {
	_, err := FromContext(context.Background())
	require.ErrorIs(t, err, ErrNotAttached)

	_, err = FromContext(WithState(context.Background(), nil))
	require.ErrorIs(t, err, ErrNotAttached)

	s := NewState()
	got, err := FromContext(WithState(context.Background(), s))
	require.NoError(t, err)
	assert.Same(t, s, got)
}
