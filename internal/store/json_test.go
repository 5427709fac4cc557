package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetValueGetValue(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	type weekPref struct {
		Week int    `json:"week"`
		Note string `json:"note"`
	}

	require.NoError(t, SetValue(ctx, s, "pinned", weekPref{Week: 28, Note: "release"}))

	raw, _, err := s.Get(ctx, "pinned")
	require.NoError(t, err)
	assert.JSONEq(t, `{"week":28,"note":"release"}`, raw)

	var got weekPref
	ok, err := GetValue(ctx, s, "pinned", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, weekPref{Week: 28, Note: "release"}, got)

	ok, err = GetValue(ctx, s, "missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetValue_NotJSON(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "raw", "not json"))

	var v any
	ok, err := GetValue(ctx, s, "raw", &v)
	assert.True(t, ok)
	assert.Error(t, err)
}

func TestUnset(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, SetValue(ctx, s, "k", 5))

	require.NoError(t, Unset(ctx, s, "k"))

	raw, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "null", raw)
}

func TestObjectFields(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	obj, err := GetObject(ctx, s, "settings")
	require.NoError(t, err)
	assert.Empty(t, obj)

	require.NoError(t, SetObjectField(ctx, s, "settings", "weekStart", "sunday"))
	require.NoError(t, SetObjectField(ctx, s, "settings", "showWeekends", true))

	obj, err = GetObject(ctx, s, "settings")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"weekStart": "sunday", "showWeekends": true}, obj)

	require.NoError(t, UnsetObjectField(ctx, s, "settings", "weekStart"))
	require.NoError(t, UnsetObjectField(ctx, s, "settings", "unknown"))

	obj, err = GetObject(ctx, s, "settings")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"showWeekends": true}, obj)
}

func TestGetObject_Null(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, Unset(ctx, s, "settings"))

	obj, err := GetObject(ctx, s, "settings")
	require.NoError(t, err)
	assert.NotNil(t, obj)
	assert.Empty(t, obj)
}
