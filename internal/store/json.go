package store

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
)

// SetValue stores v JSON-encoded under key
func SetValue(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return s.Set(ctx, key, string(data))
}

// GetValue decodes the JSON value of key into out and reports whether key
// was present. A value that is not JSON is an error.
func GetValue(ctx context.Context, s Store, key string, out any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return true, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return true, nil
}

// Unset stores JSON null under key, keeping the key itself
func Unset(ctx context.Context, s Store, key string) error {
	return s.Set(ctx, key, "null")
}

// GetObject returns the JSON object stored under objKey. A missing key or
// null value gives an empty map.
func GetObject(ctx context.Context, s Store, objKey string) (map[string]any, error) {
	obj := make(map[string]any)
	if _, err := GetValue(ctx, s, objKey, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		obj = make(map[string]any)
	}
	return obj, nil
}

// SetObjectField sets one field of the JSON object stored under objKey
func SetObjectField(ctx context.Context, s Store, objKey, field string, v any) error {
	obj, err := GetObject(ctx, s, objKey)
	if err != nil {
		return err
	}
	obj[field] = v
	return SetValue(ctx, s, objKey, obj)
}

// UnsetObjectField removes one field of the JSON object stored under objKey
func UnsetObjectField(ctx context.Context, s Store, objKey, field string) error {
	obj, err := GetObject(ctx, s, objKey)
	if err != nil {
		return err
	}
	delete(obj, field)
	return SetValue(ctx, s, objKey, obj)
}
