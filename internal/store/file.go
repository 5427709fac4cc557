package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// FileStore keeps all values in one JSON document on disk.
// The file is read on first access and rewritten after every change.
type FileStore struct {
	path   string
	logger *zap.Logger

	mu     sync.Mutex
	values map[string]string
}

// NewFileStore creates a store backed by the JSON file at path
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

// Path returns the location of the backing file
func (fs *FileStore) Path() string {
	return fs.path
}

// load reads the document once. Callers hold fs.mu.
func (fs *FileStore) load() error {
	if fs.values != nil {
		return nil
	}

	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist yet - will be created on first save
			fs.values = make(map[string]string)
			return nil
		}
		return fmt.Errorf("failed to read store file: %w", err)
	}

	values := make(map[string]string)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("failed to parse store file: %w", err)
		}
	}

	fs.values = values
	fs.logger.Debug("Preferences loaded",
		zap.String("path", fs.path),
		zap.Int("keys", len(values)))

	return nil
}

// save writes the document. Callers hold fs.mu.
func (fs *FileStore) save() error {
	data, err := json.MarshalIndent(fs.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	if dir := filepath.Dir(fs.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	if err := os.WriteFile(fs.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}

	fs.logger.Debug("Preferences saved",
		zap.String("path", fs.path),
		zap.Int("keys", len(fs.values)))

	return nil
}

func (fs *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.load(); err != nil {
		return "", false, err
	}
	v, ok := fs.values[key]
	return v, ok, nil
}

func (fs *FileStore) Set(_ context.Context, key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.load(); err != nil {
		return err
	}
	fs.values[key] = value
	return fs.save()
}

func (fs *FileStore) Remove(_ context.Context, key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.load(); err != nil {
		return err
	}
	if _, ok := fs.values[key]; !ok {
		return nil
	}
	delete(fs.values, key)
	return fs.save()
}

func (fs *FileStore) Close() error {
	return nil
}
