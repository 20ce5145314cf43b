package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abarbosa/tarefitas/internal/constants"
	apperrors "github.com/abarbosa/tarefitas/internal/errors"
	"github.com/abarbosa/tarefitas/internal/models"
)

// KVStore persists JSON-serializable values under string keys, one file per
// key. It backs the settings, avatar, and onboarding blobs, which must
// round-trip across app restarts.
type KVStore struct {
	dir string
}

// NewKVStore returns a key-value store rooted at dir.
func NewKVStore(dir string) *KVStore {
	return &KVStore{dir: dir}
}

func (s *KVStore) keyPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Save JSON-encodes v and writes it under key.
func (s *KVStore) Save(key string, v any) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return apperrors.Storage("creating data directory", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}

	if err := os.WriteFile(s.keyPath(key), data, 0600); err != nil {
		return apperrors.Storage("writing "+key, err)
	}
	return nil
}

// Load reads the value stored under key into out. Returns ErrNotFound when
// the key has never been saved.
func (s *KVStore) Load(key string, out any) error {
	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.NotFound("key", key)
		}
		return apperrors.Storage("reading "+key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key. Missing keys are not an error.
func (s *KVStore) Delete(key string) error {
	if err := os.Remove(s.keyPath(key)); err != nil && !os.IsNotExist(err) {
		return apperrors.Storage("deleting "+key, err)
	}
	return nil
}

// Settings loads the persisted settings blob, falling back to defaults when
// it has never been saved.
func (s *KVStore) Settings() (models.Settings, error) {
	var settings models.Settings
	if err := s.Load(constants.KeySettings, &settings); err != nil {
		if apperrors.IsNotFound(err) {
			return models.DefaultSettings(), nil
		}
		return models.Settings{}, err
	}
	return settings, nil
}

// SaveSettings persists the settings blob.
func (s *KVStore) SaveSettings(settings models.Settings) error {
	return s.Save(constants.KeySettings, settings)
}

// AvatarURI loads the persisted avatar location; empty when unset.
func (s *KVStore) AvatarURI() (string, error) {
	var uri string
	if err := s.Load(constants.KeyAvatarURI, &uri); err != nil {
		if apperrors.IsNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return uri, nil
}

// SaveAvatarURI persists the avatar location.
func (s *KVStore) SaveAvatarURI(uri string) error {
	return s.Save(constants.KeyAvatarURI, uri)
}

// OnboardingDone reports whether onboarding has been completed.
func (s *KVStore) OnboardingDone() (bool, error) {
	var done bool
	if err := s.Load(constants.KeyOnboarding, &done); err != nil {
		if apperrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return done, nil
}

// SaveOnboardingDone persists the onboarding-complete flag.
func (s *KVStore) SaveOnboardingDone(done bool) error {
	return s.Save(constants.KeyOnboarding, done)
}
