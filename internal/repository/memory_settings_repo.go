package repository

import (
	"context"
	"sync"

	"github.com/epeers/stockalert/internal/models"
)

// MemorySettingsRepository keeps the settings blob in process memory. It is
// used when no database is configured.
type MemorySettingsRepository struct {
	mu  sync.RWMutex
	raw []byte
}

// NewMemorySettingsRepository creates an empty repository; Load returns the
// defaults until something is saved.
func NewMemorySettingsRepository() *MemorySettingsRepository {
	return &MemorySettingsRepository{}
}

// NewMemorySettingsRepositoryWithBlob seeds the repository with a raw blob,
// as if it had been stored by an earlier version.
func NewMemorySettingsRepositoryWithBlob(raw []byte) *MemorySettingsRepository {
	return &MemorySettingsRepository{raw: append([]byte(nil), raw...)}
}

func (r *MemorySettingsRepository) Load(ctx context.Context) (models.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return DecodeSettings(models.SettingsKey, r.raw)
}

func (r *MemorySettingsRepository) Save(ctx context.Context, settings models.Settings) error {
	raw, err := EncodeSettings(settings)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.raw = raw
	r.mu.Unlock()
	return nil
}

// Raw returns the stored blob.
func (r *MemorySettingsRepository) Raw() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]byte(nil), r.raw...)
}
