package repository

import (
	"encoding/json"
	"fmt"

	"github.com/epeers/stockalert/internal/models"
)

// DecodeSettings merges a stored blob onto the defaults: fields missing from
// the blob keep their default value. A blob that does not parse or fails
// validation is reported as a *models.ConfigError.
func DecodeSettings(key string, raw []byte) (models.Settings, error) {
	settings := models.DefaultSettings()
	if len(raw) == 0 {
		return settings, nil
	}
	if err := json.Unmarshal(raw, &settings); err != nil {
		return models.DefaultSettings(), &models.ConfigError{Key: key, Err: err}
	}

	settings = settings.Normalized()
	if err := settings.Validate(); err != nil {
		return models.DefaultSettings(), &models.ConfigError{Key: key, Err: err}
	}
	return settings, nil
}

// EncodeSettings validates and serializes settings for storage.
func EncodeSettings(settings models.Settings) ([]byte, error) {
	settings = settings.Normalized()
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to store invalid settings: %w", err)
	}
	if settings.SelectedStocks == nil {
		settings.SelectedStocks = []string{}
	}
	return json.Marshal(settings)
}
