package commands

import (
	"fmt"

	"github.com/mobile-next/remotepad/config"
)

// SettingsListCommand returns every setting as "section.key" → value.
func SettingsListCommand(store *config.Store) *CommandResponse {
	values, err := store.Values()
	if err != nil {
		return NewErrorResponse(err)
	}

	settings := make(map[string]string, len(values))
	for _, kv := range values {
		settings[kv[0]] = kv[1]
	}

	return NewSuccessResponse(map[string]interface{}{
		"path":     store.Path(),
		"settings": settings,
	})
}

// SettingsSetCommand assigns one setting and saves the store. Values outside
// their range are clamped and the stored value is reported back.
func SettingsSetCommand(store *config.Store, name, value string) *CommandResponse {
	if _, err := store.Set(name, value); err != nil {
		return NewErrorResponse(err)
	}

	if err := store.Save(); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to save settings: %w", err))
	}

	values, err := store.Values()
	if err != nil {
		return NewErrorResponse(err)
	}

	stored := ""
	for _, kv := range values {
		if kv[0] == name {
			stored = kv[1]
		}
	}

	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Set %s to %s", name, stored),
		"name":    name,
		"value":   stored,
	})
}

// SettingsResetCommand restores the defaults and saves them.
func SettingsResetCommand(store *config.Store) *CommandResponse {
	store.Update(func(s *config.Settings) {
		*s = config.Defaults()
	})

	if err := store.Save(); err != nil {
		return NewErrorResponse(fmt.Errorf("failed to save settings: %w", err))
	}

	return NewSuccessResponse(map[string]interface{}{
		"message": fmt.Sprintf("Settings reset in %s", store.Path()),
	})
}
