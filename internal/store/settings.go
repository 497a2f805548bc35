package store

// LoadSettings returns the stored settings record, or DefaultSettings when
// nothing usable is stored.
func (s *Store) LoadSettings() Settings {
	settings := DefaultSettings()
	if !s.loadJSON(KeySettings, &settings) {
		return DefaultSettings()
	}
	return settings
}

// SaveSettings overwrites the whole settings record.
func (s *Store) SaveSettings(settings Settings) error {
	return s.saveJSON(KeySettings, settings)
}
