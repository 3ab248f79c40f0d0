package dataaccess

// Settings returns a copy of the options of a settings category.
func (s *Store) Settings(category string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.settings[category]
	c := make(map[string]any, len(values))
	for k, v := range values {
		c[k] = v
	}
	return c
}

// SettingString returns a string option, or "" when it is unset or not a string.
func (s *Store) SettingString(category, key string) string {
	v, _ := s.Settings(category)[key].(string)
	return v
}

// UpdateSettings merges values into a category, replacing only the keys given, and returns the result.
func (s *Store) UpdateSettings(category string, values map[string]any) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("update_settings")

	current, ok := s.settings[category]
	if !ok || current == nil {
		current = make(map[string]any, len(values))
		s.settings[category] = current
	}
	for k, v := range values {
		current[k] = v
	}

	s.persist(DocumentSettings)

	c := make(map[string]any, len(current))
	for k, v := range current {
		c[k] = v
	}
	return c
}
