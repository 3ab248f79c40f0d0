package dataaccess

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
)

// TemplateDal is the custom template half of the store.
type TemplateDal interface {
	SaveTemplate(t *entities.Template) error
	GetTemplate(name string) (*entities.Template, error)
	DeleteTemplate(name string) error
	ListTemplates() []*entities.Template
}

var _ TemplateDal = (*Store)(nil)

// templateKey normalises a template name into its document key.
func templateKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *Store) SaveTemplate(t *entities.Template) error {
	if t == nil || templateKey(t.Name) == "" {
		return fmt.Errorf("template name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("save_template")

	key := templateKey(t.Name)
	if _, ok := s.templates.CustomTemplates[key]; ok {
		return fmt.Errorf("template %q: %w", t.Name, ErrDuplicate)
	}

	c := t.Copy()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	s.templates.CustomTemplates[key] = c

	s.persist(DocumentTemplates)
	return nil
}

func (s *Store) GetTemplate(name string) (*entities.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("get_template")

	t, ok := s.templates.CustomTemplates[templateKey(name)]
	if !ok {
		return nil, fmt.Errorf("template %q: %w", name, ErrNotFound)
	}
	return t.Copy(), nil
}

func (s *Store) DeleteTemplate(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count("delete_template")

	key := templateKey(name)
	if _, ok := s.templates.CustomTemplates[key]; !ok {
		return fmt.Errorf("template %q: %w", name, ErrNotFound)
	}
	delete(s.templates.CustomTemplates, key)

	s.persist(DocumentTemplates)
	return nil
}

func (s *Store) ListTemplates() []*entities.Template {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]*entities.Template, 0, len(s.templates.CustomTemplates))
	for _, t := range s.templates.CustomTemplates {
		list = append(list, t.Copy())
	}
	sort.Slice(list, func(i, j int) bool {
		return templateKey(list[i].Name) < templateKey(list[j].Name)
	})
	return list
}
