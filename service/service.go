package service

import (
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type Service struct {
	mutex    sync.RWMutex
	views    map[string]*View
	defaults ViewOptions
}

// NewService keeps views in memory. defaults apply to views created without
// options.
func NewService(defaults ViewOptions) *Service {
	return &Service{
		views:    map[string]*View{},
		defaults: defaults,
	}
}

// CreateView registers a new view. An empty name gets a random one.
func (s *Service) CreateView(name string, options *ViewOptions) (*View, error) {
	if name == "" {
		name = uuid.NewString()
	}
	if options == nil {
		options = &s.defaults
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.views[name]; exists {
		return nil, ErrorViewAlreadyExists
	}

	view := newView(name, *options)
	s.views[name] = view
	log.Printf("view '%s' created", name)
	return view, nil
}

func (s *Service) GetView(name string) (*View, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	view, exists := s.views[name]
	if !exists {
		return nil, ErrorViewNotFound
	}
	return view, nil
}

// ListViews returns the views sorted by name.
func (s *Service) ListViews() []*View {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := make([]*View, 0, len(s.views))
	for _, view := range s.views {
		result = append(result, view)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

func (s *Service) DeleteView(name string) error {
	s.mutex.Lock()
	view, exists := s.views[name]
	delete(s.views, name)
	s.mutex.Unlock()

	if !exists {
		return ErrorViewNotFound
	}

	view.destroy()
	log.Printf("view '%s' dropped", name)
	return nil
}
