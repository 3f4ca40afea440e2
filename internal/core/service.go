package core

import (
	"fmt"
	"time"
)

// DefaultQueryTimeout bounds a snapshot load when ServiceConfig leaves it zero.
const DefaultQueryTimeout = 10 * time.Second

// ServiceConfig tunes a Service.
type ServiceConfig struct {
	// ReadOnly keeps row actions visible but disabled on every screen.
	ReadOnly bool

	// MaxRows caps one snapshot; 0 means no cap.
	MaxRows int

	QueryTimeout time.Duration
}

// Service connects registered screens to a RowSource and builds view-engine
// tables for them. It has no UI dependencies; the web server, the terminal
// browser and the CLI all go through it.
type Service struct {
	source RowSource
	cfg    ServiceConfig
}

// NewService creates a Service reading from source.
func NewService(source RowSource, cfg ServiceConfig) *Service {
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = DefaultQueryTimeout
	}
	return &Service{source: source, cfg: cfg}
}

// ReadOnly reports whether row actions are globally disabled.
func (s *Service) ReadOnly() bool {
	return s.cfg.ReadOnly
}

// ListScreens returns every registered screen.
func (s *Service) ListScreens() []ScreenInfo {
	defs := All()
	infos := make([]ScreenInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// ListScreensByGroup returns screens keyed by navigation group.
func (s *Service) ListScreensByGroup() map[string][]ScreenInfo {
	result := make(map[string][]ScreenInfo)
	for _, group := range Groups() {
		for _, def := range ByGroup(group) {
			result[group] = append(result[group], def.Info)
		}
	}
	return result
}

// Screen returns the definition for key, or an error wrapping ErrUnknownScreen.
func (s *Service) Screen(key string) (ScreenDefinition, error) {
	def, ok := Get(key)
	if !ok {
		return ScreenDefinition{}, fmt.Errorf("screen %q: %w", key, ErrUnknownScreen)
	}
	return def, nil
}
