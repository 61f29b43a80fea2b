package playlist

import (
	"sync"

	"github.com/dphoyes/phototimeshift/playlist/common"
	"github.com/dphoyes/phototimeshift/playlist/mpls"
)

// Factory implements the PlaylistManager interface and provides a thread-safe
// registry of handler factories, keyed by playlist format. It registers
// factory functions rather than handler instances so every file gets a fresh
// handler and concurrent callers stay isolated.
type Factory struct {
	handlers map[common.FormatType]func() common.PlaylistHandler
	mu       sync.RWMutex // Protects the handlers map for concurrent access
}

// NewFactory creates a new playlist factory with the built-in MPLS handler
// registered under its default configuration.
func NewFactory() *Factory {
	return NewFactoryWithConfig(nil)
}

// NewFactoryWithConfig creates a new playlist factory whose built-in MPLS
// handler uses the given configuration.
func NewFactoryWithConfig(config *mpls.Config) *Factory {
	f := &Factory{
		handlers: make(map[common.FormatType]func() common.PlaylistHandler),
	}

	_ = f.RegisterHandlerFactory(common.FormatTypeMPLS, func() common.PlaylistHandler {
		return mpls.NewHandlerWithConfig(config)
	})

	return f
}

// CreateHandler creates a fresh handler for the given playlist format
func (f *Factory) CreateHandler(format common.FormatType) (common.PlaylistHandler, error) {
	f.mu.RLock()
	factory, exists := f.handlers[format]
	f.mu.RUnlock()

	if !exists {
		return nil, common.NewPlaylistError(format, "",
			common.ErrCodeUnsupported, "no handler registered for format", nil)
	}

	return factory(), nil
}

// DetectAndCreate finds the first registered handler that accepts path and
// returns a fresh instance of it.
func (f *Factory) DetectAndCreate(path string) (common.PlaylistHandler, error) {
	f.mu.RLock()
	factories := make([]func() common.PlaylistHandler, 0, len(f.handlers))
	for _, factory := range f.handlers {
		factories = append(factories, factory)
	}
	f.mu.RUnlock()

	for _, factory := range factories {
		handler := factory()
		if handler.CanHandle(path) {
			return handler, nil
		}
	}

	return nil, common.NewPlaylistError(common.FormatTypeUnsupported, path,
		common.ErrCodeUnsupported, "no handler accepts this file", nil)
}

// RegisterHandlerFactory registers a factory for a playlist format,
// replacing any previous registration for that format.
func (f *Factory) RegisterHandlerFactory(format common.FormatType, factory func() common.PlaylistHandler) error {
	if factory == nil {
		return common.NewPlaylistError(format, "",
			common.ErrCodeUnsupported, "handler factory must not be nil", nil)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[format] = factory

	return nil
}

// SupportedTypes returns the registered playlist formats
func (f *Factory) SupportedTypes() []common.FormatType {
	f.mu.RLock()
	defer f.mu.RUnlock()

	types := make([]common.FormatType, 0, len(f.handlers))
	for format := range f.handlers {
		types = append(types, format)
	}
	return types
}
