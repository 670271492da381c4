package tag_format_handlers

import (
	"fmt"
	"sort"
	"strings"
)

// TagFormatRegistry holds all registered tag format handlers
type TagFormatRegistry struct {
	handlers map[string]TagFormatHandler
}

var (
	// defaultRegistry is the global registry singleton
	defaultRegistry *TagFormatRegistry
)

// init registers all built-in handlers at package init time
func init() {
	defaultRegistry = NewTagFormatRegistry()

	_ = defaultRegistry.Register(&XMLTagFormatHandler{})
	_ = defaultRegistry.Register(&JSONTagFormatHandler{})
}

// NewTagFormatRegistry creates a new registry instance
func NewTagFormatRegistry() *TagFormatRegistry {
	return &TagFormatRegistry{
		handlers: make(map[string]TagFormatHandler),
	}
}

// Register adds a handler to the registry
// Returns error if a handler for this format is already registered
func (r *TagFormatRegistry) Register(handler TagFormatHandler) error {
	format := strings.ToUpper(handler.GetFormat())
	if _, exists := r.handlers[format]; exists {
		return fmt.Errorf("handler for format %q already registered", format)
	}
	r.handlers[format] = handler
	return nil
}

// Get retrieves a handler by format, ignoring case
func (r *TagFormatRegistry) Get(format string) (TagFormatHandler, error) {
	handler, exists := r.handlers[strings.ToUpper(strings.TrimSpace(format))]
	if !exists {
		return nil, fmt.Errorf("unsupported tag format %q", format)
	}
	return handler, nil
}

// GetAllFormats returns the registered formats in sorted order
func (r *TagFormatRegistry) GetAllFormats() []string {
	formats := make([]string, 0, len(r.handlers))
	for format := range r.handlers {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

// GetHandler retrieves a handler from the default registry by format
func GetHandler(format string) (TagFormatHandler, error) {
	return defaultRegistry.Get(format)
}

// GetAllHandlerFormats returns all formats in the default registry
func GetAllHandlerFormats() []string {
	return defaultRegistry.GetAllFormats()
}

