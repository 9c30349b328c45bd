package commands

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mobile-next/remotepad/config"
	"github.com/mobile-next/remotepad/devices"
	"github.com/mobile-next/remotepad/utils"
)

// CommandResponse represents a standardized response format for all commands
type CommandResponse struct {
	Status string      `json:"status" yaml:"status"`
	Data   interface{} `json:"data,omitempty" yaml:"data,omitempty"`
	Error  string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) *CommandResponse {
	return &CommandResponse{
		Status: "ok",
		Data:   data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(err error) *CommandResponse {
	return &CommandResponse{
		Status: "error",
		Error:  err.Error(),
	}
}

const surfaceCacheSize = 64

// surfaceCache keeps surfaces found by id so repeated one-shot commands do
// not re-enumerate the backend.
var surfaceCache, _ = lru.New[string, devices.Surface](surfaceCacheSize)

// shutdownHook collects cleanup for long-running commands. It is set once
// at startup via SetShutdownHook.
var shutdownHook *utils.ShutdownHook

// SetShutdownHook sets the hook long-running commands register cleanup with.
func SetShutdownHook(hook *utils.ShutdownHook) {
	shutdownHook = hook
}

func registerCleanup(name string, fn func() error) {
	if shutdownHook != nil {
		shutdownHook.Register(name, fn)
	}
}

// LoadSettings opens the settings store at path, or at the default location
// when path is empty.
func LoadSettings(path string) (*config.Store, error) {
	if path == "" {
		path = config.DefaultPath()
	}
	store, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("error loading settings: %w", err)
	}
	return store, nil
}

// OpenRegistry enumerates the configured backend once.
func OpenRegistry(ctx context.Context, s config.SurfaceSettings) (*devices.SurfaceRegistry, error) {
	provider, err := devices.NewProvider(s)
	if err != nil {
		return nil, err
	}

	registry := devices.NewSurfaceRegistry(provider)
	if _, err := registry.Refresh(ctx); err != nil {
		return nil, err
	}

	for _, surface := range registry.Surfaces() {
		surfaceCache.Add(surface.ID(), surface)
	}
	return registry, nil
}

// FindSurface finds a surface by id, using cache when possible
func FindSurface(ctx context.Context, s config.SurfaceSettings, surfaceID string) (devices.Surface, error) {
	if surfaceID == "" {
		return nil, fmt.Errorf("surface ID is required")
	}

	if surface, ok := surfaceCache.Get(surfaceID); ok {
		return surface, nil
	}

	registry, err := OpenRegistry(ctx, s)
	if err != nil {
		return nil, err
	}
	return registry.Get(surfaceID)
}

// FindSurfaceOrAutoSelect finds a surface by ID, or picks the target surface
// the engine would use when surfaceID is empty.
func FindSurfaceOrAutoSelect(ctx context.Context, s config.SurfaceSettings, surfaceID string) (devices.Surface, error) {
	if surfaceID != "" {
		return FindSurface(ctx, s, surfaceID)
	}

	registry, err := OpenRegistry(ctx, s)
	if err != nil {
		return nil, err
	}

	id, ok := registry.SelectTarget()
	if !ok {
		return nil, fmt.Errorf("no surfaces found")
	}
	return registry.Get(id)
}

// getSurfaceIDList returns a comma-separated list of surface IDs for error messages
func getSurfaceIDList(surfaces []devices.Surface) string {
	var ids []string
	for _, s := range surfaces {
		ids = append(ids, s.ID())
	}
	return fmt.Sprintf("[%s]", strings.Join(ids, ", "))
}
