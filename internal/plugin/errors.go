package plugin

import "errors"

// Plugin registry errors.
var (
	// ErrPluginNotFound is returned when a plugin name is not registered.
	ErrPluginNotFound = errors.New("plugin not found")

	// ErrAlreadyRegistered is returned when a plugin name is registered twice.
	ErrAlreadyRegistered = errors.New("plugin is already registered")

	// ErrInvalidPlugin is returned when descriptor validation fails.
	ErrInvalidPlugin = errors.New("invalid plugin")
)
