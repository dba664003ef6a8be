// Package app wires the deck items to a unit system. It owns the application
// configuration and logger, resolves the configured unit registry and runs the
// normalize and list operations behind the CLI, decoupled from any specific
// entrypoint.
package app
