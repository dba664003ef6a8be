package app

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/deckgo/internal/ctxlog"
	"github.com/specialistvlad/deckgo/internal/fsutil"
	"github.com/specialistvlad/deckgo/internal/units"
)

// loadRegistry returns the registry named by cfg.UnitSystem, taken from the
// files under cfg.UnitsPath when one is configured and from the built-ins
// otherwise.
func loadRegistry(ctx context.Context, cfg *Config) (*units.Registry, error) {
	logger := ctxlog.FromContext(ctx)

	if cfg.UnitsPath == "" {
		logger.Debug("Using built-in unit system.", "system", cfg.UnitSystem)
		return units.System(cfg.UnitSystem)
	}

	systems, err := loadUnitFiles(ctx, cfg.UnitsPath)
	if err != nil {
		return nil, err
	}
	if reg, ok := systems[cfg.UnitSystem]; ok {
		return reg, nil
	}

	// Unit files that do not define the requested system still allow the
	// built-ins to be selected by name.
	logger.Warn("Unit system not defined in units path, trying built-ins.", "system", cfg.UnitSystem, "path", cfg.UnitsPath)
	return units.System(cfg.UnitSystem)
}

// loadUnitFiles loads every unit_system block found in path, which may be a
// single file or a directory of .hcl files.
func loadUnitFiles(ctx context.Context, path string) (map[string]*units.Registry, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading unit systems...", "path", path)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to read units path: %w", err)
	}
	if len(files) == 0 {
		logger.Warn("No .hcl unit files found in path", "path", path)
	}

	systems := make(map[string]*units.Registry)
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read units file: %w", err)
		}
		loaded, err := units.LoadHCL(ctx, src, file)
		if err != nil {
			return nil, err
		}
		for name, reg := range loaded {
			if _, exists := systems[name]; exists {
				return nil, fmt.Errorf("%s: unit system '%s' already defined in another file", file, name)
			}
			systems[name] = reg
		}
	}

	logger.Debug("Unit systems loaded.", "files", len(files), "systems", len(systems))
	return systems, nil
}
