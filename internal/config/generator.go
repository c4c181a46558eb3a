package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vancomm/officegen/internal/generator"
	"github.com/vancomm/officegen/internal/tileset"
)

type Generator struct {
	generator.Config
	// AssetsDir holds the tile images; rendering is disabled when empty.
	AssetsDir string
}

// NewGenerator reads the OFFICEGEN_* variables. All of them are optional.
func NewGenerator() (*Generator, error) {
	cfg := &Generator{}

	if path, ok := os.LookupEnv("OFFICEGEN_TILESET"); ok && path != "" {
		ts, err := tileset.Load(path)
		if err != nil {
			return nil, fmt.Errorf("unable to load OFFICEGEN_TILESET: %w", err)
		}
		cfg.Tileset = ts
	}

	cfg.AssetsDir = os.Getenv("OFFICEGEN_ASSETS")

	for _, v := range []struct {
		name string
		dst  *int
	}{
		{"OFFICEGEN_MAX_SIZE", &cfg.MaxSize},
		{"OFFICEGEN_ATTEMPTS", &cfg.Attempts},
		{"OFFICEGEN_MAX_STEPS", &cfg.MaxSteps},
	} {
		s, ok := os.LookupEnv(v.name)
		if !ok || s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s must be a non-negative integer, got %q", v.name, s)
		}
		*v.dst = n
	}

	return cfg, nil
}
