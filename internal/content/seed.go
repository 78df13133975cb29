package content

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedFile is a YAML document mapping resource names to item lists.
type SeedFile map[string][]map[string]any

// LoadSeed reads and validates a seed file.
func LoadSeed(path string) (SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for name := range seed {
		if _, err := ParseResource(name); err != nil {
			return nil, err
		}
	}
	return seed, nil
}

// Count returns the number of items in the seed.
func (f SeedFile) Count() int {
	n := 0
	for _, items := range f {
		n += len(items)
	}
	return n
}

// Seed creates every item of f, resource by resource in display order.
// progress, when not nil, is called after each created item.
func (s *Service) Seed(ctx context.Context, f SeedFile, progress func(Resource)) (int, error) {
	created := 0
	for _, r := range Resources {
		for _, fields := range f[string(r)] {
			if _, err := s.Create(ctx, string(r), fields); err != nil {
				return created, fmt.Errorf("seed %s: %w", r, err)
			}
			created++
			if progress != nil {
				progress(r)
			}
		}
	}
	return created, nil
}
