// Package course loads the configured golf courses from a TOML file.
package course

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/BurntSushi/toml"

	"teesheet/internal/teesheet"
)

type fileConfig struct {
	Default string                  `toml:"default"`
	Courses []teesheet.CourseConfig `toml:"course"`
}

// Catalog resolves course names to their tee sheet configuration.
type Catalog struct {
	def     teesheet.CourseConfig
	courses map[string]teesheet.CourseConfig
}

// NewCatalog builds a catalog from already-parsed courses. The first entry is
// the default; an empty list falls back to teesheet.DefaultCourse.
func NewCatalog(courses ...teesheet.CourseConfig) (*Catalog, error) {
	if len(courses) == 0 {
		courses = []teesheet.CourseConfig{teesheet.DefaultCourse}
	}

	c := &Catalog{
		def:     courses[0],
		courses: make(map[string]teesheet.CourseConfig, len(courses)),
	}
	for _, cfg := range courses {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("course %q: %w", cfg.CourseName, err)
		}
		if _, dup := c.courses[cfg.CourseName]; dup {
			return nil, fmt.Errorf("%w: course %q listed twice", teesheet.ErrInvalidConfiguration, cfg.CourseName)
		}
		c.courses[cfg.CourseName] = cfg
	}
	return c, nil
}

// Load reads the catalog from path. A missing file is not an error: the
// catalog then holds only the built-in default course.
func Load(path string) (*Catalog, error) {
	var fc fileConfig
	_, err := toml.DecodeFile(path, &fc)
	if errors.Is(err, fs.ErrNotExist) {
		return NewCatalog()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode course file %s: %w", path, err)
	}

	if fc.Default != "" {
		for i, cfg := range fc.Courses {
			if cfg.CourseName == fc.Default {
				fc.Courses[0], fc.Courses[i] = fc.Courses[i], fc.Courses[0]
				break
			}
		}
	}
	return NewCatalog(fc.Courses...)
}

// Default returns the course used when a request names none.
func (c *Catalog) Default() teesheet.CourseConfig {
	return c.def
}

// Lookup returns the configuration for name. Unknown names get the default
// course's hours and prices under the requested name; an empty name gets the
// default course.
func (c *Catalog) Lookup(name string) teesheet.CourseConfig {
	if cfg, ok := c.courses[name]; ok {
		return cfg
	}
	return c.def.WithName(name)
}

// Known reports whether name is an explicitly configured course.
func (c *Catalog) Known(name string) bool {
	_, ok := c.courses[name]
	return ok
}

// List returns all configured courses, default first, the rest by name.
func (c *Catalog) List() []teesheet.CourseConfig {
	out := make([]teesheet.CourseConfig, 0, len(c.courses))
	for name, cfg := range c.courses {
		if name != c.def.CourseName {
			out = append(out, cfg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseName < out[j].CourseName })
	return append([]teesheet.CourseConfig{c.def}, out...)
}
