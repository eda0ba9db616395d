package slab

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"
)

// Config describes an Allocator. The zero value is usable: missing fields
// take the values of DefaultConfig.
type Config struct {
	// Classes is the size-class table. Nil means DefaultClasses.
	Classes []Class `yaml:"classes"`

	// Backend selects the built-in fallback. Ignored when Fallback is set.
	Backend Backend `yaml:"backend"`

	// Fallback, when set, serves every request the classes do not.
	Fallback Delegate `yaml:"-"`

	// Host, when it holds a supplied region at first use, provides the
	// arena's memory. Otherwise the arena is reserved from the OS.
	Host *HostRegion `yaml:"-"`

	// Logger receives construction and exhaustion events. Nil discards.
	Logger *slog.Logger `yaml:"-"`
}

// DefaultConfig returns the 16..1024 byte table on the system backend.
func DefaultConfig() Config {
	return Config{
		Classes: DefaultClasses(),
		Backend: BackendSystem,
	}
}

// Validate checks the class table and backend.
func (c Config) Validate() error {
	classes := c.Classes
	if classes == nil {
		classes = DefaultClasses()
	}
	if err := validateClasses(classes); err != nil {
		return err
	}
	if c.Fallback == nil {
		if _, err := c.Backend.Delegate(); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Classes == nil {
		c.Classes = DefaultClasses()
	} else {
		c.Classes = append([]Class(nil), c.Classes...)
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// LoadConfig reads a YAML document of the form
//
//	backend: pages
//	classes:
//	  - {size: 16, capacity: 1048576}
//	  - {size: 64, capacity: 4194304}
//
// Omitted keys keep DefaultConfig values. The result is validated.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	cfg.Classes = nil

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("slab: parse config: %w", err)
	}
	if cfg.Classes == nil {
		cfg.Classes = DefaultClasses()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
