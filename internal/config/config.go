// Package config loads the CLI's database configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/marshallshelly/gravel/pkg/runtime"
)

// EnvPrefix prefixes environment overrides: GRAVEL_PASSWORD -> password.
const EnvPrefix = "GRAVEL_"

// DefaultFiles are searched in the working directory when no file is given.
var DefaultFiles = []string{"gravel.yaml", "gravel.yml"}

// keys lists the configuration keys a flag may set.
var keys = map[string]bool{
	"driver":     true,
	"host":       true,
	"port":       true,
	"user":       true,
	"password":   true,
	"db":         true,
	"charset":    true,
	"autocommit": true,
	"maxsize":    true,
	"minsize":    true,
}

// FindFile returns explicit when set, otherwise the first default file that exists.
func FindFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range DefaultFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load builds a runtime.Config.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// Only flags that were explicitly set override lower layers.
func Load(path string, flags *pflag.FlagSet) (*runtime.Config, error) {
	k := koanf.New(".")

	// 1. Defaults. Host and port depend on the driver and are filled in afterwards.
	if err := k.Load(confmap.Provider(map[string]any{
		"driver":     runtime.DefaultDriver,
		"charset":    runtime.DefaultCharset,
		"autocommit": true,
		"maxsize":    runtime.DefaultMaxSize,
		"minsize":    runtime.DefaultMinSize,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if used := FindFile(path); used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: GRAVEL_MAXSIZE -> maxsize
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || !keys[f.Name] {
				return "", nil
			}
			return f.Name, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg runtime.Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}
