package runtime

import (
	"fmt"

	"github.com/marshallshelly/gravel/pkg/dialect"
)

// Config represents database configuration.
type Config struct {
	Driver     string            `koanf:"driver"`
	Host       string            `koanf:"host"`
	Port       int               `koanf:"port"`
	User       string            `koanf:"user"`
	Password   string            `koanf:"password"`
	DB         string            `koanf:"db"`
	Charset    string            `koanf:"charset"`
	Autocommit *bool             `koanf:"autocommit"`
	MaxSize    int32             `koanf:"maxsize"`
	MinSize    *int32            `koanf:"minsize"` // nil means DefaultMinSize; 0 opens none up front
	Options    map[string]string `koanf:"options"` // extra driver parameters
}

const (
	DefaultDriver  = "mysql"
	DefaultHost    = "localhost"
	DefaultCharset = "utf8"
	DefaultMaxSize = 10
	DefaultMinSize = 1
)

// DefaultConfig returns a configuration with every optional key set to its default.
// User, Password and DB still have to be supplied.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every unset optional key.
func (c *Config) ApplyDefaults() {
	if c.Driver == "" {
		c.Driver = DefaultDriver
	}

	d, ok := dialect.Get(c.Driver)
	embedded := ok && d.Embedded

	if c.Host == "" && !embedded {
		c.Host = DefaultHost
	}
	if c.Port == 0 && ok && d.DefaultPort != 0 {
		c.Port = d.DefaultPort
	}
	if c.Charset == "" {
		c.Charset = DefaultCharset
	}
	if c.Autocommit == nil {
		on := true
		c.Autocommit = &on
	}
	if c.MaxSize == 0 {
		c.MaxSize = DefaultMaxSize
	}
	if c.MinSize == nil {
		n := int32(DefaultMinSize)
		c.MinSize = &n
	}
}

// PoolMinSize reports the effective number of connections opened at startup.
func (c *Config) PoolMinSize() int32 {
	if c.MinSize == nil {
		return DefaultMinSize
	}
	return *c.MinSize
}

// AutocommitEnabled reports the effective autocommit setting.
func (c *Config) AutocommitEnabled() bool {
	return c.Autocommit == nil || *c.Autocommit
}

// Validate checks required keys and value ranges. Call ApplyDefaults first.
func (c *Config) Validate() error {
	d, err := dialect.Lookup(c.Driver)
	if err != nil {
		return &ConfigurationError{Key: "driver", Message: err.Error()}
	}

	if !d.Embedded {
		if c.User == "" {
			return &ConfigurationError{Key: "user"}
		}
		if c.Password == "" {
			return &ConfigurationError{Key: "password"}
		}
	}
	if c.DB == "" {
		return &ConfigurationError{Key: "db"}
	}

	if c.MaxSize < 1 {
		return &ConfigurationError{Key: "maxsize", Message: fmt.Sprintf("must be at least 1, got %d", c.MaxSize)}
	}
	if minSize := c.PoolMinSize(); minSize < 0 || minSize > c.MaxSize {
		return &ConfigurationError{
			Key:     "minsize",
			Message: fmt.Sprintf("must be between 0 and maxsize (%d), got %d", c.MaxSize, minSize),
		}
	}
	if c.Port < 0 || c.Port > 65535 {
		return &ConfigurationError{Key: "port", Message: fmt.Sprintf("out of range: %d", c.Port)}
	}

	return nil
}

// Redacted returns a copy safe to log.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.Password != "" {
		cp.Password = "******"
	}
	return cp
}
