// Package config loads the knock server settings from a YAML file, KNOCK_
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "knock"
	// EnvPrefix prefixes every environment override, e.g. KNOCK_SERVER_PORT.
	EnvPrefix = "KNOCK"
)

// Config holds every setting of the knock server. Unset server_port,
// access_port_list and encryption_key are asked for in the form.
type Config struct {
	Listen          string `mapstructure:"listen" yaml:"listen" validate:"required"`
	PathApplication string `mapstructure:"path_application" yaml:"path_application" validate:"required,startswith=/"`
	UseHTTPSOnly    bool   `mapstructure:"use_https_only" yaml:"use_https_only"`
	Verbose         bool   `mapstructure:"verbose" yaml:"verbose"`

	// TrustedProxy takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable it only behind a reverse proxy that overwrites those
	// headers, as the address seeds the source IP of the form.
	TrustedProxy bool `mapstructure:"trusted_proxy" yaml:"trusted_proxy"`

	// TemplatesDir holds a replacement templates/page.tmpl bundle.
	TemplatesDir string `mapstructure:"templates_dir" yaml:"templates_dir,omitempty"`

	FwknopCLI      string `mapstructure:"fwknop_cli" yaml:"fwknop_cli" validate:"required"`
	EncryptionKey  string `mapstructure:"encryption_key" yaml:"encryption_key"`
	ServerPort     int    `mapstructure:"server_port" yaml:"server_port" validate:"gte=0,lte=65535"`
	AccessPortList string `mapstructure:"access_port_list" yaml:"access_port_list"`

	// Destination is a fixed ';' separated host list. When empty, the
	// Destinations list is offered as a dropdown, and when both are empty the
	// destination is typed in.
	Destination  string   `mapstructure:"destination" yaml:"destination"`
	Destinations []string `mapstructure:"destinations" yaml:"destinations" validate:"dive,required"`

	TmpDir string `mapstructure:"tmp_dir" yaml:"tmp_dir" validate:"required"`

	Theme ThemeConfig `mapstructure:"theme" yaml:"theme"`
	Log   LogConfig   `mapstructure:"log" yaml:"log"`
}

// ThemeConfig selects the page theme.
type ThemeConfig struct {
	Name        string                       `mapstructure:"name" yaml:"name"`
	Variant     string                       `mapstructure:"variant" yaml:"variant"`
	Tokens      map[string]string            `mapstructure:"tokens" yaml:"tokens,omitempty"`
	Variants    map[string]map[string]string `mapstructure:"variants" yaml:"variants,omitempty"`
	AssetPrefix string                       `mapstructure:"asset_prefix" yaml:"asset_prefix"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=json console"`
}

// LoadOptions control where Load looks for the config file.
type LoadOptions struct {
	// ConfigFilePath is used exclusively when set.
	ConfigFilePath string
	// SearchPaths are tried in order for knock.yaml when no path is given.
	SearchPaths []string
}

// DefaultSearchPaths are the directories searched for knock.yaml.
func DefaultSearchPaths() []string {
	return []string{".", "/etc/go-knock"}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Listen:          ":8080",
		PathApplication: "/knock",
		UseHTTPSOnly:    true,
		FwknopCLI:       "/usr/bin/fwknop",
		ServerPort:      62201,
		AccessPortList:  "tcp/22",
		TmpDir:          filepath.Join(os.TempDir(), "go-knock"),
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load resolves the configuration and validates it.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFilePath != "" {
		v.SetConfigFile(opts.ConfigFilePath)
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType("yaml")
		paths := opts.SearchPaths
		if len(paths) == 0 {
			paths = DefaultSearchPaths()
		}
		for _, path := range paths {
			v.AddConfigPath(path)
		}
	}

	resolvedPath := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFilePath != "" || !errors.As(err, &notFound) {
			return nil, "", fmt.Errorf("config: read %s: %w", describePath(opts.ConfigFilePath), err)
		}
	} else {
		resolvedPath = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("config: decode: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, resolvedPath, nil
}

func setDefaults(v *viper.Viper, defaults Config) {
	v.SetDefault("listen", defaults.Listen)
	v.SetDefault("path_application", defaults.PathApplication)
	v.SetDefault("use_https_only", defaults.UseHTTPSOnly)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("trusted_proxy", defaults.TrustedProxy)
	v.SetDefault("templates_dir", defaults.TemplatesDir)
	v.SetDefault("fwknop_cli", defaults.FwknopCLI)
	v.SetDefault("encryption_key", defaults.EncryptionKey)
	v.SetDefault("server_port", defaults.ServerPort)
	v.SetDefault("access_port_list", defaults.AccessPortList)
	v.SetDefault("destination", defaults.Destination)
	v.SetDefault("destinations", defaults.Destinations)
	v.SetDefault("tmp_dir", defaults.TmpDir)
	v.SetDefault("theme.name", defaults.Theme.Name)
	v.SetDefault("theme.variant", defaults.Theme.Variant)
	v.SetDefault("theme.asset_prefix", defaults.Theme.AssetPrefix)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
}

func describePath(path string) string {
	if path == "" {
		return ConfigFileName + ".yaml"
	}
	return path
}

func (c *Config) normalize() {
	c.PathApplication = "/" + strings.Trim(strings.TrimSpace(c.PathApplication), "/")
	c.Destination = strings.TrimSpace(c.Destination)
	c.TemplatesDir = strings.TrimSpace(c.TemplatesDir)
	c.AccessPortList = strings.TrimSpace(c.AccessPortList)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	hosts := c.Destinations[:0]
	for _, host := range c.Destinations {
		if host = strings.TrimSpace(host); host != "" {
			hosts = append(hosts, host)
		}
	}
	c.Destinations = hosts
}

// Validate checks the struct tags of c.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// AskServerPort reports whether the server port is entered in the form.
func (c *Config) AskServerPort() bool { return c.ServerPort == 0 }

// AskAccessPorts reports whether the access port list is entered in the form.
func (c *Config) AskAccessPorts() bool { return c.AccessPortList == "" }

// AskEncryptionKey reports whether the encryption key is entered in the form.
func (c *Config) AskEncryptionKey() bool { return c.EncryptionKey == "" }

// Redacted returns a copy safe to print, with the encryption key masked.
func (c Config) Redacted() Config {
	if c.EncryptionKey != "" {
		c.EncryptionKey = "****"
	}
	c.Destinations = append([]string(nil), c.Destinations...)
	return c
}

// YAML encodes the redacted configuration.
func (c Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c.Redacted())
	if err != nil {
		return nil, fmt.Errorf("config: encode yaml: %w", err)
	}
	return out, nil
}
