// Package knock is the entry point of go-knock, a web and terminal front end
// for the fwknop single packet authorization client.
package knock

import (
	"io/fs"

	"github.com/goliatone/go-knock/internal/config"
	"github.com/goliatone/go-knock/internal/knockform"
	"github.com/goliatone/go-knock/internal/server"
	"github.com/goliatone/go-knock/pkg/form"
	"github.com/goliatone/go-knock/pkg/render"
	"github.com/goliatone/go-knock/pkg/renderers/vanilla"
)

// Product is the name shown in page footers and the OpenAPI document.
const Product = "go-knock"

// Version is stamped at build time with -ldflags "-X".
var Version = "dev"

// Config aliases the server configuration.
type Config = config.Config

// RenderOptions aliases render.RenderOptions for callers rendering the form
// themselves.
type RenderOptions = render.RenderOptions

// ServerOption aliases server.Option.
type ServerOption = server.Option

// LoadConfig reads knock.yaml from path, or from the default search paths
// when path is empty, applying KNOCK_ environment overrides.
func LoadConfig(path string) (*Config, string, error) {
	return config.Load(config.LoadOptions{ConfigFilePath: path})
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config { return config.Default() }

// NewServer builds the HTTP server for cfg labelled with Product and Version.
func NewServer(cfg *Config, options ...ServerOption) (*server.Server, error) {
	opts := append([]ServerOption{server.WithProduct(Product, Version)}, options...)
	return server.New(cfg, opts...)
}

// NewForm builds the knock form for cfg. remoteAddr seeds the source IP.
func NewForm(cfg *Config, remoteAddr string) (*form.Form, error) {
	return knockform.Build(cfg, remoteAddr)
}

// AssetsFS exposes the stylesheet served under <path_application>/static.
func AssetsFS() fs.FS { return vanilla.AssetsFS() }
