package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	ConfigFile string `long:"config" env:"CONFIG_FILE" default:"./sitemap.yaml" description:"Path to the site description file"`
	OutputDir  string `long:"output-dir" env:"OUTPUT_DIR" default:"./public" description:"Directory to write generated sitemap documents to"`

	BaseUrl       string `long:"base-url" env:"BASE_URL" description:"Override the site description's base URL (e.g., https://example.com)"`
	Pretty        bool   `long:"pretty" env:"PRETTY" description:"Pretty-print generated XML"`
	TrailingSlash bool   `long:"trailing-slash" env:"TRAILING_SLASH" description:"Ensure a trailing slash on every location"`

	Serve bool   `long:"serve" env:"SERVE" description:"Serve generated documents over HTTP instead of exiting"`
	Port  string `long:"port" env:"PORT" default:"8080" description:"HTTP server port for serve mode"`

	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		ConfigFile:    raw.ConfigFile,
		OutputDir:     raw.OutputDir,
		BaseUrl:       raw.BaseUrl,
		Pretty:        raw.Pretty,
		TrailingSlash: raw.TrailingSlash,
		Serve:         raw.Serve,
		Port:          raw.Port,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
