// Package config holds the settings of the rendering and projection layers:
// where link-like marks point, the default colours, and how static HTML is
// post-processed.
//
// Settings are read from YAML. Keys missing from a file keep the values of
// Default, and the merged result is validated before use.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"
)

// Links are the URL prefixes link-like marks and inlines resolve against.
type Links struct {
	Biographies string `yaml:"biographies" validate:"required,linkprefix"`
	Glossary    string `yaml:"glossary" validate:"required,linkprefix"`
	Academy     string `yaml:"academy" validate:"required,linkprefix"`
	Translation string `yaml:"translation" validate:"required,linkprefix"`
	// Reference is prepended to a reference number to form the in-page
	// anchor, as in #ref3.
	Reference string `yaml:"reference" validate:"required,linkprefix"`
	// Site is the absolute origin prefixes are resolved against where
	// relative links are not accepted, as in Notion pages.
	Site string `yaml:"site" validate:"omitempty,url"`
}

// Colors are used when a paragraph or color mark carries no colour.
type Colors struct {
	Background string `yaml:"background" validate:"required"`
	Text       string `yaml:"text" validate:"required"`
}

// Output controls the post-processing of static HTML.
type Output struct {
	// Sanitize passes the HTML through an allow-list policy.
	Sanitize bool `yaml:"sanitize"`
	// Minify removes insignificant whitespace and optional tags.
	Minify bool `yaml:"minify"`
}

type Config struct {
	Links  Links  `yaml:"links"`
	Colors Colors `yaml:"colors"`
	Output Output `yaml:"output"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Links: Links{
			Biographies: "/biographies/",
			Glossary:    "/glossary/",
			Academy:     "/academy/",
			Translation: "/translation/",
			Reference:   "#ref",
		},
		Colors: Colors{
			Background: "initial",
			Text:       "black",
		},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromBytes parses YAML over the defaults and validates the result.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("linkprefix", linkPrefixValidator); err != nil {
		panic(err)
	}
	return v
}

// A prefix is either site-absolute or an in-page fragment.
func linkPrefixValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return strings.HasPrefix(value, "/") || strings.HasPrefix(value, "#")
}

// Validate checks that every prefix and colour is set.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
