// Package azblob implements the Azure Blob Storage reference backend: a
// direct REST client (Shared Key signing over net/http) rather than the
// official Azure SDK, matching the request/signer/error-parsing shape of
// the source this backend was distilled from.
package azblob

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

var validate = validator.New()

// Config is the azblob backend configuration. Container and Endpoint are
// mandatory; Root defaults to "/"; a trailing "/" on Endpoint is stripped.
type Config struct {
	Root        string `mapstructure:"root"`
	Container   string `mapstructure:"container" validate:"required"`
	Endpoint    string `mapstructure:"endpoint" validate:"required"`
	AccountName string `mapstructure:"account_name"`
	AccountKey  string `mapstructure:"account_key"`
}

// FromMap decodes a generic (key, value) map — the Go rendition of the
// source's "builder accepts a stream of (key, value) pairs" — into a
// validated Config.
func FromMap(m map[string]any) (Config, error) {
	var cfg Config
	if err := mapstructure.Decode(m, &cfg); err != nil {
		return Config{}, fmt.Errorf("azblob: decode config: %w", err)
	}
	return normalizeAndValidate(cfg)
}

// NewConfig validates and normalizes cfg directly.
func NewConfig(cfg Config) (Config, error) {
	return normalizeAndValidate(cfg)
}

func normalizeAndValidate(cfg Config) (Config, error) {
	if cfg.Root == "" {
		cfg.Root = "/"
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("azblob: invalid config: %w", err)
	}
	return cfg, nil
}

// String redacts AccountKey, matching the Debug-formatting redaction this
// backend's credentials require.
func (c Config) String() string {
	return c.GoString()
}

// GoString redacts AccountKey and AccountName the way the source's Debug
// implementation redacts them whenever a credential is set.
func (c Config) GoString() string {
	accountName := c.AccountName
	if accountName != "" {
		accountName = "<redacted>"
	}
	accountKey := c.AccountKey
	if accountKey != "" {
		accountKey = "<redacted>"
	}
	return fmt.Sprintf(
		"azblob.Config{Root: %q, Container: %q, Endpoint: %q, AccountName: %q, AccountKey: %q}",
		c.Root, c.Container, c.Endpoint, accountName, accountKey,
	)
}
