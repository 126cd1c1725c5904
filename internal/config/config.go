// Package config loads shardscout settings from defaults, an optional YAML
// file, SHARDSCOUT_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jmylchreest/shardscout/pkg/crystaldoc"
	"github.com/jmylchreest/shardscout/pkg/fetcher"
	"github.com/jmylchreest/shardscout/pkg/shards"
)

// EnvPrefix prefixes every environment override, e.g. SHARDSCOUT_TIMEOUT.
const EnvPrefix = "SHARDSCOUT"

// Config keys.
const (
	KeyUserAgent     = "user_agent"
	KeyTimeout       = "timeout"
	KeyMaxRedirects  = "max_redirects"
	KeyMaxBodySize   = "max_body_size"
	KeyShardsURL     = "shards_url"
	KeyCrystaldocURL = "crystaldoc_url"
)

var (
	// ErrInvalid is returned when the merged settings fail validation.
	ErrInvalid = errors.New("invalid configuration")

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("bytesize", func(fl validator.FieldLevel) bool {
		_, err := ParseByteSize(fl.Field().String())
		return err == nil
	})
	return v
}

// ParseByteSize parses a human-readable size such as "10MB" or "512KiB".
// An empty string or "0" means no limit.
func ParseByteSize(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("size %s is too large", s)
	}
	return int(n), nil
}

// Config is the resolved tool configuration.
type Config struct {
	UserAgent     string        `mapstructure:"user_agent"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxRedirects  int           `mapstructure:"max_redirects"` // 0 means the default budget, negative disables redirects
	MaxBodySize   string        `mapstructure:"max_body_size" validate:"bytesize"`
	ShardsURL     string        `mapstructure:"shards_url" validate:"required,url"`
	CrystaldocURL string        `mapstructure:"crystaldoc_url" validate:"required,url"`
}

// Fetcher returns the retrieval client settings. An unparseable
// MaxBodySize, which Validate rejects, means no limit.
func (c Config) Fetcher() fetcher.Config {
	limit, _ := ParseByteSize(c.MaxBodySize)
	return fetcher.Config{
		UserAgent:    c.UserAgent,
		Timeout:      c.Timeout,
		MaxRedirects: c.MaxRedirects,
		MaxBodySize:  limit,
	}
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	def := fetcher.DefaultConfig()
	v.SetDefault(KeyUserAgent, "")
	v.SetDefault(KeyTimeout, def.Timeout)
	v.SetDefault(KeyMaxRedirects, def.MaxRedirects)
	v.SetDefault(KeyMaxBodySize, "0")
	v.SetDefault(KeyShardsURL, shards.DefaultOrigin)
	v.SetDefault(KeyCrystaldocURL, crystaldoc.DefaultOrigin)
}

// Init prepares v for Load. cfgFile names an explicit config file; when it
// is empty, .shardscout.yaml is looked up in the home and current
// directories and its absence is not an error.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
		return nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigName(".shardscout")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg, reporting every failing key.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

var fieldKeys = map[string]string{
	"UserAgent":     KeyUserAgent,
	"Timeout":       KeyTimeout,
	"MaxRedirects":  KeyMaxRedirects,
	"MaxBodySize":   KeyMaxBodySize,
	"ShardsURL":     KeyShardsURL,
	"CrystaldocURL": KeyCrystaldocURL,
}

func formatFieldError(e validator.FieldError) string {
	key := fieldKeys[e.Field()]
	if key == "" {
		key = e.Field()
	}
	switch e.Tag() {
	case "required":
		return key + " is required"
	case "url":
		return fmt.Sprintf("%s must be a URL, got %q", key, e.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", key, e.Param())
	case "bytesize":
		return fmt.Sprintf("%s must be a size such as 10MB, got %q", key, e.Value())
	default:
		return fmt.Sprintf("%s failed %s", key, e.Tag())
	}
}
