package config

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"net/url"
	"slices"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every variable read by Load.
const EnvPrefix = "KALLE"

// environment mirrors the KALLE_* environment variables.
type environment struct {
	Charset            string            `envconfig:"CHARSET" default:"utf-8"`
	ConnectTimeout     time.Duration     `envconfig:"CONNECT_TIMEOUT" default:"10s"`
	ReadTimeout        time.Duration     `envconfig:"READ_TIMEOUT" default:"20s"`
	Proxy              string            `envconfig:"PROXY"`
	Headers            map[string]string `envconfig:"HEADERS"`
	Params             map[string]string `envconfig:"PARAMS"`
	UserAgent          string            `envconfig:"USER_AGENT"`
	InsecureSkipVerify bool              `envconfig:"INSECURE_SKIP_VERIFY"`
}

// Load reads the given .env files (".env" when none are named) and then the
// KALLE_* environment. Missing .env files are not an error; variables
// already set in the environment take precedence over file values.
//
// KALLE_HEADERS and KALLE_PARAMS use the "key:value,key:value" form and are
// applied in key order.
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading env file %q: %w", f, err)
		}
	}

	var env environment
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}

	cfg, err := env.config()
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (s environment) config() (*Config, error) {
	cfg := &Config{
		Charset:        s.Charset,
		ConnectTimeout: s.ConnectTimeout,
		ReadTimeout:    s.ReadTimeout,
	}

	if s.Proxy != "" {
		proxy, err := url.Parse(s.Proxy)
		if err != nil {
			return nil, fmt.Errorf("parsing proxy: %w", err)
		}
		cfg.Proxy = proxy
	}

	for _, k := range slices.Sorted(maps.Keys(s.Headers)) {
		cfg.Headers = append(cfg.Headers, Header{Key: k, Value: s.Headers[k]})
	}
	if s.UserAgent != "" {
		cfg.Headers = append(cfg.Headers, Header{Key: "User-Agent", Value: s.UserAgent})
	}

	for _, k := range slices.Sorted(maps.Keys(s.Params)) {
		cfg.Params = append(cfg.Params, Param{Key: k, Value: s.Params[k]})
	}

	if s.InsecureSkipVerify {
		cfg.TLSConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via KALLE_INSECURE_SKIP_VERIFY
	}

	return cfg, nil
}
