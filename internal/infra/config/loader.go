package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/evanraalte/nstimes/internal/domain"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFile    = "nstimes.yaml"
	DefaultEnvFile = ".env"
)

// Environment variables read on top of the YAML file.
const (
	EnvToken    = "NS_API_TOKEN"
	EnvBaseURL  = "NSTIMES_BASE_URL"
	EnvResolver = "NSTIMES_RESOLVER"
	EnvCache    = "NSTIMES_CACHE"
	EnvStations = "NSTIMES_STATIONS"
	EnvAddr     = "NSTIMES_ADDR"
	EnvDebug    = "NSTIMES_DEBUG"
)

// Options controls where configuration is read from.
type Options struct {
	// File is an explicit config path; it must exist. When empty, DefaultFile is
	// looked up from StartDir upwards and used if found.
	File string
	// StartDir defaults to the working directory.
	StartDir string
	// EnvFile is a dotenv file; a missing file is ignored.
	EnvFile string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load applies, in increasing precedence: defaults, YAML file, dotenv file, process env.
// CLI flags are applied by the caller, which should then call Validate.
func Load(opts Options) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	if err := applyFile(&cfg, opts.File, opts.StartDir); err != nil {
		return cfg, err
	}

	lookup, err := envLookup(opts)
	if err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func applyFile(cfg *domain.Config, explicit, startDir string) error {
	path := strings.TrimSpace(explicit)
	if path == "" {
		if startDir == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil
			}
			startDir = wd
		}
		found, err := FindFile(startDir, DefaultFile)
		if err != nil {
			return nil
		}
		path = found
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	n := y.NSTimes
	if n.API.BaseURL != "" {
		cfg.API.BaseURL = n.API.BaseURL
	}
	if n.API.Token != "" {
		cfg.API.Token = n.API.Token
	}
	if n.API.Timeout != "" {
		d, err := time.ParseDuration(n.API.Timeout)
		if err != nil {
			return invalidField(path, "nstimes.api.timeout", err.Error())
		}
		cfg.API.Timeout = d
	}
	if n.Resolver != "" {
		cfg.Resolver = domain.ResolverMode(strings.ToLower(n.Resolver))
	}
	if n.Stations.File != "" {
		cfg.Stations.File = n.Stations.File
	}
	if n.Cache.Path != "" {
		cfg.Cache.Path = n.Cache.Path
	}
	if n.Server.Addr != "" {
		cfg.Server.Addr = n.Server.Addr
	}
	if n.Log.Dir != "" {
		cfg.Log.Dir = n.Log.Dir
	}
	if n.Log.Debug != nil {
		cfg.Log.Debug = *n.Log.Debug
	}
	return nil
}

// envLookup layers the process environment over the dotenv file without
// mutating the process environment.
func envLookup(opts Options) (func(string) (string, bool), error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}

	dotenv, err := godotenv.Read(envFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return lookup, nil
		}
		return nil, &domain.OpError{
			Op:   "config.dotenv",
			Kind: domain.KindInvalidConfig,
			Path: envFile,
			Err:  err,
		}
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

func applyEnv(cfg *domain.Config, lookup func(string) (string, bool)) error {
	if v, ok := nonEmpty(lookup, EnvToken); ok {
		cfg.API.Token = v
	}
	if v, ok := nonEmpty(lookup, EnvBaseURL); ok {
		cfg.API.BaseURL = v
	}
	if v, ok := nonEmpty(lookup, EnvResolver); ok {
		cfg.Resolver = domain.ResolverMode(strings.ToLower(v))
	}
	if v, ok := nonEmpty(lookup, EnvCache); ok {
		cfg.Cache.Path = v
	}
	if v, ok := nonEmpty(lookup, EnvStations); ok {
		cfg.Stations.File = v
	}
	if v, ok := nonEmpty(lookup, EnvAddr); ok {
		cfg.Server.Addr = v
	}
	if v, ok := nonEmpty(lookup, EnvDebug); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return invalidField(EnvDebug, EnvDebug, err.Error())
		}
		cfg.Log.Debug = b
	}
	return nil
}

func nonEmpty(lookup func(string) (string, bool), key string) (string, bool) {
	v, ok := lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
