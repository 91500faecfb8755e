package domain

import "time"

// ResolverMode selects the station resolution strategy.
type ResolverMode string

const (
	ResolverLocal  ResolverMode = "local"
	ResolverRemote ResolverMode = "remote"
)

// Config represents the nstimes configuration after all layers are applied.
type Config struct {
	API      APIConfig
	Resolver ResolverMode `validate:"oneof=local remote"`
	Stations StationsConfig
	Cache    CacheConfig
	Server   ServerConfig
	Log      LogConfig
}

type APIConfig struct {
	BaseURL string        `validate:"required,url"`
	Token   string        // may be empty until an upstream call is made
	Timeout time.Duration `validate:"gt=0"`
}

// StationsConfig points the local resolver at a stations file written by
// `nstimes stations sync`. An empty File uses the built-in table.
type StationsConfig struct {
	File string
}

// CacheConfig configures price caching. An empty Path disables caching.
type CacheConfig struct {
	Path string
}

type ServerConfig struct {
	Addr string `validate:"required,hostname_port"`
}

type LogConfig struct {
	Dir   string
	Debug bool
}

// DefaultConfig provides sane defaults if nstimes.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "https://gateway.apiportal.ns.nl",
			Timeout: 15 * time.Second,
		},
		Resolver: ResolverLocal,
		Server: ServerConfig{
			Addr: "0.0.0.0:3000",
		},
	}
}
