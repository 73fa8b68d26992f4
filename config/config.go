// Package config loads cronstorm settings from TOML files and CRONSTORM_*
// environment variables.
package config

// Config represents the cronstorm configuration
type Config struct {
	API        APIConfig        `mapstructure:"api" toml:"api" json:"api" yaml:"api"`
	Job        JobConfig        `mapstructure:"job" toml:"job" json:"job" yaml:"job"`
	Credential CredentialConfig `mapstructure:"credential" toml:"credential" json:"credential" yaml:"credential"`
	Log        LogConfig        `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// APIConfig configures the remote scheduler endpoint
type APIConfig struct {
	Endpoint       string `mapstructure:"endpoint" toml:"endpoint" json:"endpoint" yaml:"endpoint"`
	BlockPrivateIP bool   `mapstructure:"block_private_ip" toml:"block_private_ip" json:"block_private_ip" yaml:"block_private_ip"` // refuse loopback/private endpoints
	MaxRedirects   int    `mapstructure:"max_redirects" toml:"max_redirects" json:"max_redirects" yaml:"max_redirects"`             // 0 = do not follow
}

// JobConfig holds defaults applied to every job
type JobConfig struct {
	ContentType string `mapstructure:"content_type" toml:"content_type" json:"content_type" yaml:"content_type"`
}

// CredentialConfig locates the stored API key
type CredentialConfig struct {
	Path string `mapstructure:"path" toml:"path" json:"path" yaml:"path"` // "~" expands to the home directory
}

// LogConfig configures diagnostic output on stderr
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
}

// Default values
const (
	DefaultEndpoint       = "https://cronstorm.com/api"
	DefaultMaxRedirects   = 10
	DefaultContentType    = "application/json"
	DefaultCredentialPath = "~/.cronstorm/credentials.toml"
)
