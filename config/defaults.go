package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.endpoint", DefaultEndpoint)
	v.SetDefault("api.block_private_ip", false)
	v.SetDefault("api.max_redirects", DefaultMaxRedirects)

	v.SetDefault("job.content_type", DefaultContentType)

	v.SetDefault("credential.path", DefaultCredentialPath)

	v.SetDefault("log.json", false)
}

// GetCredentialPath returns the credential file path with "~" expanded
func (c *Config) GetCredentialPath() string {
	path := c.Credential.Path
	if path == "" {
		path = DefaultCredentialPath
	}
	return expandHome(path)
}

// GetContentType returns the default job content type
func (c *Config) GetContentType() string {
	if c.Job.ContentType == "" {
		return DefaultContentType
	}
	return c.Job.ContentType
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
