package config

import (
	"net/url"
	"strings"

	"github.com/teranos/cronstorm/errors"
)

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.Endpoint)
	if err != nil {
		return errors.Wrapf(err, "api.endpoint %q is not a valid URL", c.API.Endpoint)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Newf("api.endpoint must be an http or https URL, got %q", c.API.Endpoint)
	}
	if u.Host == "" {
		return errors.Newf("api.endpoint %q has no host", c.API.Endpoint)
	}

	// 0 = do not follow redirects, negative is invalid
	if c.API.MaxRedirects < 0 {
		return errors.Newf("api.max_redirects must be >= 0, got %d", c.API.MaxRedirects)
	}

	if strings.TrimSpace(c.Job.ContentType) == "" {
		return errors.New("job.content_type cannot be empty")
	}

	return nil
}
