package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/teranos/cronstorm/errors"
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceSystem      ConfigSource = "system"      // /etc/cronstorm/config.toml
	SourceUser        ConfigSource = "user"        // ~/.cronstorm/config.toml
	SourceProject     ConfigSource = "project"     // nearest cronstorm.toml
	SourceEnvironment ConfigSource = "environment" // CRONSTORM_* env vars
)

// SystemConfigPath is the lowest-precedence config file
const SystemConfigPath = "/etc/cronstorm/config.toml"

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source ConfigSource
	Path   string // file path or environment variable name
}

// ConfigSources maps each key set by a file or env var to its origin.
// Keys absent from the map come from defaults.
var ConfigSources = make(map[string]SourceInfo)

// MergedFiles lists the config files merged by the last load, lowest precedence first.
var MergedFiles []Candidate

// Candidate is one config file location in the cascade
type Candidate struct {
	Source ConfigSource `json:"source"`
	Path   string       `json:"path"`
	Exists bool         `json:"exists"`
}

// Candidates lists config file locations from lowest to highest precedence.
// The project entry is present only when a cronstorm.toml was found.
func Candidates() []Candidate {
	var out []Candidate
	add := func(source ConfigSource, path string) {
		if path == "" {
			return
		}
		_, err := os.Stat(path)
		out = append(out, Candidate{Source: source, Path: path, Exists: err == nil})
	}

	add(SourceSystem, SystemConfigPath)
	if dir := UserDir(); dir != "" {
		add(SourceUser, filepath.Join(dir, "config.toml"))
	}
	add(SourceProject, findProjectConfig())
	return out
}

// SettingInfo contains metadata about a configuration setting
type SettingInfo struct {
	Key        string       `json:"key"`
	Value      interface{}  `json:"value"`
	Source     ConfigSource `json:"source"`
	SourcePath string       `json:"source_path,omitempty"`
}

// Settings returns every effective setting with the source that won, sorted by key
func Settings() ([]SettingInfo, error) {
	v, err := GetViper()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config for introspection")
	}
	return settingsFrom(v, ConfigSources), nil
}

func settingsFrom(v *viper.Viper, sources map[string]SourceInfo) []SettingInfo {
	keys := v.AllKeys()
	sort.Strings(keys)

	settings := make([]SettingInfo, 0, len(keys))
	for _, key := range keys {
		info := SettingInfo{Key: key, Value: v.Get(key), Source: SourceDefault}
		if src, ok := sources[key]; ok {
			info.Source = src.Source
			info.SourcePath = src.Path
		}
		settings = append(settings, info)
	}
	return settings
}

// trackEnvSources records keys overridden by CRONSTORM_* variables
func trackEnvSources(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		name := "CRONSTORM_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if _, ok := os.LookupEnv(name); ok {
			ConfigSources[key] = SourceInfo{Source: SourceEnvironment, Path: name}
		}
	}
}

// UnknownKeys decodes path strictly and returns keys that match no setting.
// Viper silently ignores these, so a typo like "endpont" would otherwise go unnoticed.
func UnknownKeys(path string) ([]string, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	sort.Strings(unknown)
	return unknown, nil
}
