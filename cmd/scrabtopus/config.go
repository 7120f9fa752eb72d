package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/cassieopeanuts/scrabtopus"
	"gopkg.in/yaml.v3"
)

// LoadYAMLConfig is a kong.ConfigurationLoader for YAML files. Keys are
// flag names in snake_case, for example:
//
//	max_pages: 50
//	delay: 1s
//	user_agent: mybot/1.0
func LoadYAMLConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, scrabtopus.Errorf(scrabtopus.EINVALID, "invalid config file: %v", err)
	}
	if values == nil {
		values = map[string]any{}
	}

	// kong resolves values from JSON, so re-encode the YAML document.
	b, err := json.Marshal(values)
	if err != nil {
		return nil, scrabtopus.Errorf(scrabtopus.EINVALID, "invalid config file: %v", err)
	}
	return kong.JSON(bytes.NewReader(b))
}

func defaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "scrabtopus", "config.yaml")
}

func defaultDBPath() string {
	return filepath.Join(xdg.DataHome, "scrabtopus", "scrabtopus.db")
}
