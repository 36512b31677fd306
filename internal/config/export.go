// SPDX-License-Identifier: MPL-2.0

package config

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// Export encodes the configuration as TOML for backup or transfer between hosts.
func Export(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Import decodes a TOML export. Fields absent from data keep their defaults;
// unknown fields are rejected.
func Import(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	// Rules in the export replace the defaults rather than merging.
	cfg.Rules = nil

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config export: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = DefaultRules()
	}
	if valid, errs := cfg.IsValid(); !valid {
		return nil, errs[0]
	}
	return cfg, nil
}
