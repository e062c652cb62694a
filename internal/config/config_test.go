// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempTOML(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "searchspot.toml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestFromFileLoadsMandatorySections(t *testing.T) {
	path := writeTempTOML(t, `
[http]
host = "0.0.0.0"
port = 3000

[es]
url = "http://localhost:9200"
index = "talents"

[auth]
enabled = true
read = "readsecret"
write = "writesecret"
`)

	cfg, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile returned error: %v", err)
	}
	if cfg.HTTP.Port != 3000 {
		t.Errorf("HTTP.Port = %d, want 3000", cfg.HTTP.Port)
	}
	if cfg.ES.Index != "talents" {
		t.Errorf("ES.Index = %q, want talents", cfg.ES.Index)
	}
	if !cfg.Auth.Enabled {
		t.Error("Auth.Enabled = false, want true")
	}
	if cfg.Auth.Read != "readsecret" || cfg.Auth.Write != "writesecret" {
		t.Errorf("Auth secrets = %q/%q, want readsecret/writesecret", cfg.Auth.Read, cfg.Auth.Write)
	}
	if cfg.Tokens.Lifetime.ReadSeconds != defaultTokenLifetimeSeconds {
		t.Errorf("Tokens.Lifetime.ReadSeconds = %d, want default %d", cfg.Tokens.Lifetime.ReadSeconds, defaultTokenLifetimeSeconds)
	}
}

func TestFromFileDefaultsTokenLifetimeAndHost(t *testing.T) {
	path := writeTempTOML(t, `
[http]
port = 3000

[es]
url = "http://localhost:9200"
index = "talents"
`)

	cfg, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile returned error: %v", err)
	}
	if cfg.HTTP.Host != "0.0.0.0" {
		t.Errorf("HTTP.Host = %q, want 0.0.0.0 default", cfg.HTTP.Host)
	}
	if cfg.Tokens.Lifetime.Read() != 30*time.Second {
		t.Errorf("Tokens.Lifetime.Read() = %v, want 30s", cfg.Tokens.Lifetime.Read())
	}
	if cfg.Tokens.Lifetime.Write() != 30*time.Second {
		t.Errorf("Tokens.Lifetime.Write() = %v, want 30s", cfg.Tokens.Lifetime.Write())
	}
}

func TestFromFileCustomTokenLifetime(t *testing.T) {
	path := writeTempTOML(t, `
[http]
host = "0.0.0.0"
port = 3000

[es]
url = "http://localhost:9200"
index = "talents"

[tokens.lifetime]
read = 60
write = 120
`)

	cfg, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile returned error: %v", err)
	}
	if cfg.Tokens.Lifetime.Read() != 60*time.Second {
		t.Errorf("Tokens.Lifetime.Read() = %v, want 60s", cfg.Tokens.Lifetime.Read())
	}
	if cfg.Tokens.Lifetime.Write() != 120*time.Second {
		t.Errorf("Tokens.Lifetime.Write() = %v, want 120s", cfg.Tokens.Lifetime.Write())
	}
}

func TestFromFileMissingFileReturnsError(t *testing.T) {
	if _, err := FromFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestFromFileInvalidConfigFailsValidation(t *testing.T) {
	path := writeTempTOML(t, `
[http]
port = 3000
`)
	if _, err := FromFile(path); err == nil {
		t.Error("expected validation error for missing es section")
	}
}

func TestValidateFailsFastOnMissingRequiredKeys(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"missing http.host", Config{ES: ESConfig{URL: "u", Index: "i"}, HTTP: HTTPConfig{Port: 1}}},
		{"missing http.port", Config{ES: ESConfig{URL: "u", Index: "i"}, HTTP: HTTPConfig{Host: "h"}}},
		{"missing es.url", Config{HTTP: HTTPConfig{Host: "h", Port: 1}, ES: ESConfig{Index: "i"}}},
		{"missing es.index", Config{HTTP: HTTPConfig{Host: "h", Port: 1}, ES: ESConfig{URL: "u"}}},
		{
			"auth enabled without read secret",
			Config{HTTP: HTTPConfig{Host: "h", Port: 1}, ES: ESConfig{URL: "u", Index: "i"}, Auth: AuthConfig{Enabled: true, Write: "w"}},
		},
		{
			"auth enabled without write secret",
			Config{HTTP: HTTPConfig{Host: "h", Port: 1}, ES: ESConfig{URL: "u", Index: "i"}, Auth: AuthConfig{Enabled: true, Read: "r"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tc.name)
			}
		})
	}
}

func TestValidatePassesWithAuthDisabledAndNoSecrets(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Host: "h", Port: 1}, ES: ESConfig{URL: "u", Index: "i"}}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestValidatePassesWithAuthEnabledAndSecrets(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Host: "h", Port: 1},
		ES:   ESConfig{URL: "u", Index: "i"},
		Auth: AuthConfig{Enabled: true, Read: "r", Write: "w"},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}
