package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Argilla.APIURL != "http://localhost:6900" {
			t.Errorf("APIURL = %s", config.Argilla.APIURL)
		}
		if config.Argilla.RateLimit != 5.0 {
			t.Errorf("RateLimit = %v", config.Argilla.RateLimit)
		}
		if config.Database.Path != "./anx.db" {
			t.Errorf("Database.Path = %s", config.Database.Path)
		}
		if config.Database.MaxOpenConns != 10 || config.Database.MaxIdleConns != 5 {
			t.Errorf("pool settings = %d/%d", config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("valid file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			content := `
[argilla]
api_url = "https://argilla.example.com"
api_key = "owner.apikey"
hf_token = "hf_abc"
rate_limit = 2.5

[database]
path = "/tmp/jobs.db"
max_open_conns = 3
max_idle_conns = 1
`
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			if config.Argilla.APIURL != "https://argilla.example.com" {
				t.Errorf("APIURL = %s", config.Argilla.APIURL)
			}
			if config.Argilla.HFToken != "hf_abc" {
				t.Errorf("HFToken = %s", config.Argilla.HFToken)
			}
			if config.Argilla.RateLimit != 2.5 {
				t.Errorf("RateLimit = %v", config.Argilla.RateLimit)
			}
			if config.Database.MaxOpenConns != 3 {
				t.Errorf("MaxOpenConns = %d", config.Database.MaxOpenConns)
			}
		})

		t.Run("missing file", func(t *testing.T) {
			if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
				t.Error("expected error for missing file")
			}
		})

		t.Run("malformed file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.toml")
			os.WriteFile(path, []byte("[argilla\napi_url = "), 0644)
			if _, err := LoadConfig(path); err == nil {
				t.Error("expected error for malformed TOML")
			}
		})
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		t.Run("creates loadable file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := CreateConfigFile(path); err != nil {
				t.Fatalf("CreateConfigFile() error = %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("created config does not load: %v", err)
			}
			if config.Argilla.APIKey == "" {
				t.Error("created config missing api key placeholder")
			}
		})

		t.Run("refuses to overwrite", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := CreateConfigFile(path); err != nil {
				t.Fatalf("CreateConfigFile() error = %v", err)
			}
			if err := CreateConfigFile(path); err == nil {
				t.Error("expected error when file exists")
			}
		})
	})
}
