package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./myflix.db" {
			t.Errorf("expected database path ./myflix.db, got %s", config.Database.Path)
		}
		if config.API.BaseURL != "http://127.0.0.1:8080" {
			t.Errorf("expected api base URL http://127.0.0.1:8080, got %s", config.API.BaseURL)
		}
		if config.API.Timeout.Duration != 15*time.Second {
			t.Errorf("expected api timeout 15s, got %v", config.API.Timeout)
		}
		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}
		if config.Server.TTL.Duration != 168*time.Hour {
			t.Errorf("expected token ttl 168h, got %v", config.Server.TTL)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		testConfig := `[api]
base_url = "https://myflix.example.com"
timeout = "3s"

[database]
path = "/custom/path.db"

[server]
port = 9000
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "https://myflix.example.com" {
			t.Errorf("expected base URL override, got %s", config.API.BaseURL)
		}
		if config.API.Timeout.Duration != 3*time.Second {
			t.Errorf("expected timeout 3s, got %v", config.API.Timeout)
		}
		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
		if config.Server.Port != 9000 {
			t.Errorf("expected server port 9000, got %d", config.Server.Port)
		}
		if config.API.RateLimit != 10 {
			t.Errorf("expected missing keys to keep defaults, got rate_limit %v", config.API.RateLimit)
		}
	})

	t.Run("LoadConfig With Bad Duration", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[api]\ntimeout = \"soon\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected error for invalid duration")
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv("FLIX_API_URL", "http://env.example.com")
		t.Setenv("FLIX_SERVER_PORT", "9191")

		config := DefaultConfig()
		if err := ApplyEnv(config, filepath.Join(t.TempDir(), "missing.env")); err != nil {
			t.Fatalf("ApplyEnv() error = %v", err)
		}

		if config.API.BaseURL != "http://env.example.com" {
			t.Errorf("expected env base URL, got %s", config.API.BaseURL)
		}
		if config.Server.Port != 9191 {
			t.Errorf("expected env port 9191, got %d", config.Server.Port)
		}
	})

	t.Run("ApplyEnv From Dotenv File", func(t *testing.T) {
		envPath := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(envPath, []byte("FLIX_DATABASE_PATH=/from/dotenv.db\n"), 0644); err != nil {
			t.Fatalf("failed to write .env: %v", err)
		}
		t.Setenv("FLIX_DATABASE_PATH", "")
		os.Unsetenv("FLIX_DATABASE_PATH")

		config := DefaultConfig()
		if err := ApplyEnv(config, envPath); err != nil {
			t.Fatalf("ApplyEnv() error = %v", err)
		}

		if config.Database.Path != "/from/dotenv.db" {
			t.Errorf("expected database path from .env, got %s", config.Database.Path)
		}
	})

	t.Run("ApplyEnv With Bad Port", func(t *testing.T) {
		t.Setenv("FLIX_SERVER_PORT", "eighty")

		if err := ApplyEnv(DefaultConfig()); err == nil {
			t.Error("expected error for non-numeric port")
		}
	})
}
