package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/user/caption-timeline-cli/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvAPIToken, "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent")
	}
	if resolved != filepath.Join(home, ".config", "caption-timeline-cli", "config.toml") {
		t.Fatalf("resolved = %q", resolved)
	}
	if cfg.Paths.Database != filepath.Join(home, ".local", "share", "caption-timeline-cli", "data.db") {
		t.Fatalf("database = %q", cfg.Paths.Database)
	}
	if cfg.Persistence.Backend != config.BackendSQLite || cfg.Debounce().Milliseconds() != 500 {
		t.Fatalf("persistence = %+v", cfg.Persistence)
	}
	if cfg.Editor.LayoutPreset != "centered" || cfg.Editor.LyricPreset != "classic" {
		t.Fatalf("editor = %+v", cfg.Editor)
	}
	if cfg.Tick().Milliseconds() != 100 {
		t.Fatalf("tick = %v", cfg.Tick())
	}
}

func TestLoadFileOverridesAndNormalizes(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvAPIToken, "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[editor]
layout_preset = " karaoke "
max_words = 0

[persistence]
backend = "HTTP"

[api]
url = "https://api.example.com/"
project_id = "p1"

[logging]
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved=%q exists=%v", resolved, exists)
	}
	if cfg.Editor.LayoutPreset != "karaoke" || cfg.Editor.MaxWords != 3 {
		t.Fatalf("editor = %+v", cfg.Editor)
	}
	if cfg.Persistence.Backend != config.BackendHTTP || cfg.API.URL != "https://api.example.com" {
		t.Fatalf("persistence=%+v api=%+v", cfg.Persistence, cfg.API)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %q", cfg.Logging.Level)
	}
}

func TestEnvOverridesAPI(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "https://env.example.com")
	t.Setenv(config.EnvAPIToken, "secret")
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[api]\nurl = \"https://file.example.com\"\ntoken = \"file\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.URL != "https://env.example.com" || cfg.API.Token != "secret" {
		t.Fatalf("api = %+v", cfg.API)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "")
	tests := map[string]string{
		"backend":      "[persistence]\nbackend = \"s3\"\n",
		"http no url":  "[persistence]\nbackend = \"http\"\n",
		"relative url": "[persistence]\nbackend = \"http\"\n[api]\nurl = \"api/v1\"\n",
		"level":        "[logging]\nlevel = \"loud\"\n",
		"format":       "[logging]\nformat = \"xml\"\n",
		"unknown key":  "[editor]\ncolour = \"red\"\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCreateSampleParsesAsDefaults(t *testing.T) {
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvAPIToken, "")
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil || !exists {
		t.Fatalf("Load sample: %v exists=%v", err, exists)
	}
	def := config.Default()
	if cfg.Editor != def.Editor || cfg.Render != def.Render {
		t.Fatalf("sample differs from defaults:\n%+v\n%+v", cfg.Editor, def.Editor)
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	if err := os.WriteFile(env, []byte("CAPTION_API_TOKEN=from-file\nCAPTION_TEST_ONLY=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvAPIToken, "from-env")
	t.Setenv("CAPTION_TEST_ONLY", "")
	os.Unsetenv("CAPTION_TEST_ONLY")

	if err := config.LoadDotEnv(env, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv(config.EnvAPIToken); got != "from-env" {
		t.Fatalf("token overridden: %q", got)
	}
	if got := os.Getenv("CAPTION_TEST_ONLY"); got != "1" {
		t.Fatalf("file var not loaded: %q", strings.TrimSpace(got))
	}
}
