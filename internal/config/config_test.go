package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"

	"github.com/iw2rmb/quire/document"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Editor.ReadOnly {
		t.Error("Editor.ReadOnly should be false by default")
	}
	if !cfg.Editor.Autofocus {
		t.Error("Editor.Autofocus should be true by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("defaults must validate, got %v", ValidationErrors(errs))
	}
}

func TestSetup_DefaultsWithoutFile(t *testing.T) {
	resetViper(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := Setup(""); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestSetup_FileAndEnv(t *testing.T) {
	resetViper(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "editor:\n  read_only: true\n  placeholder: Nothing yet\nui:\n  line_numbers: true\n")
	t.Setenv("QUIRE_LOGGING_LEVEL", "debug")

	if err := Setup(path); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Editor.ReadOnly = true
	want.Editor.Placeholder = "Nothing yet"
	want.UI.LineNumbers = true
	want.Logging.Level = "debug"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestSetup_MissingExplicitFile(t *testing.T) {
	resetViper(t)

	if err := Setup(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for a missing explicit config file")
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	resetViper(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "editor:\n  placeholder: \"two\\nlines\"\nlogging:\n  level: loud\n  pretty: true\n")

	if err := Setup(path); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	_, err := Load()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	var fields []string
	for _, e := range verrs {
		fields = append(fields, e.Field)
	}
	want := []string{"editor.placeholder", "logging.level", "logging.pretty"}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(err.Error(), "3 validation errors:") {
		t.Fatalf("error text: got %q", err.Error())
	}

	if got := Get(); got.Logging.Level != "info" {
		t.Fatalf("Get must fall back to defaults, got level %q", got.Logging.Level)
	}
}

func TestFields(t *testing.T) {
	cfg := Default()
	cfg.Editor.ReadOnly = true

	got := cfg.Fields()
	want := document.Fields{
		ReadOnly:    document.Ptr(true),
		Placeholder: document.Ptr(cfg.Editor.Placeholder),
		Autofocus:   document.Ptr(true),
	}
	if !got.Equal(want) {
		t.Fatalf("Fields: got %+v, want %+v", got, want)
	}

	ed := document.NewEditor("e", nil)
	got.Apply(ed)
	if !ed.ReadOnly || ed.Placeholder != cfg.Editor.Placeholder {
		t.Fatalf("fields not applied: %+v", ed)
	}
}

func TestWriteDefault(t *testing.T) {
	resetViper(t)
	path := filepath.Join(t.TempDir(), "quire", "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	if err := WriteDefault(path); !errors.Is(err, ErrExists) {
		t.Fatalf("second write: got %v, want ErrExists", err)
	}

	if err := Setup(path); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if got, want := ConfigFile(), filepath.Join(dir, "quire", "config.yaml"); got != want {
		t.Fatalf("ConfigFile: got %q, want %q", got, want)
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	resetViper(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "editor:\n  read_only: false\n")

	if err := Setup(path); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	reloaded := make(chan *Config, 4)
	Watch(func(cfg *Config, err error) {
		if err == nil {
			reloaded <- cfg
		}
	})

	writeFile(t, path, "editor:\n  read_only: true\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-reloaded:
			if cfg.Editor.ReadOnly {
				return
			}
		case <-deadline:
			t.Fatalf("no reload observed")
		}
	}
}
