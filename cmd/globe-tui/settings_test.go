package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeslor/globe-with-connecting-cities/pkg/config"
)

func fieldIndex(t *testing.T, m *settingsModel, label string) int {
	t.Helper()
	for i, f := range m.fields {
		if f.label == label {
			return i
		}
	}
	t.Fatalf("no field %q", label)
	return -1
}

func TestSettingFields(t *testing.T) {
	tests := []struct {
		label   string
		value   string
		wantErr bool
		check   func(c *config.Config) bool
	}{
		{"Active flights", "12", false, func(c *config.Config) bool { return c.Flights.MaxActive == 12 }},
		{"Active flights", "many", true, nil},
		{"Fade in (s)", "0.75", false, func(c *config.Config) bool { return c.Flights.FadeInSeconds == 0.75 }},
		{"Fade in (s)", "1,5", true, nil},
		{"City names", "false", false, func(c *config.Config) bool { return !c.Render.ShowLabels }},
		{"City names", "maybe", true, nil},
		{"Seed", "-3", false, func(c *config.Config) bool { return c.Render.Seed == -3 }},
		{"Turns per minute", "2", false, func(c *config.Config) bool { return c.Camera.AutoRotateSpeed == 2 }},
		{"Level", "DEBUG", false, func(c *config.Config) bool { return c.Log.Level == "debug" }},
		{"Level", "loud", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.label+"="+tt.value, func(t *testing.T) {
			m := newSettingsModel(config.DefaultConfig(), "")
			f := m.fields[fieldIndex(t, m, tt.label)]

			err := f.set(m.cfg, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("set(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(m.cfg) {
				t.Errorf("set(%q) did not update the config", tt.value)
			}
		})
	}
}

func TestSettingsWorkingCopy(t *testing.T) {
	live := config.DefaultConfig()
	m := newSettingsModel(live, "")

	if err := m.fields[0].set(m.cfg, "3"); err != nil {
		t.Fatal(err)
	}
	if live.Flights.MaxActive != 20 {
		t.Error("settings edited the live config")
	}
}

func TestSettingsEditErrors(t *testing.T) {
	m := newSettingsModel(config.DefaultConfig(), "")

	m.Update(key("enter"))
	m.editBuffer = "lots"
	m.Update(key("enter"))
	if !m.editing || !m.messageIsError {
		t.Errorf("bad input accepted: editing=%v error=%v", m.editing, m.messageIsError)
	}

	m.Update(key("esc"))
	if m.editing || m.dirty {
		t.Error("esc did not cancel the edit")
	}
}

func TestSettingsRejectsInvalidConfig(t *testing.T) {
	m := newSettingsModel(config.DefaultConfig(), "")
	m.cfg.Flights.MaxActive = 0

	if cmd := m.Update(key("a")); cmd != nil {
		t.Error("apply accepted an invalid config")
	}
	if !m.messageIsError || !strings.Contains(m.message, "invalid config") {
		t.Errorf("message = %q", m.message)
	}
}

func TestSettingsSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "config.json")
	m := newSettingsModel(config.DefaultConfig(), path)
	m.cfg.Flights.MaxActive = 8
	m.dirty = true

	cmd := m.Update(key("s"))
	if cmd == nil {
		t.Fatal("save produced no command")
	}
	msg, ok := cmd().(settingsSavedMsg)
	if !ok || msg.err != nil {
		t.Fatalf("save = %#v", msg)
	}
	m.saved(msg)
	if m.dirty {
		t.Error("still dirty after save")
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Flights.MaxActive != 8 {
		t.Errorf("MaxActive = %d after reload, want 8", loaded.Flights.MaxActive)
	}
}

func TestSettingsNavigation(t *testing.T) {
	m := newSettingsModel(config.DefaultConfig(), "")

	m.Update(key("k"))
	if m.current != len(m.fields)-1 {
		t.Errorf("up from the top = %d, want the last field", m.current)
	}
	m.Update(key("j"))
	if m.current != 0 {
		t.Errorf("down from the bottom = %d, want 0", m.current)
	}

	m.Update(key("d"))
	if !m.dirty {
		t.Error("defaults did not mark the settings dirty")
	}
	if !strings.Contains(m.View(), "FLIGHTS") {
		t.Error("view is missing the flights section")
	}
}
