// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package golden

import (
	"errors"
	"testing"

	"github.com/gogpu/golden/layout"
)

func TestNilConfig(t *testing.T) {
	var c *Config

	if _, err := c.FileName("x", Phone); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("FileName = %v, want ErrNotConfigured", err)
	}
	if _, err := c.Comparator(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Comparator = %v, want ErrNotConfigured", err)
	}
	if _, err := NewMatcher(c); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("NewMatcher = %v, want ErrNotConfigured", err)
	}
	if _, err := c.MultiScreen("x", nil, nil); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("MultiScreen = %v, want ErrNotConfigured", err)
	}
	if c.Skip() {
		t.Error("nil Config skips")
	}
	if c.Mode() != ModeVerify {
		t.Error("nil Config does not verify")
	}
}

func TestNewConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"empty base dir", []Option{WithBaseDir("")}},
		{"nil factory", []Option{WithFileNameFactory(nil)}},
		{"invalid default", []Option{WithDefaultConfigurations(Phone.WithPixelRatio(0))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.opts...)
			var ce *ConfigurationError
			if !errors.As(err, &ce) {
				t.Fatalf("NewConfig = %v, want *ConfigurationError", err)
			}
		})
	}
}

func TestDefaultFileName(t *testing.T) {
	tests := []struct {
		name string
		cfg  Configuration
		want string
	}{
		{"home", Phone, "home.phone.png"},
		{"Home Screen", IPhone11, "home-screen.iphone11.png"},
		{"screens/Settings", Phone, "screens/settings.phone.png"},
		{"a//b/", Phone, "a/b.phone.png"},
		{"../escape", Phone, "escape.phone.png"},
		{"x", Phone.WithName("Dark Mode"), "x.dark-mode.png"},
		{"", Phone, ""},
		{"x", Phone.WithName("!!"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.cfg.Name, func(t *testing.T) {
			if got := DefaultFileName(tt.name, tt.cfg); got != tt.want {
				t.Errorf("DefaultFileName(%q, %q) = %q, want %q", tt.name, tt.cfg.Name, got, tt.want)
			}
		})
	}
}

func TestFileNameCollision(t *testing.T) {
	c := MustConfig(WithBaseDir(t.TempDir()))

	id, err := c.FileName("Home Screen", Phone)
	if err != nil {
		t.Fatalf("FileName: %v", err)
	}
	if again, err := c.FileName("Home Screen", Phone); err != nil || again != id {
		t.Errorf("same pair again = %q, %v", again, err)
	}
	if _, err := c.FileName("home-screen", Phone); !errors.Is(err, ErrNameCollision) {
		t.Errorf("colliding pair = %v, want ErrNameCollision", err)
	}
	if _, err := c.FileName("Home Screen", IPhone11); err != nil {
		t.Errorf("other configuration: %v", err)
	}
}

func TestFileNameEmpty(t *testing.T) {
	c := MustConfig(WithBaseDir(t.TempDir()))
	if _, err := c.FileName("???", Phone); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("FileName = %v, want ErrInvalidConfiguration", err)
	}
}

func TestCustomFileNameFactory(t *testing.T) {
	c := MustConfig(
		WithBaseDir(t.TempDir()),
		WithFileNameFactory(func(name string, cfg Configuration) string {
			return cfg.Name + "/" + name + ".png"
		}),
	)
	got, err := c.FileName("home", Phone)
	if err != nil || got != "phone/home.png" {
		t.Errorf("FileName = %q, %v", got, err)
	}
}

func TestModeFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  Mode
	}{
		{"", ModeVerify},
		{"0", ModeVerify},
		{"false", ModeVerify},
		{"1", ModeRecord},
		{"true", ModeRecord},
		{"TRUE", ModeRecord},
		{" record ", ModeRecord},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(UpdateEnv, tt.value)
			if got := ModeFromEnv(); got != tt.want {
				t.Errorf("ModeFromEnv(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestMultiScreen(t *testing.T) {
	wide := NewConfiguration("wide", layout.Loose(layout.Sz(1000, 400)))
	c := MustConfig(WithBaseDir(t.TempDir()), WithDefaultConfigurations(wide))

	reqs, err := c.MultiScreen("home", nil, ExpandAuto())
	if err != nil {
		t.Fatalf("MultiScreen: %v", err)
	}
	if len(reqs) != 1 || reqs[0].Configuration.Name != "wide" || reqs[0].Name != "home" {
		t.Errorf("defaults = %+v", reqs)
	}

	reqs, err = c.MultiScreen("home", []Configuration{Phone, TabletPortrait}, nil)
	if err != nil {
		t.Fatalf("MultiScreen: %v", err)
	}
	if len(reqs) != 2 || reqs[1].Configuration.Name != TabletPortrait.Name {
		t.Errorf("explicit = %+v", reqs)
	}
	if reqs[0].sizing().String() != "expand(auto)" {
		t.Errorf("nil sizing resolves to %s", reqs[0].sizing())
	}
}

func TestDefaultConfigurationsCopy(t *testing.T) {
	c := MustConfig(WithBaseDir(t.TempDir()))
	got, err := c.DefaultConfigurations()
	if err != nil {
		t.Fatal(err)
	}
	got[0].Name = "changed"
	again, _ := c.DefaultConfigurations()
	if again[0].Name != Phone.Name {
		t.Errorf("defaults aliased: %q", again[0].Name)
	}
}
