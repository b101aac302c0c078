package enhance

import (
	"context"
	"testing"
)

func TestGetModelName(t *testing.T) {
	t.Run("default when env unset", func(t *testing.T) {
		t.Setenv("GEMINI_MODEL", "")
		if got := GetModelName(); got != DefaultModelName {
			t.Errorf("GetModelName() = %q, want %q", got, DefaultModelName)
		}
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("GEMINI_MODEL", "user-chosen-model")
		if got := GetModelName(); got != "user-chosen-model" {
			t.Errorf("GetModelName() = %q, want env value", got)
		}
	})
}

func TestNewClientModelResolution(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit model wins over env", func(t *testing.T) {
		t.Setenv("GEMINI_MODEL", "env-model")
		c, err := NewClient(ctx, "test-key", "flag-model")
		if err != nil {
			t.Fatalf("NewClient error: %v", err)
		}
		if c.model != "flag-model" {
			t.Errorf("model = %q, want explicit %q", c.model, "flag-model")
		}
	})

	t.Run("empty model falls back to env", func(t *testing.T) {
		t.Setenv("GEMINI_MODEL", "env-model")
		c, err := NewClient(ctx, "test-key", "")
		if err != nil {
			t.Fatalf("NewClient error: %v", err)
		}
		if c.model != "env-model" {
			t.Errorf("model = %q, want env value %q", c.model, "env-model")
		}
	})

	t.Run("empty model and env fall back to default", func(t *testing.T) {
		t.Setenv("GEMINI_MODEL", "")
		c, err := NewClient(ctx, "test-key", "")
		if err != nil {
			t.Fatalf("NewClient error: %v", err)
		}
		if c.model != DefaultModelName {
			t.Errorf("model = %q, want %q", c.model, DefaultModelName)
		}
	})
}
