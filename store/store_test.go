package store

import (
	"path/filepath"
	"testing"
)

func setTestConfigDir(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)
}

func TestSettings_RoundTrip(t *testing.T) {
	setTestConfigDir(t)

	settings, err := LoadSettings()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if settings.Group != 1 || !settings.ShowLabels {
		t.Fatalf("expected defaults, got %+v", settings)
	}

	want := Settings{LayoutPath: "hall.txt", PlanPath: "plan.txt", Group: 7, ShowLabels: false}
	if err := SaveSettings(want); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	got, err := LoadSettings()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestSettings_InvalidGroupFallsBack(t *testing.T) {
	setTestConfigDir(t)

	if err := SaveSettings(Settings{Group: -4}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	got, err := LoadSettings()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got.Group != 1 {
		t.Fatalf("expected group 1, got %d", got.Group)
	}
}

func TestRememberLayout_MostRecentFirst(t *testing.T) {
	setTestConfigDir(t)
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")

	for _, path := range []string{a, b, a} {
		if err := RememberLayout(path); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}

	recent, err := LoadRecentLayouts()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(recent) != 2 || recent[0].Path != a || recent[1].Path != b {
		t.Fatalf("expected [a b], got %+v", recent)
	}
}

func TestRememberLayout_CapsHistory(t *testing.T) {
	setTestConfigDir(t)
	dir := t.TempDir()

	for i := 0; i < maxRecentLayouts+3; i++ {
		if err := RememberLayout(filepath.Join(dir, string(rune('a'+i))+".txt")); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}
	recent, err := LoadRecentLayouts()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(recent) != maxRecentLayouts {
		t.Fatalf("expected %d layouts, got %d", maxRecentLayouts, len(recent))
	}
}

func TestRememberLayout_InvalidInput(t *testing.T) {
	setTestConfigDir(t)

	if err := RememberLayout("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
