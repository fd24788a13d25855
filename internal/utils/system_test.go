package utils

import (
	"testing"
)

func TestGetUsername(t *testing.T) {
	username, err := GetUsername()
	if err != nil {
		t.Fatalf("GetUsername failed: %v", err)
	}
	if username == "" {
		t.Fatal("Expected non-empty username")
	}
}

func TestGetHostname(t *testing.T) {
	hostname, err := GetHostname()
	if err != nil {
		t.Fatalf("GetHostname failed: %v", err)
	}
	if hostname == "" {
		t.Fatal("Expected non-empty hostname")
	}
}

func TestUserDataDir(t *testing.T) {
	t.Run("XDGDataHome", func(t *testing.T) {
		env := map[string]string{"XDG_DATA_HOME": "/tmp/xdg"}
		dir, err := UserDataDir(func(k string) string { return env[k] })
		if err != nil {
			t.Fatalf("UserDataDir failed: %v", err)
		}
		if dir != "/tmp/xdg" {
			t.Errorf("UserDataDir() = %q, expected %q", dir, "/tmp/xdg")
		}
	})

	t.Run("FallsBackToHome", func(t *testing.T) {
		dir, err := UserDataDir(func(string) string { return "" })
		if err != nil {
			t.Skipf("no home directory: %v", err)
		}
		if dir == "" {
			t.Fatal("Expected non-empty data dir")
		}
	})
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{0, "workflows"},
		{1, "workflow"},
		{2, "workflows"},
	}
	for _, tc := range tests {
		if got := Plural(tc.n, "workflow"); got != tc.expected {
			t.Errorf("Plural(%d) = %q, expected %q", tc.n, got, tc.expected)
		}
	}
}
