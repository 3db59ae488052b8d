package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SYSHUD_PORT", "")
	t.Setenv("SYSHUD_TRAY", "")
	t.Setenv("SYSHUD_LOG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with empty environment failed: %v", err)
	}
	if cfg.OverlayPort != DefaultPort {
		t.Fatalf("expected default port %d, got %d", DefaultPort, cfg.OverlayPort)
	}
	if !cfg.TrayEnabled {
		t.Fatal("expected tray enabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SYSHUD_PORT", "9100")
	t.Setenv("SYSHUD_TRAY", "false")
	t.Setenv("SYSHUD_LOG", "syshud.log")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OverlayPort != 9100 {
		t.Fatalf("expected port 9100, got %d", cfg.OverlayPort)
	}
	if cfg.TrayEnabled {
		t.Fatal("expected tray disabled")
	}
	if cfg.LogFile != "syshud.log" {
		t.Fatalf("unexpected log file: %q", cfg.LogFile)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"non-numeric port": {"SYSHUD_PORT": "eighty"},
		"privileged port":  {"SYSHUD_PORT": "80"},
		"bad tray flag":    {"SYSHUD_TRAY": "maybe"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("SYSHUD_PORT", "")
			t.Setenv("SYSHUD_TRAY", "")
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
