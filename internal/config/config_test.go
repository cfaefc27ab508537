package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileJSONAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reggen.json")
	if err := os.WriteFile(path, []byte(`{"outdir": "rtl", "extension": ".svh", "policy": {"rules": {"param_name_style": "off"}}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.OutDir != "rtl" || cfg.Extension != "svh" {
		t.Fatalf("unexpected outdir/extension %q/%q", cfg.OutDir, cfg.Extension)
	}
	if !cfg.PolicyEnabled() {
		t.Fatal("policy should default to enabled")
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Fatalf("log defaults not applied: %+v", cfg.Log)
	}
	if cfg.IsRuleEnabled("param_name_style") {
		t.Fatal("param_name_style should be off")
	}
	if got := cfg.GetRuleSeverity("output_path_collision", "error"); got != "error" {
		t.Fatalf("GetRuleSeverity default = %q", got)
	}
}

func TestLoadFileTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reggen.toml")
	content := `
outdir = "gen"
aliasImpl = "v2"
inputs = ["data/*.json"]

[policy]
enabled = false

[policy.rules]
empty_interface = "error"

[log]
level = "debug"
format = "json"

[timing]
path = "timing.jsonl"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.OutDir != "gen" || cfg.AliasImpl != "v2" || len(cfg.Inputs) != 1 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.PolicyEnabled() {
		t.Fatal("policy should be disabled")
	}
	if cfg.GetRuleSeverity("empty_interface", "warning") != "error" {
		t.Fatalf("rule override not loaded: %v", cfg.Policy.Rules)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" || cfg.Timing.Path != "timing.jsonl" {
		t.Fatalf("unexpected log/timing %+v %+v", cfg.Log, cfg.Timing)
	}
	if cfg.Extension != "sv" {
		t.Fatalf("extension default not applied: %q", cfg.Extension)
	}
}

func TestLoadFileRejectsMalformed(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"bad.json": `{"outdir": `,
		"bad.toml": `outdir = `,
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFile(path); err == nil {
			t.Errorf("expected a parse error for %s", name)
		}
	}
}

func TestLoadSearchOrder(t *testing.T) {
	cwd := t.TempDir()
	root := t.TempDir()
	t.Setenv("HOME", t.TempDir())

	oldCwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(cwd); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutDir != "." || cfg.Extension != "sv" {
		t.Fatalf("expected defaults without any config file, got %+v", cfg)
	}

	if err := os.WriteFile(filepath.Join(root, "reggen.json"), []byte(`{"outdir": "from-root"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutDir != "from-root" {
		t.Fatalf("expected root config, got %q", cfg.OutDir)
	}

	if err := os.WriteFile(filepath.Join(cwd, "reggen.toml"), []byte(`outdir = "from-cwd"`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OutDir != "from-cwd" {
		t.Fatalf("cwd config should win, got %q", cfg.OutDir)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"reggen.json", "reggen.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			cfg := DefaultConfig()
			cfg.AliasImpl = "v3"
			if err := cfg.Save(path); err != nil {
				t.Fatalf("Save: %v", err)
			}
			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if loaded.AliasImpl != "v3" || len(loaded.Inputs) != len(cfg.Inputs) {
				t.Fatalf("round trip lost data: %+v", loaded)
			}
		})
	}
}
