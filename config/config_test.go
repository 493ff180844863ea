package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/caarlos0/env/v11"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	tomlContent := `
[archive]
search = ["libs", "/opt/extra.jar"]
exclude = ["-sources.jar"]

[loader]
provided = ["php.runtime."]
skip_synthetic = true

[output]
dir = "build"

[manifest]
naming = "random"

[report]
database = "runs.db"
color = "never"
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(tomlContent), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	abs, _ := filepath.Abs(dir)
	if want := []string{filepath.Join(abs, "libs"), "/opt/extra.jar"}; !reflect.DeepEqual(c.Archive.Search, want) {
		t.Errorf("archive search = %v, want %v", c.Archive.Search, want)
	}
	if !reflect.DeepEqual(c.Archive.Exclude, []string{"-sources.jar"}) {
		t.Errorf("archive exclude = %v", c.Archive.Exclude)
	}
	if !reflect.DeepEqual(c.Loader.Provided, []string{"php.runtime."}) {
		t.Errorf("loader provided = %v", c.Loader.Provided)
	}
	if !c.Loader.SkipSynthetic {
		t.Error("loader skip_synthetic not set")
	}
	if c.Output.Dir != filepath.Join(abs, "build") {
		t.Errorf("output dir = %q", c.Output.Dir)
	}
	if c.Manifest.Naming != "random" {
		t.Errorf("manifest naming = %q, want random", c.Manifest.Naming)
	}
	if c.Report.Database != filepath.Join(abs, "runs.db") || c.Report.Color != "never" {
		t.Errorf("report = %+v", c.Report)
	}

	// Defaults fill what the file leaves out.
	if c.Output.SDK != "sdk" {
		t.Errorf("sdk = %q, want sdk", c.Output.SDK)
	}
	if c.BridgesDir() != filepath.Join(abs, "build", "tmp", "javaprepare", "JTJ") {
		t.Errorf("bridges dir = %q", c.BridgesDir())
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	d := Default()
	if c.Output != d.Output || c.Manifest != d.Manifest || c.Report != d.Report || c.Log != d.Log {
		t.Errorf("loaded %+v, want defaults %+v", c, d)
	}
	if c.SDKDir() != "sdk" {
		t.Errorf("sdk dir = %q", c.SDKDir())
	}
}

func TestLoadConfigParseError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("[output\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("expected parse error")
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), []byte("[manifest]\nnaming = \"hash\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	c, err := FindAndLoad(sub)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if c == nil {
		t.Fatal("expected config, got nil")
	}
	abs, _ := filepath.Abs(root)
	if c.Dir != abs {
		t.Errorf("dir = %q, want %q", c.Dir, abs)
	}
}

func TestApplyEnv(t *testing.T) {
	c := Default()
	err := c.applyEnv(env.Options{Environment: map[string]string{
		"JTJ_CLASSPATH":       "one.jar" + string(os.PathListSeparator) + "two",
		"JTJ_OUTPUT_DIR":      "/tmp/out",
		"JTJ_MANIFEST_NAMING": "random",
		"JTJ_REPORT_DB":       "/tmp/runs.db",
		"JTJ_LOG_LEVEL":       "debug",
	}})
	if err != nil {
		t.Fatalf("applyEnv: %v", err)
	}
	if !reflect.DeepEqual(c.Archive.Search, []string{"one.jar", "two"}) {
		t.Errorf("search = %v", c.Archive.Search)
	}
	if c.Output.Dir != "/tmp/out" || c.Manifest.Naming != "random" ||
		c.Report.Database != "/tmp/runs.db" || c.Log.Level != "debug" {
		t.Errorf("overrides not applied: %+v", c)
	}
}

func TestApplyEnvKeepsFileValues(t *testing.T) {
	c := Default()
	c.Manifest.Naming = "random"
	if err := c.applyEnv(env.Options{Environment: map[string]string{}}); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}
	if c.Manifest.Naming != "random" {
		t.Errorf("naming = %q, want random", c.Manifest.Naming)
	}
}
