package config

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Output.Dir != "." {
		t.Errorf("Output.Dir = %q, want .", cfg.Output.Dir)
	}
	if cfg.Output.Prefix != "Combined_Dispense_Log" {
		t.Errorf("Output.Prefix = %q", cfg.Output.Prefix)
	}
	if cfg.Verbose {
		t.Error("Verbose = true, want false")
	}
}

func TestAdditiveTable_Defaults(t *testing.T) {
	table := Default().AdditiveTable()

	tests := []struct {
		slot int
		want string
	}{
		{1, "S"},
		{2, "PR"},
		{3, "T"},
		{4, "Brine"},
		{5, "Ad5"}, // outside the table: raw token
	}
	for _, tt := range tests {
		if got := table.Name(tt.slot); got != tt.want {
			t.Errorf("Name(%d) = %q, want %q", tt.slot, got, tt.want)
		}
	}
}

func TestAdditiveTable_Overrides(t *testing.T) {
	cfg := Default()
	cfg.Additives = map[string]string{
		"ad1": "Salt",
		"Ad4": "Saline", // key casing is normalized
		"ad9": "X",      // unknown slot still mapped, harmless
		"ad2": "",       // empty override ignored
	}

	table := cfg.AdditiveTable()
	if got := table.Name(1); got != "Salt" {
		t.Errorf("Name(1) = %q, want Salt", got)
	}
	if got := table.Name(2); got != "PR" {
		t.Errorf("Name(2) = %q, want PR", got)
	}
	if got := table.Name(4); got != "Saline" {
		t.Errorf("Name(4) = %q, want Saline", got)
	}
}

func TestMerge(t *testing.T) {
	m := NewManager()

	var partial Config
	data := []byte("output:\n  dir: /tmp/reports\nadditives:\n  ad3: Thinner\nverbose: true\n")
	if err := yaml.Unmarshal(data, &partial); err != nil {
		t.Fatal(err)
	}
	m.merge(&partial)

	cfg := m.Get()
	if cfg.Output.Dir != "/tmp/reports" {
		t.Errorf("Output.Dir = %q", cfg.Output.Dir)
	}
	if cfg.Output.Prefix != "Combined_Dispense_Log" {
		t.Errorf("Prefix overwritten: %q", cfg.Output.Prefix)
	}
	if cfg.Additives["ad3"] != "Thinner" {
		t.Errorf("Additives = %v", cfg.Additives)
	}
	if !cfg.Verbose {
		t.Error("Verbose not merged")
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("HYDRAFLOW_OUTPUT_DIR", "/data/out")
	t.Setenv("HYDRAFLOW_PREFIX", "Line3")
	t.Setenv("HYDRAFLOW_VERBOSE", "true")

	m := NewManager()
	m.loadEnv()

	cfg := m.Get()
	if cfg.Output.Dir != "/data/out" {
		t.Errorf("Output.Dir = %q", cfg.Output.Dir)
	}
	if cfg.Output.Prefix != "Line3" {
		t.Errorf("Output.Prefix = %q", cfg.Output.Prefix)
	}
	if !cfg.Verbose {
		t.Error("Verbose not set from env")
	}
}
