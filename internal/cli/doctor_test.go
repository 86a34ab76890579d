package cli

import (
	"encoding/json"
	"testing"
)

func TestDoctor_CleanStore(t *testing.T) {
	t.Setenv("DASHBOARD_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()

	mustLayout(t, dir, "layout", "toggle", "deals")

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "doctor", "--fail"})
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, stderr)
	}
	var env struct {
		Data struct {
			Issues []map[string]any `json:"issues"`
		} `json:"data"`
		Meta struct {
			HasErrors bool `json:"hasErrors"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, stdout)
	}
	if len(env.Data.Issues) != 0 || env.Meta.HasErrors {
		t.Fatalf("expected a clean report, got %s", stdout)
	}
}
