package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestReadOnlyCommands_DoNotCreateProfile(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("DASHBOARD_CONFIG_DIR", cfgDir)

	for _, args := range [][]string{
		{"layout", "show"},
		{"layout", "history"},
		{"widgets", "show", "deals"},
		{"doctor"},
	} {
		if _, stderr, err := runCLI(t, append([]string{"--profile", "wrok"}, args...)); err != nil {
			t.Fatalf("%v: %v\n%s", args, err, stderr)
		}
	}
	if _, err := os.Stat(filepath.Join(cfgDir, "profiles", "wrok")); !os.IsNotExist(err) {
		t.Fatalf("expected no profile dir after read-only commands (err=%v)", err)
	}

	stdout, stderr, err := runCLI(t, []string{"profiles", "list"})
	if err != nil {
		t.Fatalf("profiles list: %v\n%s", err, stderr)
	}
	var env struct {
		Data struct {
			Profiles []string `json:"profiles"`
		} `json:"data"`
	}
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, stdout)
	}
	if len(env.Data.Profiles) != 0 {
		t.Fatalf("expected no profiles, got %v", env.Data.Profiles)
	}
}
