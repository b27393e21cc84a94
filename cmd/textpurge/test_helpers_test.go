package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"textpurge/internal/testsupport"
)

type cliTestEnv struct {
	configPath  string
	stateDir    string
	journalPath string
	corpusDir   string
}

func setupCLITestEnv(t *testing.T, files map[string]string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("TEXTPURGE_THRESHOLD", "")
	t.Setenv("TEXTPURGE_LOG_LEVEL", "")

	env := &cliTestEnv{
		configPath:  filepath.Join(base, "textpurge.toml"),
		stateDir:    filepath.Join(base, "state"),
		journalPath: filepath.Join(base, "state", "journal.db"),
		corpusDir:   testsupport.WriteCorpus(t, filepath.Join(base, "corpus"), files),
	}
	writeTestConfig(t, env)
	return env
}

func writeTestConfig(t *testing.T, env *cliTestEnv) {
	t.Helper()
	content := fmt.Sprintf(
		"[paths]\nstate_dir = %q\n\n[journal]\nenabled = true\npath = %q\n\n[logging]\nlevel = \"error\"\n",
		env.stateDir,
		env.journalPath,
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

func (env *cliTestEnv) file(name string) string {
	return filepath.Join(env.corpusDir, name)
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
