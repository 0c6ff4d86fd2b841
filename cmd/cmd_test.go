package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/VoxDroid/dtf/internal/config"
	"github.com/VoxDroid/dtf/internal/db"
	"github.com/VoxDroid/dtf/internal/history"
)

func setupTempDB(t *testing.T) string {
	t.Helper()
	d := t.TempDir()
	t.Setenv(config.EnvDTFHome, d)
	t.Setenv(config.EnvDTFDB, "")
	return d
}

// resetFlags restores every flag to its default so consecutive Execute calls
// on the shared rootCmd do not leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func runCLIWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(input))
	if args == nil {
		// nil makes cobra fall back to os.Args
		args = []string{}
	}
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCLIWithInput(t, "", args...)
}

func writeJSON(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

// sampleFiles writes two documents that differ in every category.
func sampleFiles(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	a := writeJSON(t, dir, "a.json", `{"name":"alpha","port":8080,"only_a":true,"tags":["x","y"],"id":"1"}`)
	b := writeJSON(t, dir, "b.json", `{"name":"beta","port":8080,"tags":["x","z"],"id":1}`)
	return a, b
}

func recordedChecks(t *testing.T) []history.Check {
	t.Helper()
	conn, err := db.InitDB()
	if err != nil {
		t.Fatalf("InitDB(): %v", err)
	}
	defer func() { _ = conn.Close() }()
	cs, err := history.NewRepository(conn).List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	return cs
}
