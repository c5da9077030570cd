package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/loan-checklist/internal/model"
	"github.com/nhle/loan-checklist/internal/store"
)

func executeCommand(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// setupConfig writes a config pointing at a temp database that holds one
// DSCR loan.
func setupConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "data", "checklist.db")
	cfgPath := filepath.Join(dir, "config.yaml")

	require.NoError(t, os.WriteFile(cfgPath, []byte("database:\n  path: "+dbPath+"\nlog:\n  level: error\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Dir(dbPath), 0o755))

	s, err := store.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	product := model.LoanTypeDSCR
	require.NoError(t, s.UpsertLoan(context.Background(), model.Loan{ID: "loan-7", LoanNumber: "LN-7", LoanProduct: &product}))
	require.NoError(t, s.Close())

	return cfgPath
}

func TestRootCommand_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "materialize", "show", "config"} {
		assert.True(t, names[want], want)
	}
}

func TestMaterializeAndShow(t *testing.T) {
	cfgPath := setupConfig(t)

	out, err := executeCommand(rootCmd, "--config", cfgPath, "materialize", "loan-7")
	require.NoError(t, err, out)
	assert.Contains(t, out, "checklist item(s) for loan loan-7")
	assert.Contains(t, out, "+ [action_item] Calculate DSCR")

	out, err = executeCommand(rootCmd, "--config", cfgPath, "materialize", "loan-7")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Created 0 checklist item(s)")

	out, err = executeCommand(rootCmd, "--config", cfgPath, "show", "loan-7")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Action items: 0/")
	assert.Contains(t, out, "Rent Roll")
	assert.Contains(t, out, "Not Started")
}

func TestMaterialize_ActsAsSessionUserOnly(t *testing.T) {
	assert.Nil(t, materializeCmd.Flags().Lookup("as"))

	cfgPath := setupConfig(t)
	_, err := executeCommand(rootCmd, "--config", cfgPath, "materialize", "loan-7", "--as", "u-ada")
	assert.ErrorContains(t, err, "unknown flag")
}

func TestMaterialize_UnknownLoan(t *testing.T) {
	cfgPath := setupConfig(t)

	_, err := executeCommand(rootCmd, "--config", cfgPath, "materialize", "loan-404")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")

	out, err := executeCommand(rootCmd, "--config", path, "config", "init")
	require.NoError(t, err, out)
	assert.FileExists(t, path)

	_, err = executeCommand(rootCmd, "--config", path, "config", "init")
	assert.Error(t, err)
}
