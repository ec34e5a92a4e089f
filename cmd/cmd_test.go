package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"amalgam/pkg/amalgam"
	"amalgam/pkg/version"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const div = amalgam.DividerSentinel + "\n"

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(nil)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootMergesWithFlags(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "core.hpp", "#pragma once\nCORE\n"+div+"\nCORE_IMPL\n")
	writeFile(t, dir, "ext/a.hpp", "#pragma once\nA\n"+div+"\nA_IMPL\n")

	_, err := runCmd(t, "--dir", dir, "--primary", "core.hpp", "--aux", "ext/a.hpp", "--output", "out/all.hpp")
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dir, "out/all.hpp"))
	require.NoError(t, err)
	want := "#pragma once\nCORE\nA\n\n" + strings.Join(amalgam.Banner, "\n") + "\n\nCORE_IMPL\nA_IMPL\n"
	assert.Equal(t, want, string(b))
}

func TestRootMergesWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "core.hpp", "CORE\n"+div+"\nCORE_IMPL\n")
	writeFile(t, dir, "a.hpp", "// generated\nA\n"+div+"\nA_IMPL\n")
	writeFile(t, dir, "b.hpp", "B\n"+div+"\nB_IMPL\n")
	writeFile(t, dir, "amalgam.yaml", `
primary: core.hpp
auxiliaries: [b.hpp, a.hpp]
output: single.hpp
boilerplate: ["// generated"]
`)

	_, err := runCmd(t, "--config", filepath.Join(dir, "amalgam.yaml"), "--dir", dir, "--no-warn")
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dir, "single.hpp"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "CORE\nB\nA\n\n"))
	assert.True(t, strings.HasSuffix(string(b), "\n\nCORE_IMPL\nB_IMPL\nA_IMPL\n"))
	assert.NotContains(t, string(b), "// generated")
}

func TestRootMissingInputFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "core.hpp", "CORE\n"+div+"\nCORE_IMPL\n")

	_, err := runCmd(t, "--dir", dir, "--primary", "core.hpp", "--aux", "gone.hpp", "--output", "out.hpp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gone.hpp")
}

func TestRootRejectsOutputThatIsInput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "core.hpp", "CORE\n"+div+"\nCORE_IMPL\n")

	_, err := runCmd(t, "--dir", dir, "--primary", "core.hpp", "--output", "core.hpp")
	assert.ErrorIs(t, err, amalgam.ErrOutputIsInput)

	b, readErr := os.ReadFile(filepath.Join(dir, "core.hpp"))
	require.NoError(t, readErr)
	assert.Equal(t, "CORE\n"+div+"\nCORE_IMPL\n", string(b))
}

func TestCheckReportsLayoutWarnings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "core.hpp", "CORE\n"+div+"\nCORE_IMPL\n")
	writeFile(t, dir, "nodiv.hpp", "A\n")
	writeFile(t, dir, "nosep.hpp", "B\n"+div+"B_IMPL\n")

	out, err := runCmd(t, "check", "--dir", dir, "--primary", "core.hpp", "--aux", "nodiv.hpp", "--aux", "nosep.hpp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 inputs")
	assert.Contains(t, out, "ok      "+filepath.Join(dir, "core.hpp"))
	assert.Contains(t, out, "warning "+filepath.Join(dir, "nodiv.hpp")+": no divider")
	assert.Contains(t, out, "warning "+filepath.Join(dir, "nosep.hpp")+": missing blank separator")
	assert.NoFileExists(t, filepath.Join(dir, "AllDisplayers.hpp"))
}

func TestCheckPasses(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "core.hpp", "CORE\n"+div+"\nCORE_IMPL\n")

	out, err := runCmd(t, "check", "--dir", dir, "--primary", "core.hpp", "--aux", "core.hpp")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "ok      "))
}

func TestConfigPrintsEffectiveConfig(t *testing.T) {
	out, err := runCmd(t, "config", "--output", "dist/one.hpp", "--aux", "x.hpp", "--aux", "y.hpp")
	require.NoError(t, err)

	var cfg amalgam.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "ArrayConverter.hpp", cfg.Primary)
	assert.Equal(t, []string{"x.hpp", "y.hpp"}, cfg.Auxiliaries)
	assert.Equal(t, "dist/one.hpp", cfg.Output)
}

func TestVersion(t *testing.T) {
	out, err := runCmd(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", out)

	out, err = runCmd(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "amalgam version "))
}
