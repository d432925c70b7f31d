package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBreachDrillReport(t *testing.T) {
	var out bytes.Buffer
	opts := options{scenario: "breach_drill.yaml", runs: 2, ticks: 600, seed: 3}

	require.NoError(t, run(context.Background(), opts, &out))

	text := out.String()
	assert.Contains(t, text, "scenario=breach_drill runs=2 ticks=600 seed=3")
	assert.Contains(t, text, "--- Run 1 (seed=3")
	assert.Contains(t, text, "--- Run 2 (seed=4")
	assert.Contains(t, text, "barriers: broken=1")
	assert.Contains(t, text, "runs=2 runs_breached=2")
}

func TestRunRejectsBadInput(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(context.Background(), options{scenario: "breach_drill.yaml", runs: 0}, &out))
	assert.Error(t, run(context.Background(), options{scenario: "nope.yaml", runs: 1, ticks: 1}, &out))

	cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  level: loud\n"), 0o644))
	assert.Error(t, run(context.Background(), options{scenario: "breach_drill.yaml", config: cfgPath, runs: 1, ticks: 1}, &out))
}

func TestWatchDirsSkipsMissing(t *testing.T) {
	dir := t.TempDir()
	scenario := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(scenario, []byte("x"), 0o644))

	dirs := watchDirs(options{scenario: scenario, config: filepath.Join(dir, "c.yaml")})
	assert.Equal(t, []string{dir}, dirs)
}

func TestWatchStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	opts := options{scenario: "breach_drill.yaml", runs: 1, ticks: 10, watch: true}
	err := run(ctx, opts, &out)
	assert.ErrorIs(t, err, context.Canceled)
}
