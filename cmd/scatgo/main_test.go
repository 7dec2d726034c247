package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scatgo/scatter"
	"scatgo/scatter/mss"
)

func TestTargetsCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"targets"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "weakly scattering sphere")
	assert.Contains(t, out.String(), "mss")
}

func TestTSCommandSweep(t *testing.T) {
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"ts",
		"--target", "pressure release sphere",
		"-f", "38000,70000,120000"})

	require.NoError(t, root.Execute())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4) // header plus one row per frequency
	assert.Contains(t, lines[1], "38.0")
	assert.Contains(t, lines[3], "120.0")
}

func TestTSCommandUnknownTarget(t *testing.T) {
	root := newRootCommand()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"ts", "--target", "nope"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown target")
}

func TestBuildSweepOverridesFrequency(t *testing.T) {
	p := scatter.Params{
		"medium_c":      1477.4,
		"medium_rho":    1026.8,
		"a":             0.01,
		"f":             38000.0,
		"boundary_type": "pressure release",
	}
	table, err := buildSweep(mss.New(), p, []float64{38e3, 120e3}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	row := scatter.Params(table.RowMap(1))
	f, err := row.Float("f")
	require.NoError(t, err)
	assert.Equal(t, 120000.0, f)
}

func TestBuildSweepRejectsBadFrequency(t *testing.T) {
	p := scatter.Params{"f": 38000.0}
	_, err := buildSweep(mss.New(), p, []float64{-1}, nil)
	assert.ErrorContains(t, err, "not positive")
}
