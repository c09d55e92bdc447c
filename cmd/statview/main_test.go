package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/pprof/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcstoolkit/statprof"
	"github.com/vcstoolkit/statprof/engine"
)

func writeProfile(t *testing.T) string {
	t.Helper()

	fn := &profile.Function{ID: 1, Name: "main.work", Filename: "main.go", StartLine: 10}
	loc := &profile.Location{ID: 1, Line: []profile.Line{{Function: fn, Line: 12}}}

	p := &profile.Profile{
		SampleType: []*profile.ValueType{{Type: "samples", Unit: "count"}},
		Sample: []*profile.Sample{
			{Location: []*profile.Location{loc}, Value: []int64{42}},
		},
		Location: []*profile.Location{loc},
		Function: []*profile.Function{fn},
	}

	path := filepath.Join(t.TempDir(), "cpu.pb.gz")

	f, err := os.Create(path)
	require.NoError(t, err)

	require.NoError(t, p.Write(f))
	require.NoError(t, f.Close())

	return path
}

func TestRun_Hotpath(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := run(&buf, writeProfile(t), string(statprof.FormatHotpath), engine.DefaultMinPercent)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "total samples: 42")
	assert.Contains(t, buf.String(), "main.work")
}

func TestRun_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := run(&buf, writeProfile(t), string(statprof.FormatJSON), engine.DefaultMinPercent)
	require.NoError(t, err)

	var report engine.Report

	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, int64(42), report.TotalSamples)
}

func TestRun_UnknownFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := run(&buf, writeProfile(t), "xml", engine.DefaultMinPercent)
	require.ErrorIs(t, err, statprof.ErrUnknownFormat)
}

func TestRun_MissingProfile(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := run(&buf, filepath.Join(t.TempDir(), "absent.pb.gz"), string(statprof.FormatHotpath), 0.5)
	require.ErrorContains(t, err, "opening profile")
}
