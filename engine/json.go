package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/google/pprof/profile"
)

// Report is the JSON rendering of a collected profile: one entry per
// distinct frame, ordered by descending cumulative sample count.
type Report struct {
	TotalSamples int64   `json:"total_samples"`
	Frames       []Frame `json:"frames"`
}

// Frame aggregates the samples attributed to one stack frame. Self
// counts samples with the frame at the top of the stack; Cumulative
// counts samples with the frame anywhere in the stack.
type Frame struct {
	Function          string  `json:"function"`
	File              string  `json:"file,omitempty"`
	Line              int64   `json:"line,omitempty"`
	Self              int64   `json:"self"`
	Cumulative        int64   `json:"cumulative"`
	SelfPercent       float64 `json:"self_percent"`
	CumulativePercent float64 `json:"cumulative_percent"`
}

func (r *renderer) json(w io.Writer, p *profile.Profile) error {
	report := buildReport(p, sampleIndex(p))

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(report)
	if err != nil {
		return fmt.Errorf("writing json report: %w", err)
	}

	return nil
}

func buildReport(p *profile.Profile, idx int) Report {
	var report Report

	type counts struct {
		self       int64
		cumulative int64
	}

	frames := map[frameKey]*counts{}

	for _, s := range p.Sample {
		value := sampleValue(s, idx)
		if value == 0 {
			continue
		}

		report.TotalSamples += value

		stack := stackFrames(s)

		// Count each frame once per sample so recursion does not
		// inflate cumulative totals.
		seen := map[frameKey]bool{}

		for i, key := range stack {
			c, ok := frames[key]
			if !ok {
				c = &counts{}
				frames[key] = c
			}

			if !seen[key] {
				seen[key] = true
				c.cumulative += value
			}

			if i == len(stack)-1 {
				c.self += value
			}
		}
	}

	total := float64(report.TotalSamples)

	for key, c := range frames {
		frame := Frame{
			Function:   key.name,
			File:       key.file,
			Line:       key.line,
			Self:       c.self,
			Cumulative: c.cumulative,
		}

		if total > 0 {
			frame.SelfPercent = float64(c.self) / total * 100
			frame.CumulativePercent = float64(c.cumulative) / total * 100
		}

		report.Frames = append(report.Frames, frame)
	}

	slices.SortFunc(report.Frames, func(a, b Frame) int {
		if a.Cumulative != b.Cumulative {
			if a.Cumulative > b.Cumulative {
				return -1
			}

			return 1
		}

		return strings.Compare(a.Function, b.Function)
	})

	return report
}
