package engine

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/google/pprof/profile"
	"golang.org/x/term"

	"github.com/vcstoolkit/statprof"
)

// DefaultMinPercent is the hotpath pruning threshold: branches holding
// less than this percentage of total samples are not printed.
const DefaultMinPercent = 0.5

// RenderOption configures [Render].
type RenderOption func(*renderer)

// WithMinPercent prunes hotpath branches below pct percent of total
// samples.
func WithMinPercent(pct float64) RenderOption {
	return func(r *renderer) {
		r.minPercent = pct
	}
}

// WithWidth clamps hotpath lines to width columns. Zero or negative
// disables clamping. By default the terminal width is used when w is a
// terminal.
func WithWidth(width int) RenderOption {
	return func(r *renderer) {
		r.width = width
	}
}

// Render writes p to w in the given format. It is used by
// [Engine.Display] and by tools rendering profiles collected elsewhere.
func Render(w io.Writer, p *profile.Profile, format statprof.Format, opts ...RenderOption) error {
	r := &renderer{
		minPercent: DefaultMinPercent,
		width:      terminalWidth(w),
	}

	for _, opt := range opts {
		opt(r)
	}

	switch format {
	case statprof.FormatHotpath:
		return r.hotpath(w, p)
	case statprof.FormatJSON:
		return r.json(w, p)
	}

	return fmt.Errorf("%w: %s", statprof.ErrUnknownFormat, format)
}

type renderer struct {
	minPercent float64
	width      int
}

// frameKey identifies one stack frame across samples.
type frameKey struct {
	name string
	file string
	line int64
}

// location formats the frame's source position, or "" when unknown.
func (k frameKey) location() string {
	if k.file == "" {
		return ""
	}

	return fmt.Sprintf("%s:%d", k.file, k.line)
}

// node is one branch of the hotpath call tree, keyed by frame.
type node struct {
	key      frameKey
	value    int64
	children map[frameKey]*node
}

func (n *node) child(key frameKey) *node {
	c, ok := n.children[key]
	if !ok {
		c = &node{key: key, children: map[frameKey]*node{}}
		n.children[key] = c
	}

	return c
}

// sorted returns the children ordered by descending sample count, then
// by name for stable output.
func (n *node) sorted() []*node {
	out := make([]*node, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}

	slices.SortFunc(out, func(a, b *node) int {
		if a.value != b.value {
			if a.value > b.value {
				return -1
			}

			return 1
		}

		return strings.Compare(a.key.name, b.key.name)
	})

	return out
}

func (r *renderer) hotpath(w io.Writer, p *profile.Profile) error {
	idx := sampleIndex(p)
	root := buildTree(p, idx)

	if root.value == 0 {
		_, err := fmt.Fprintln(w, "no samples recorded")

		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "total samples: %d\n", root.value)

	r.printTree(bw, root, 0, float64(root.value))

	err := bw.Flush()
	if err != nil {
		return fmt.Errorf("writing hotpath report: %w", err)
	}

	return nil
}

func (r *renderer) printTree(bw *bufio.Writer, n *node, depth int, total float64) {
	for _, child := range n.sorted() {
		pct := float64(child.value) / total * 100
		if pct < r.minPercent {
			continue
		}

		line := fmt.Sprintf("%s%6.2f%%  %s", strings.Repeat("  ", depth), pct, child.key.name)
		if loc := child.key.location(); loc != "" {
			line += "  (" + loc + ")"
		}

		if r.width > 0 {
			if runes := []rune(line); len(runes) > r.width {
				line = string(runes[:r.width])
			}
		}

		fmt.Fprintln(bw, line)

		r.printTree(bw, child, depth+1, total)
	}
}

// buildTree aggregates samples into a call tree rooted at program entry
// points. Sample stacks in pprof profiles are leaf-first, so each stack
// is walked in reverse.
func buildTree(p *profile.Profile, idx int) *node {
	root := &node{children: map[frameKey]*node{}}

	for _, s := range p.Sample {
		value := sampleValue(s, idx)
		if value == 0 {
			continue
		}

		root.value += value

		n := root
		for _, key := range stackFrames(s) {
			n = n.child(key)
			n.value += value
		}
	}

	return root
}

// stackFrames returns the sample's frames ordered root first, expanding
// inlined frames.
func stackFrames(s *profile.Sample) []frameKey {
	var out []frameKey

	for i := len(s.Location) - 1; i >= 0; i-- {
		loc := s.Location[i]

		if len(loc.Line) == 0 {
			out = append(out, frameKey{name: fmt.Sprintf("0x%x", loc.Address)})

			continue
		}

		// Line entries are innermost-first.
		for j := len(loc.Line) - 1; j >= 0; j-- {
			ln := loc.Line[j]
			if ln.Function == nil {
				out = append(out, frameKey{name: fmt.Sprintf("0x%x", loc.Address)})

				continue
			}

			out = append(out, frameKey{
				name: ln.Function.Name,
				file: ln.Function.Filename,
				line: ln.Line,
			})
		}
	}

	return out
}

// sampleIndex picks the value column holding sample counts. CPU and
// fgprof profiles both carry a samples/count column first; fall back to
// the first column otherwise.
func sampleIndex(p *profile.Profile) int {
	for i, st := range p.SampleType {
		if st.Unit == "count" {
			return i
		}
	}

	return 0
}

func sampleValue(s *profile.Sample, idx int) int64 {
	if idx >= len(s.Value) {
		return 0
	}

	return s.Value[idx]
}

// terminalWidth reports the column width of w when it is a terminal,
// and zero otherwise.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}

	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}

	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}

	return width
}
