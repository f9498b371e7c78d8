// Package render implements the terminal renderer hook: a textual snapshot
// of the current mode, pressed keys, and the top keyswitch bindings,
// printed whenever the reducer goes idle.
package render

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/keykapp/keykapp/internal/kapp"
	"github.com/keykapp/keykapp/internal/reducer"
)

// ANSI codes for the snapshot's color palette.
const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiCyan  = "\033[36m"
)

// Printer writes the idle snapshot to an underlying writer. It satisfies
// reducer.Renderer.
type Printer struct {
	out *bufio.Writer
}

// New wraps w for snapshot rendering.
func New(w io.Writer) *Printer {
	return &Printer{out: bufio.NewWriter(w)}
}

// Render writes one snapshot block in this shape:
//
//	---- Keykapp ----
//	- InputMode::<mode-name>
//	- Pressed Keys: <debug-set>
//	<Key> [<score>]: <kapp-rendering>
//	... (one line per bound KEYSWITCH with a known score)
//
// Keyswitch labels are column-aligned using go-runewidth so the
// kapp-rendering column lines up even though key names have different
// printable widths.
func (p *Printer) Render(snap reducer.Snapshot) {
	fmt.Fprintf(p.out, "%s---- Keykapp ----%s\n", ansiBold, ansiReset)
	fmt.Fprintf(p.out, "- %sInputMode::%s%s\n", ansiCyan, snap.Mode, ansiReset)
	fmt.Fprintf(p.out, "- Pressed Keys: %s\n", formatKeySet(snap.PressedKeys))

	labels := make([]string, len(snap.Bindings))
	width := 0
	for i, line := range snap.Bindings {
		labels[i] = fmt.Sprintf("%s [%d]", line.Key.Name(), line.Score)
		if w := runewidth.StringWidth(labels[i]); w > width {
			width = w
		}
	}
	for i, line := range snap.Bindings {
		fmt.Fprintf(p.out, "%s%s: %s\n", ansiDim, runewidth.FillRight(labels[i], width+1), renderWithoutDim(line))
	}
	fmt.Fprint(p.out, ansiReset)
	p.out.Flush()
}

func renderWithoutDim(line reducer.BindingLine) string {
	return ansiReset + line.Kapp.Render()
}

// formatKeySet renders the pressed-key set as a deterministic debug-style
// list: names sorted lexicographically, comma-separated, braced.
func formatKeySet(keys []kapp.Key) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.Name()
	}
	sort.Strings(names)
	return "{" + strings.Join(names, ", ") + "}"
}
