package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/glorpus-work/dscache/pkg/download"
)

// consoleOutput receives the console progress line.
var consoleOutput io.Writer = os.Stderr

// consoleProgress redraws a single line per file.
type consoleProgress struct {
	mu   sync.Mutex
	w    io.Writer
	name func(format string, a ...interface{}) string
	pct  func(format string, a ...interface{}) string
}

func newConsoleProgress(w io.Writer) *consoleProgress {
	return &consoleProgress{
		w:    w,
		name: color.New(color.FgCyan).SprintfFunc(),
		pct:  color.New(color.FgGreen).SprintfFunc(),
	}
}

// Report prints p over the previous line and ends the line once the file is complete.
func (c *consoleProgress) Report(p download.Progress) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, _ = fmt.Fprintf(c.w, "\r%s %s / %s %s",
		c.name("%s", p.File),
		humanize.IBytes(uint64(p.Downloaded)),
		humanize.IBytes(uint64(p.Total)),
		c.pct("%5.1f%%", p.Percent),
	)
	if p.Total > 0 && p.Downloaded >= p.Total {
		_, _ = fmt.Fprintln(c.w)
	}
}
