package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Layr-Labs/vyperkit/pkg/common/iface"
	"golang.org/x/term"
)

// IsTTY reports whether stdout is attached to a terminal
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TTYProgressTracker redraws one bar per task in place
type TTYProgressTracker struct {
	mu         sync.Mutex
	rows       *rowSet
	linesDrawn int
	target     io.Writer
}

func NewTTYProgressTracker(max int, target io.Writer) *TTYProgressTracker {
	return &TTYProgressTracker{
		rows:   newRowSet(max),
		target: target,
	}
}

func (t *TTYProgressTracker) ProgressRows() []iface.ProgressRow {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rows.snapshot()
}

func (t *TTYProgressTracker) Set(id string, pct int, label string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows.set(id, pct, label)
}

func (t *TTYProgressTracker) Render() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.linesDrawn > 0 {
		fmt.Fprintf(t.target, "\033[%dA", t.linesDrawn)
	}
	t.linesDrawn = 0

	for _, id := range t.rows.order {
		info := t.rows.progress[id]
		fmt.Fprintf(t.target, "\r\033[K%s %s %3d%% %s\n", info.Timestamp, buildBar(info.Percentage), info.Percentage, info.DisplayText)
		t.linesDrawn++
	}
}

func (t *TTYProgressTracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows.reset()
	t.linesDrawn = 0
}

func buildBar(pct int) string {
	const total = 20
	pct = clamp(pct)
	filled := pct * total / 100
	return fmt.Sprintf("[%s%s]", strings.Repeat("=", filled), strings.Repeat(" ", total-filled))
}

// rowSet keeps per-task progress in insertion order. Progress never moves
// backwards and at most max tasks are tracked.
type rowSet struct {
	progress map[string]*iface.ProgressInfo
	order    []string
	max      int
}

func newRowSet(max int) *rowSet {
	return &rowSet{
		progress: make(map[string]*iface.ProgressInfo),
		order:    make([]string, 0, max),
		max:      max,
	}
}

func (r *rowSet) set(id string, pct int, label string) bool {
	pct = clamp(pct)
	ts := time.Now().Format("2006/01/02 15:04:05")
	if info, ok := r.progress[id]; ok {
		if info.Percentage >= pct {
			return false
		}
		info.Percentage, info.DisplayText, info.Timestamp = pct, label, ts
		return true
	}
	if len(r.progress) >= r.max {
		return false
	}
	r.progress[id] = &iface.ProgressInfo{Percentage: pct, DisplayText: label, Timestamp: ts}
	r.order = append(r.order, id)
	return true
}

func (r *rowSet) snapshot() []iface.ProgressRow {
	rows := make([]iface.ProgressRow, 0, len(r.order))
	for _, id := range r.order {
		info := r.progress[id]
		rows = append(rows, iface.ProgressRow{Module: id, Pct: info.Percentage, Label: info.DisplayText})
	}
	return rows
}

func (r *rowSet) reset() {
	r.progress = make(map[string]*iface.ProgressInfo)
	r.order = r.order[:0]
}

func clamp(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
