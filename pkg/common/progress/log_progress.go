package progress

import (
	"sync"

	"github.com/Layr-Labs/vyperkit/pkg/common/iface"
)

// LogProgressTracker reports progress through a logger, one line per update
type LogProgressTracker struct {
	mu     sync.Mutex
	logger iface.Logger
	rows   *rowSet
}

func NewLogProgressTracker(max int, logger iface.Logger) *LogProgressTracker {
	return &LogProgressTracker{
		logger: logger,
		rows:   newRowSet(max),
	}
}

func (s *LogProgressTracker) ProgressRows() []iface.ProgressRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows.snapshot()
}

func (s *LogProgressTracker) Set(id string, pct int, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rows.set(id, pct, label) {
		s.logger.Info("%s: %d%% %s", id, clamp(pct), label)
	}
}

// Render is a no-op, every update is already logged by Set
func (s *LogProgressTracker) Render() {}

func (s *LogProgressTracker) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows.reset()
}
