package ipn

import (
	"os"
	"sync"
	"time"
)

// AuditTimeFormat is the cookie-style timestamp prefixed to audit lines.
const AuditTimeFormat = "Monday, 02-Jan-2006 15:04:05 MST"

// AuditSink receives human-readable audit lines. Appends are best-effort.
type AuditSink interface {
	Append(line string)
}

// NopAuditSink discards every line.
type NopAuditSink struct{}

func (NopAuditSink) Append(string) {}

// FileAuditSink appends timestamped lines to a file. Write errors are ignored.
type FileAuditSink struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// NewFileAuditSink returns a sink for path. The file is opened per line, so
// it may be rotated or removed while the listener runs.
func NewFileAuditSink(path string) *FileAuditSink {
	return &FileAuditSink{path: path, now: time.Now}
}

func (s *FileAuditSink) Append(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	_, _ = f.WriteString(s.now().Format(AuditTimeFormat) + " " + line + "\n")
}
