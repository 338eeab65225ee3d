package llmjson

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"
)

// Dumper persists malformed model output for offline inspection.
// Writes are best-effort: a failed dump is logged and swallowed, never
// surfaced to the pipeline. Each dump gets a ULID-based file name so
// concurrent paragraph workers cannot interleave into one file.
type Dumper struct {
	Dir string
}

// Write saves raw under Dir with a unique name. kind distinguishes
// recovery failures from strict-parse failures. A nil Dumper or empty
// Dir disables dumping.
func (d *Dumper) Write(kind, raw string) {
	if d == nil || d.Dir == "" {
		return
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		slog.Warn("llmjson: creating dump dir failed", "dir", d.Dir, "error", err)
		return
	}
	name := kind + "-" + ulid.Make().String() + ".txt"
	path := filepath.Join(d.Dir, name)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		slog.Warn("llmjson: writing dump failed", "path", path, "error", err)
		return
	}
	slog.Debug("llmjson: dumped malformed output", "path", path, "bytes", len(raw))
}
