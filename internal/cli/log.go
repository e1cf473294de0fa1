package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/familytower/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time appended as a field.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

// =============================================================================
// Observability hooks
// =============================================================================

// logHooks forwards pipeline and cache events to the debug log.
type logHooks struct {
	logger *log.Logger
}

// installLogHooks registers logHooks for the pipeline and cache events.
func installLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
}

func (h logHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("load start", "source", source)
}

func (h logHooks) OnLoadComplete(_ context.Context, source string, people, marriages int, d time.Duration, err error) {
	h.logger.Debug("load done", "source", source, "people", people, "marriages", marriages, "elapsed", d, "err", err)
}

func (h logHooks) OnLayoutStart(_ context.Context, orientation string, people int) {
	h.logger.Debug("layout start", "orientation", orientation, "people", people)
}

func (h logHooks) OnLayoutComplete(_ context.Context, orientation string, nodes, edges int, d time.Duration, err error) {
	h.logger.Debug("layout done", "orientation", orientation, "nodes", nodes, "edges", edges, "elapsed", d, "err", err)
}

func (h logHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render done", "formats", formats, "elapsed", d, "err", err)
}

func (h logHooks) OnCacheHit(_ context.Context, kind string)  { h.logger.Debug("cache hit", "kind", kind) }
func (h logHooks) OnCacheMiss(_ context.Context, kind string) { h.logger.Debug("cache miss", "kind", kind) }

func (h logHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}

var (
	_ observability.PipelineHooks = logHooks{}
	_ observability.CacheHooks    = logHooks{}
)
