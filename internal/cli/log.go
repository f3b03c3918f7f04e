// Package cli implements the hexmap command-line interface.
//
// The commands render map tiles and whole sectors from a TOML scene, check
// and inspect sector stylesheets, convert hex locations, serve tiles over
// HTTP, and manage the tile cache. The CLI is built using cobra and logs
// through charmbracelet/log.
//
// # Commands
//
//   - render: Render one tile to PNG, JPEG or SVG
//   - sector: Render a whole sector
//   - stylesheet: Check sector stylesheets and show resolved properties
//   - hex: Convert between sector hexes and map coordinates
//   - serve: Run the HTTP tile service
//   - browse: Pick a sector and style interactively
//   - cache: Clear the tile cache or print its location
//
// # Configuration
//
// Settings are read from hexmap.toml in the working directory or the user
// config directory; see [Config]. Flags override the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes to w at level with "15:04:05.00" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one step and logs it at Info when the step finishes.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with keyvals and the elapsed time, e.g.
// "Loaded scene path=scene.toml sectors=3 took=12ms".
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "took", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger stored by withLogger, or log.Default.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
