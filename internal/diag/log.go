package diag

import (
	"fmt"
	"sync"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

var (
	loggerOnce sync.Once
	logger     *zap.Logger
)

// Logger returns the package-level stage tracer. Compiler errors
// themselves are never routed through it — only observability events
// (stage entry/exit, worklist growth, PBT progress) per SPEC_FULL.md's
// ambient-stack logging policy.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		l, err := zap.NewProduction()
		if err != nil {
			l = zap.NewNop()
		}
		logger = l
	})
	return logger
}

// Stage returns a child logger tagged with the pipeline stage name
// (parse, link, mono, check, borrow, pbt), for tracing rather than
// error payloads.
func Stage(stage string) *zap.Logger {
	return Logger().With(zap.String("stage", stage))
}

var (
	kindColor = map[Kind]*color.Color{
		Parse:       color.New(color.FgYellow, color.Bold),
		Typing:      color.New(color.FgRed, color.Bold),
		Unsupported: color.New(color.FgMagenta, color.Bold),
		Budget:      color.New(color.FgCyan, color.Bold),
		Internal:    color.New(color.FgHiRed, color.Bold, color.Underline),
	}
)

// Pretty renders the diagnostic for a terminal: a colourised
// kind/code header followed by the message and source pointer, using
// github.com/fatih/color keyed off the closed Kind enum.
func (e *Error) Pretty() string {
	c, ok := kindColor[e.Kind]
	if !ok {
		c = color.New(color.FgWhite)
	}
	header := c.Sprintf("[%s %s]", e.Kind, e.Code)
	if e.Ptr != "" {
		return fmt.Sprintf("%s %s (%s)", header, e.Message, e.Ptr)
	}
	return fmt.Sprintf("%s %s", header, e.Message)
}
