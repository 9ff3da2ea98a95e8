// Package ftplog provides the ambient structured logger for the DCE/FSR,
// grounded in rclone's fs/log: a slog.Logger with syslog-style custom
// levels (NOTICE, CRITICAL, ALERT, EMERGENCY) layered on top of the
// standard Debug/Info/Warn/Error levels, since proftpd's own log facility
// (pr_log_pri) distinguishes more than slog's four built-in levels.
package ftplog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Custom slog levels filling the gaps between slog's four built-in
// levels and syslog's eight priorities, mirroring fs.SlogLevelNotice et
// al. from the teacher's fs/log package.
const (
	LevelNotice    = slog.LevelInfo + 2
	LevelCritical  = slog.LevelError + 2
	LevelAlert     = slog.LevelError + 4
	LevelEmergency = slog.LevelError + 6
)

// levelNames maps the custom levels (and the four built-ins) to the text
// a handler should render, the same table slogLevelToString builds in the
// teacher repo.
var levelNames = map[slog.Level]string{
	slog.LevelDebug: "DEBUG",
	slog.LevelInfo:  "INFO",
	LevelNotice:     "NOTICE",
	slog.LevelWarn:  "WARNING",
	slog.LevelError: "ERROR",
	LevelCritical:   "CRITICAL",
	LevelAlert:      "ALERT",
	LevelEmergency:  "EMERGENCY",
}

// levelToString renders level as proftpd-style text, falling back to
// slog's own String() for anything not in the table.
func levelToString(level slog.Level) string {
	if s, ok := levelNames[level]; ok {
		return s
	}
	return level.String()
}

// replaceLevel lowercases and textualizes slog.LevelKey attrs so the JSON
// handler emits "notice"/"critical"/... instead of raw integer offsets
// from slog.LevelInfo, mirroring mapLogLevelNames in the teacher repo.
func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	return slog.String(slog.LevelKey, strings.ToLower(levelToString(level)))
}

// New builds the process logger: JSON to stderr when jsonOutput is true
// (container/systemd friendly), human-readable text otherwise.
func New(jsonOutput bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevel,
	}
	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// Logf is the printf-style convenience wrapper for callers that want a
// simple message instead of constructing slog.Attr values by hand,
// mirroring fs.Logf's calling convention. In this module only
// cmd/proftpd-datad calls it; packages data and vfs do not log.
func Logf(ctx context.Context, logger *slog.Logger, level slog.Level, format string, args ...any) {
	if len(args) == 0 {
		logger.Log(ctx, level, format)
		return
	}
	logger.Log(ctx, level, fmt.Sprintf(format, args...))
}
