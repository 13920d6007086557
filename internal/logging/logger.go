// ABOUTME: Logrus setup for the athlete CLI and MCP server.
// ABOUTME: Supports text or JSON output, level selection, and rotated log files.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupParams controls where and how logs are written.
type SetupParams struct {
	// LogFileName enables a rotated log file. ".log" is appended when missing.
	LogFileName string
	// LogToStderr also writes to stderr when a log file is set.
	LogToStderr   bool
	LogLevel      string
	LogFormatJSON bool
}

// Setup configures the standard logrus logger.
func Setup(params SetupParams) {
	Configure(logrus.StandardLogger(), params, os.Stderr)
}

// Configure applies params to l. stderr is the console destination; stdout
// is left alone because command output goes there.
func Configure(l *logrus.Logger, params SetupParams, stderr io.Writer) {
	if params.LogFormatJSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{})
	}
	l.SetLevel(GetLevel(params.LogLevel))

	if params.LogFileName == "" {
		l.SetOutput(stderr)
		return
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}

	rotated := &lumberjack.Logger{
		Filename: params.LogFileName,
		MaxSize:  50, // megabytes
		Compress: true,
	}

	if params.LogToStderr {
		l.SetOutput(NewCombinedWriter(stderr, rotated))
	} else {
		l.SetOutput(rotated)
	}
}

// GetLevel maps a level name to a logrus level. Unknown names yield warn.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.WarnLevel
	}
}
