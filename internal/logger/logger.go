// Package logger provides verbose logging for the staticfield CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users follow the indexing pipeline.
// Errors are always printed.
//
// The package wraps a logrus logger; the default text format prints
// "[LEVEL] message" lines, and SetFormat("json") switches to JSON lines.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	mu      sync.RWMutex
	verbose bool
	format  = FormatText
	log     = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&textFormatter{})
	l.SetLevel(logrus.ErrorLevel)
	return l
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.ErrorLevel)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// SetFormat selects "text" or "json" output. Unknown values select text.
func SetFormat(f string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.EqualFold(f, FormatJSON) {
		format = FormatJSON
		log.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	format = FormatText
	log.SetFormatter(&textFormatter{})
}

// Debug prints a message if verbose mode is enabled.
func Debug(msg string, args ...any) {
	log.Debugf(msg, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(msg string, args ...any) {
	log.Infof(msg, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(msg string, args ...any) {
	log.Warnf(msg, args...)
}

// Error prints an error message.
func Error(msg string, args ...any) {
	log.Errorf(msg, args...)
}

// WithFields logs msg at debug level with structured fields.
func WithFields(fields map[string]any, msg string, args ...any) {
	log.WithFields(logrus.Fields(fields)).Debugf(msg, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	if format == FormatJSON {
		log.WithField("section", name).Info(name)
		return
	}
	fmt.Fprintf(log.Out, "\n=== %s ===\n", name)
}

// textFormatter writes "[LEVEL] message key=value" lines.
type textFormatter struct{}

// Format implements logrus.Formatter.
func (f *textFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("[")
	b.WriteString(levelName(entry.Level))
	b.WriteString("] ")
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelName(l logrus.Level) string {
	switch l {
	case logrus.TraceLevel, logrus.DebugLevel:
		return "DEBUG"
	case logrus.InfoLevel:
		return "INFO"
	case logrus.WarnLevel:
		return "WARN"
	default:
		return "ERROR"
	}
}
