// internal/logging/logging.go
// Package logging routes the standard logger to stdout and an optional log file.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	logFile *os.File
	quiet   bool
)

// SetQuiet keeps log lines off stdout on the next Init. The TUI owns the terminal, so it
// logs to the file only.
func SetQuiet(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// Init points the standard logger at stdout (unless quiet) and at logPath when set.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	if !quiet {
		writers = append(writers, os.Stdout)
	}

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	if len(writers) == 0 {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close releases the log file and restores stderr output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogViolation records why a model record was kept off the leaderboard.
func LogViolation(source, model, detail string) {
	log.Println(buildViolationMessage(source, model, detail))
}

// LogRequest records one served API request.
func LogRequest(method, path string, status int, latency time.Duration, payload any) {
	log.Println(buildRequestMessage(method, path, status, latency, payload))
}

func buildViolationMessage(source, model, detail string) string {
	model = strings.TrimSpace(model)
	if model == "" {
		model = "unknown"
	}
	return fmt.Sprintf("[INVALID] source=%s model=%s %s", strings.TrimSpace(source), model, strings.TrimSpace(detail))
}

func buildRequestMessage(method, path string, status int, latency time.Duration, payload any) string {
	m := strings.ToUpper(strings.TrimSpace(method))
	if m == "" {
		m = "UNKNOWN"
	}
	p := strings.TrimSpace(path)
	if p == "" {
		p = "/"
	}
	parts := []string{
		"[HTTP]",
		fmt.Sprintf("method=%s", m),
		fmt.Sprintf("path=%s", p),
		fmt.Sprintf("status=%d", status),
		fmt.Sprintf("latency=%s", latency.Round(time.Microsecond)),
	}
	if payload != nil {
		parts = append(parts, fmt.Sprintf("payload=%s", formatPayload(payload)))
	}
	return strings.Join(parts, " ")
}

func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(v) == 0 {
			return "[]"
		}
		return string(v)
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
