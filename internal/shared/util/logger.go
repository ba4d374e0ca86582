package util

import (
	"fmt"
	"log"
	"os"
	"time"
)

var (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	White  = "\033[37m"
)

// Logger writes leveled, instance-tagged lines to stdout. The service
// runs as a single process, so there is no per-request logger; handlers
// share the one instance wired in at startup.
type Logger struct {
	std *log.Logger
}

func New() *Logger {
	// Timestamps are printed by printf, not the stdlib logger.
	return &Logger{std: log.New(os.Stdout, "", 0)}
}

func (l *Logger) Info(instance, message string) {
	l.printf(Green, "INFO", instance, message)
}

func (l *Logger) Warn(instance, message string) {
	l.printf(Yellow, "WARN", instance, message)
}

func (l *Logger) Error(instance string, err error) {
	l.printf(Red, "ERROR", instance, err.Error())
}

func (l *Logger) Fatal(instance string, err error) {
	l.printf(Red, "FATAL", instance, err.Error())
	os.Exit(1)
}

func (l *Logger) OK(instance, message string) {
	l.printf(Green, "OK", instance, message)
}

func (l *Logger) printf(color, level, instance, message string) {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	l.std.Printf("%s|%s|%s %-5s%s | %-15s | %s\n",
		Reset, timestamp, color, level, Reset, instance, message)
}

// HTTP logs one access line per request. The API is read-only, so GET
// gets the only dedicated color; anything else stands out as the
// oddball it is.
func (l *Logger) HTTP(status int, elapsed time.Duration, host, method, path string) {
	l.std.Printf("|%s| %7s | %-20s | %s %s\n",
		paintStatus(status), elapsed, host, paintMethod(method), path)
}

func paintMethod(method string) string {
	color := White
	if method == "GET" {
		color = Blue
	}
	return color + fmt.Sprintf("%-6s", method) + Reset
}

func paintStatus(code int) string {
	var color string
	switch {
	case code >= 200 && code < 300:
		color = Green
	case code >= 400 && code < 500:
		color = Yellow
	case code >= 500:
		color = Red
	default:
		color = White
	}
	return color + fmt.Sprintf("%d", code) + Reset
}
