package logger

import (
	"encoding/json"
	"io"
	"net"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelError = "ERROR"
)

type Logger struct {
	service  string
	hostname string
	debug    bool

	mu  *sync.Mutex
	out io.Writer
}

func New(service string) *Logger { return NewWithWriter(service, os.Stdout) }

func NewWithWriter(service string, w io.Writer) *Logger {
	return &Logger{service: service, hostname: hostname(), out: w, mu: &sync.Mutex{}, debug: true}
}

// SetLevel accepts "debug" or "info"; unknown values keep debug output on.
func (l *Logger) SetLevel(level string) {
	l.debug = !strings.EqualFold(strings.TrimSpace(level), "info")
}

// With returns a logger for another service name sharing the same output.
func (l *Logger) With(service string) *Logger {
	cp := *l
	cp.service = service
	return &cp
}

func (l *Logger) log(level, requestID, action, msg string, fields map[string]any, err error) {
	entry := map[string]any{
		"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		"level":      level,
		"service":    l.service,
		"action":     action,
		"message":    msg,
		"hostname":   l.hostname,
		"request_id": requestID,
	}
	for k, v := range fields {
		entry[k] = v
	}
	if err != nil {
		entry["error"] = map[string]any{"msg": err.Error(), "stack": string(debug.Stack())}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = json.NewEncoder(l.out).Encode(entry)
}

func (l *Logger) Info(requestID, action, msg string, fields map[string]any) {
	l.log(LevelInfo, requestID, action, msg, fields, nil)
}

func (l *Logger) Debug(requestID, action, msg string, fields map[string]any) {
	if !l.debug {
		return
	}
	l.log(LevelDebug, requestID, action, msg, fields, nil)
}

func (l *Logger) Error(requestID, action, msg string, err error, fields map[string]any) {
	l.log(LevelError, requestID, action, msg, fields, err)
}

func hostname() string {
	if h, err := os.Hostname(); err == nil && h != "" {
		return h
	}
	addrs, _ := net.InterfaceAddrs()
	if len(addrs) > 0 {
		return addrs[0].String()
	}
	return "unknown-host"
}
