package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Leveled logger shared by the gateway and the standalone validator.
// Output goes to stdout and, when SetOutputFile is called, also to a
// size-rotated file.

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	mu     sync.RWMutex
	out    io.Writer   = os.Stdout
	logger *log.Logger = log.New(out, "", 0)
	level  Level       = LevelInfo
	rot    *lumberjack.Logger
)

// ParseLevel maps a case-insensitive level name to a Level. Unknown names map to info.
func ParseLevel(l string) Level {
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// Init sets the global log level (debug, info, warn, error, fatal).
// Default level is info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	level = ParseLevel(l)
}

// SetOutputFile tees log output to path, rotating at maxSizeMB.
// An empty path restores stdout-only output.
func SetOutputFile(path string, maxSizeMB int) {
	mu.Lock()
	defer mu.Unlock()
	if rot != nil {
		_ = rot.Close()
		rot = nil
	}
	if path == "" {
		out = os.Stdout
		logger = log.New(out, "", 0)
		return
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 50
	}
	rot = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: 3,
		MaxAge:     7, // days
	}
	out = io.MultiWriter(os.Stdout, rot)
	logger = log.New(out, "", 0)
}

// Writer returns the current destination, e.g. for gin.DefaultWriter.
func Writer() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return out
}

func header(lvl string) string {
	return fmt.Sprintf("%s [%s] ", time.Now().Format(time.RFC3339), strings.ToUpper(lvl))
}

func shouldLog(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= level
}

func printf(lvl Level, name, format string, v ...interface{}) {
	if !shouldLog(lvl) {
		return
	}
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.Printf(header(name)+format, v...)
}

func Debugf(format string, v ...interface{}) { printf(LevelDebug, "debug", format, v...) }
func Infof(format string, v ...interface{})  { printf(LevelInfo, "info", format, v...) }
func Warnf(format string, v ...interface{})  { printf(LevelWarn, "warn", format, v...) }
func Errorf(format string, v ...interface{}) { printf(LevelError, "error", format, v...) }

func Fatalf(format string, v ...interface{}) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	l.Printf(header("fatal")+format, v...)
	os.Exit(1)
}

// Debug/Info/Warn/Error helpers that accept a single string
func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch level {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}
