// Package logger holds the process-wide logrus logger shared by dbrec packages.
package logger

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var std atomic.Pointer[logrus.Logger]

func init() {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	std.Store(l)
}

// Default returns the logger used by dbrec.
func Default() *logrus.Logger {
	return std.Load()
}

// SetDefault replaces the logger used by dbrec. A nil logger is ignored.
func SetDefault(l *logrus.Logger) {
	if l == nil {
		return
	}
	std.Store(l)
}

type FileConfig struct {
	Filename   string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
	Level      logrus.Level
}

// NewFile builds a JSON logger writing to a rotating file.
func NewFile(cfg FileConfig) *logrus.Logger {
	if cfg.Filename == "" {
		cfg.Filename = "./logs/dbrec-" + time.Now().Format("20060102") + ".log"
	}
	if cfg.MaxSize == 0 {
		cfg.MaxSize = 100
	}
	if cfg.MaxBackups == 0 {
		cfg.MaxBackups = 7
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = 30
	}
	if cfg.Level == 0 {
		cfg.Level = logrus.InfoLevel
	}
	return newLogger(&lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}, cfg.Level)
}

func newLogger(w io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(w)
	l.SetLevel(level)
	return l
}

var quiet struct {
	sync.Mutex
	depth int
	l     *logrus.Logger
	prev  logrus.Level
}

// Quiet narrows the default logger to fatal-only and returns a func undoing it.
// Overlapping calls nest: the level captured by the outermost call is restored
// once every returned func has run. Each restore func is idempotent.
func Quiet() (restore func()) {
	quiet.Lock()
	defer quiet.Unlock()
	if quiet.depth == 0 {
		quiet.l = Default()
		quiet.prev = quiet.l.GetLevel()
		quiet.l.SetLevel(logrus.FatalLevel)
	}
	quiet.depth++

	var once sync.Once
	return func() {
		once.Do(func() {
			quiet.Lock()
			defer quiet.Unlock()
			quiet.depth--
			if quiet.depth == 0 {
				quiet.l.SetLevel(quiet.prev)
				quiet.l = nil
			}
		})
	}
}
