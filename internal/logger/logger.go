package logger

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	global *zap.Logger = zap.NewNop()
	once   sync.Once
)

// Config controls where the log file lives and how it rotates.
// The TUI owns stdout, so everything goes to a file.
type Config struct {
	Level      string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init sets up the process-wide logger. Safe to call more than once;
// only the first call wins.
func Init(cfg Config) {
	once.Do(func() {
		level := zapcore.InfoLevel
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			level = zapcore.InfoLevel
		}

		path := cfg.Path
		if path == "" {
			cache, err := os.UserCacheDir()
			if err != nil {
				cache = "."
			}
			path = filepath.Join(cache, "audio-band", "audio-band.log")
		}

		encCfg := zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}

		sink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    max(cfg.MaxSizeMB, 10),
			MaxBackups: max(cfg.MaxBackups, 3),
			MaxAge:     max(cfg.MaxAgeDays, 14),
			Compress:   true,
		})

		core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, level)
		global = zap.New(core, zap.AddCaller())
	})
}

// L returns the process-wide logger. Before Init it is a nop logger.
func L() *zap.Logger {
	return global
}

// S returns the sugared form of L.
func S() *zap.SugaredLogger {
	return global.Sugar()
}
