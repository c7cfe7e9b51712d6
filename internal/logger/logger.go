package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It discards everything until Init runs.
var Log = zap.NewNop()

type Options struct {
	Level string
	File  string
}

var levelNames = map[string]zapcore.Level{
	"DEBUG":    zapcore.DebugLevel,
	"INFO":     zapcore.InfoLevel,
	"WARN":     zapcore.WarnLevel,
	"WARNING":  zapcore.WarnLevel,
	"ERROR":    zapcore.ErrorLevel,
	"CRITICAL": zapcore.FatalLevel,
	"FATAL":    zapcore.FatalLevel,
}

func ParseLevel(name string) (zapcore.Level, error) {
	if name == "" {
		return zapcore.InfoLevel, nil
	}

	lvl, ok := levelNames[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return zapcore.InfoLevel, fmt.Errorf("unknown log level: %s", name)
	}

	return lvl, nil
}

// Init builds Log from opts: console on stderr, plus an append-only file
// when opts.File is set.
func Init(opts Options) error {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return err
	}

	sinks := []zapcore.WriteSyncer{zapcore.Lock(os.Stderr)}

	if opts.File != "" {
		ws, _, err := zap.Open(opts.File)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		sinks = append(sinks, ws)
	}

	Log = Build(lvl, sinks...)
	return nil
}

// Build tees one core per sink, all sharing the
// "timestamp - LEVEL - message" layout.
func Build(lvl zapcore.Level, sinks ...zapcore.WriteSyncer) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(encoderConfig())

	cores := make([]zapcore.Core, 0, len(sinks))
	for _, ws := range sinks {
		cores = append(cores, zapcore.NewCore(enc.Clone(), ws, lvl))
	}

	return zap.New(zapcore.NewTee(cores...))
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      levelEncoder,
		EncodeTime:       zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000"),
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " - ",
	}
}

func levelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch l {
	case zapcore.WarnLevel:
		enc.AppendString("WARNING")
	case zapcore.FatalLevel:
		enc.AppendString("CRITICAL")
	default:
		zapcore.CapitalLevelEncoder(l, enc)
	}
}

func Sync() {
	_ = Log.Sync()
}
