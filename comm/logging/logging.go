package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Level = zapcore.Level

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

// Config 日志配置，File 为空时只输出到控制台
type Config struct {
	Level      string `yaml:"level"       toml:"level"`
	File       string `yaml:"file"        toml:"file"`
	MaxSize    int    `yaml:"max-size"    toml:"max-size"` // MB
	MaxBackups int    `yaml:"max-backups" toml:"max-backups"`
	MaxAge     int    `yaml:"max-age"     toml:"max-age"` // days
	Compress   bool   `yaml:"compress"    toml:"compress"`
	NoConsole  bool   `yaml:"no-console"  toml:"no-console"`
}

type Logger struct {
	*zap.SugaredLogger
	level zap.AtomicLevel
}

var defaultLogger = newConsoleLogger()

// GetDefaultLogger returns the process wide logger. Packages keep the returned
// pointer in a package var, Init reconfigures it in place.
func GetDefaultLogger() *Logger {
	return defaultLogger
}

// Init replaces the sinks and level of the default logger.
func Init(conf Config) error {
	l, err := NewLogger(conf)
	if err != nil {
		return err
	}
	*defaultLogger = *l
	return nil
}

func NewLogger(conf Config) (*Logger, error) {
	level := zap.NewAtomicLevelAt(InfoLevel)
	if conf.Level != "" {
		var lv zapcore.Level
		if err := lv.UnmarshalText([]byte(strings.ToLower(conf.Level))); err != nil {
			return nil, err
		}
		level.SetLevel(lv)
	}

	var cores []zapcore.Core
	if !conf.NoConsole {
		cores = append(cores, zapcore.NewCore(consoleEncoder(), zapcore.Lock(os.Stderr), level))
	}
	if conf.File != "" {
		rotate := &lumberjack.Logger{
			Filename:   conf.File,
			MaxSize:    conf.MaxSize,
			MaxBackups: conf.MaxBackups,
			MaxAge:     conf.MaxAge,
			Compress:   conf.Compress,
			LocalTime:  true,
		}
		cores = append(cores, zapcore.NewCore(fileEncoder(), zapcore.AddSync(rotate), level))
	}
	if len(cores) == 0 {
		return &Logger{SugaredLogger: zap.NewNop().Sugar(), level: level}, nil
	}
	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return &Logger{SugaredLogger: logger.Sugar(), level: level}, nil
}

func (l *Logger) SetLevel(level Level) {
	l.level.SetLevel(level)
}

func (l *Logger) Enabled(level Level) bool {
	return l.level.Enabled(level)
}

func newConsoleLogger() *Logger {
	level := zap.NewAtomicLevelAt(InfoLevel)
	core := zapcore.NewCore(consoleEncoder(), zapcore.Lock(os.Stderr), level)
	return &Logger{SugaredLogger: zap.New(core, zap.AddCaller()).Sugar(), level: level}
}

func consoleEncoder() zapcore.Encoder {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

func fileEncoder() zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(ec)
}
