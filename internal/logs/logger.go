// Package logs сборка zap-логгера приложения.
package logs

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options настройки логгера, задаются через With* функции.
type Options struct {
	level string
	name  string
}

// WithLevel задает уровень из конфигурации (debug, info, warn, error). Пустое значение
// оставляет уровень по умолчанию.
func WithLevel(level string) func(*Options) {
	return func(o *Options) {
		if level != "" {
			o.level = level
		}
	}
}

// WithName добавляет поле service в каждую запись.
func WithName(name string) func(*Options) {
	return func(o *Options) {
		o.name = name
	}
}

// New собирает логгер. При GIN_RELEASE=release пишет JSON с уровня info,
// иначе консольный вывод с уровня debug.
func New(opts ...func(*Options)) (*zap.Logger, error) {
	release := os.Getenv("GIN_RELEASE") == "release"

	conf := zap.NewDevelopmentConfig()
	if release {
		conf = zap.NewProductionConfig()
		conf.Sampling = nil
	}
	conf.EncoderConfig.TimeKey = "ts"
	conf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	conf.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	if options.level != "" {
		lvl, err := zap.ParseAtomicLevel(options.level)
		if err != nil {
			return nil, fmt.Errorf("parse level %q: %w", options.level, err)
		}
		conf.Level = lvl
	}
	if options.name != "" {
		conf.InitialFields = map[string]any{"service": options.name}
	}

	log, err := conf.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}

// MustNew как New, но паникует при ошибке. Для тестов и примеров.
func MustNew(opts ...func(*Options)) *zap.Logger {
	log, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return log
}
