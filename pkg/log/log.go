package log

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger *zap.Logger

type Options struct {
	Production bool
	// File enables a rotated JSON copy of every entry; empty disables it.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

func InitProd() *zap.Logger {
	return initLogger(zap.NewProductionConfig(), Options{})
}

func InitDev() *zap.Logger {
	return initLogger(zap.NewDevelopmentConfig(), Options{})
}

func Init(options Options) *zap.Logger {
	if options.Production {
		return initLogger(zap.NewProductionConfig(), options)
	}
	return initLogger(zap.NewDevelopmentConfig(), options)
}

func initLogger(config zap.Config, options Options) *zap.Logger {
	var err error
	buildOptions := []zap.Option{zap.AddStacktrace(zap.WarnLevel)}
	if options.File != "" {
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   options.File,
				MaxSize:    options.MaxSizeMB,
				MaxBackups: options.MaxBackups,
				Compress:   true,
			}),
			config.Level,
		)
		buildOptions = append(buildOptions, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
	}

	logger, err = config.Build(buildOptions...)
	if err != nil {
		fmt.Printf("Failed to init zap logger: %v", err)
		os.Exit(1)
	}
	zap.ReplaceGlobals(logger)
	return logger
}

func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
