package logger

import (
	"log"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger stays a no-op until Init installs the file sink.
var Logger = zap.NewNop().Sugar()

func Init(filename, level string) {
	if filename == "" {
		filename = "log.log"
	}
	hook := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     1,
		Compress:   false,
	}
	enConfig := zap.NewProductionEncoderConfig()
	enConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	lvl := zap.DebugLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			lvl = zap.DebugLevel
		}
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(enConfig),
		zapcore.AddSync(hook),
		lvl,
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	_log := log.New(hook, "", log.LstdFlags)
	Logger = logger.Sugar()
	_log.Println("Start...")
}
