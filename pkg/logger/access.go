package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewAccessLogger builds the zap logger used for the HTTP access log.
func NewAccessLogger(serviceName, environment string) *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	// Every request is logged, sampling would drop them under load.
	config.Sampling = nil

	log, err := config.Build()
	if err != nil {
		log, _ = zap.NewProduction()
	}

	return log.With(
		zap.String("service", serviceName),
		zap.String("env", environment),
	)
}
