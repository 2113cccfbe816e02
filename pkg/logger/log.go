package logger

import "go.uber.org/zap"

// NewLogger writes to stdout and ./logs/app.log at the same time.
func NewLogger() *zap.Logger {
	dualConfig := zap.Config{
		Encoding:         "console",
		Level:            zap.NewAtomicLevelAt(zap.DebugLevel),
		OutputPaths:      []string{"stdout", "./logs/app.log"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}

	dualLogger, err := dualConfig.Build()
	if err != nil {
		panic(err)
	}

	return dualLogger
}

// Named returns a child logger for a subsystem.
func Named(base *zap.Logger, name string) *zap.Logger {
	return base.Named(name)
}
