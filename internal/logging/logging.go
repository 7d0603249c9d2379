// Package logging builds the application's zap logger and bridges it
// into the libraries that expect their own logger types.
package logging

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// New returns a JSON production logger when production is true and a
// human-readable development logger otherwise.
func New(production bool) (*zap.Logger, error) {
	if production {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "time"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return cfg.Build()
	}
	return zap.NewDevelopment()
}

// GormLogger routes gorm's statement logging through zap.
// Only warnings and errors are logged and "record not found" is ignored.
func GormLogger(l *zap.Logger) gormlogger.Interface {
	return gormlogger.New(
		zap.NewStdLog(l.Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
