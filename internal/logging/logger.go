package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"crudkit/internal/config"
)

// New returns a development logger, or a JSON logger teeing stdout and a
// rotated file under cfg.LogDir when GIN_MODE=release.
func New(cfg *config.Config) (*zap.Logger, error) {
	fields := zap.Fields(
		zap.String("app", cfg.AppName),
		zap.String("instance", cfg.InstanceID),
	)
	if os.Getenv("GIN_MODE") != "release" {
		return zap.NewDevelopment(fields)
	}

	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, err
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.NewMultiWriteSyncer(
			zapcore.AddSync(os.Stdout),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   filepath.Join(cfg.LogDir, cfg.AppName+".log"),
				MaxSize:    50,
				MaxBackups: 5,
				MaxAge:     14,
				Compress:   true,
			}),
		),
		zap.InfoLevel,
	)
	return zap.New(core, fields), nil
}
