package logger

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/hungtranvg62/mlproject/apperr"
)

// Init builds the process logger. It creates dir if needed and opens a
// fresh timestamped log file inside it; all output goes to that file,
// nothing to the console. Call it once from the entry point.
func Init(dir, level string) (*zap.Logger, error) {
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperr.Wrap(apperr.KindConfig, err, "create log dir %s", dir)
	}

	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindConfig, err, "invalid log level %q", level)
		}
		lvl = parsed
	}

	name := time.Now().Format("01_02_2006_15_04_05") + ".log"
	sink := &lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    50, // MB
		MaxBackups: 3,
		MaxAge:     30, // days
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(sink), lvl)
	return zap.New(core), nil
}

// OrNop lets components accept a nil logger.
func OrNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
