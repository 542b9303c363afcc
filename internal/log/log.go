package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes one JSON entry per action. The interactive display owns
// stdout, so entries go to a file.
type Logger struct{ z *zap.Logger }

// New logs to file at the given level. An empty file disables logging.
func New(file, level string) (*Logger, error) {
	if file == "" {
		return Nop(), nil
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.Sampling = nil
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{file}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

func FromZap(z *zap.Logger) *Logger { return &Logger{z: z} }

func Nop() *Logger { return &Logger{z: zap.NewNop()} }

func (l *Logger) Sync() error { return l.z.Sync() }

func (l *Logger) write(level zapcore.Level, kind, action string, err error, fields map[string]any) {
	if ce := l.z.Check(level, action); ce != nil {
		zf := make([]zap.Field, 0, len(fields)+2)
		zf = append(zf, zap.String("kind", kind))
		if err != nil {
			zf = append(zf, zap.Error(err))
		}
		for k, v := range fields {
			zf = append(zf, zap.Any(k, v))
		}
		ce.Write(zf...)
	}
}

func (l *Logger) Info(action string, fields map[string]any) {
	l.write(zapcore.InfoLevel, "info", action, nil, fields)
}

// Audit records a change to the catalog or the sales log.
func (l *Logger) Audit(action string, fields map[string]any) {
	l.write(zapcore.InfoLevel, "audit", action, nil, fields)
}

func (l *Logger) Warn(action string, fields map[string]any) {
	l.write(zapcore.WarnLevel, "warn", action, nil, fields)
}

func (l *Logger) Error(action string, err error, fields map[string]any) {
	l.write(zapcore.ErrorLevel, "error", action, err, fields)
}
