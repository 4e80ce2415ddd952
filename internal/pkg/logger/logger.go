package logger

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Encodings accepted by New.
const (
	EncodingJSON    = "json"
	EncodingConsole = "console"
)

var (
	Log      *zap.Logger
	onceInit sync.Once
)

// Init builds the process logger once. Later calls return the first result.
func Init(level zapcore.Level, encoding string, meta ...zap.Field) error {
	var initErr error
	onceInit.Do(func() {
		instance, err := New(level, encoding, meta...)
		if err != nil {
			initErr = err
			return
		}
		Log = instance
	})
	if initErr != nil {
		return initErr
	}

	if Log == nil {
		return errors.New("logger not initialized")
	}

	return nil
}

// New builds a logger at level with meta attached to every entry. Release
// deployments log JSON lines for the collector; local runs get coloured
// console output.
func New(level zapcore.Level, encoding string, meta ...zap.Field) (*zap.Logger, error) {
	cfg, err := configure(level, encoding)
	if err != nil {
		return nil, err
	}
	instance, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return instance.With(meta...), nil
}

func configure(level zapcore.Level, encoding string) (zap.Config, error) {
	var encoder zapcore.EncoderConfig
	switch encoding {
	case EncodingJSON:
		encoder = zap.NewProductionEncoderConfig()
		encoder.TimeKey = "ts"
		encoder.MessageKey = "message"
		encoder.EncodeTime = zapcore.RFC3339NanoTimeEncoder
		encoder.EncodeDuration = zapcore.MillisDurationEncoder
	case EncodingConsole:
		encoder = zap.NewDevelopmentEncoderConfig()
		encoder.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		encoder.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder.EncodeDuration = zapcore.StringDurationEncoder
	default:
		return zap.Config{}, errors.Errorf("unknown log encoding %q", encoding)
	}
	encoder.EncodeCaller = zapcore.ShortCallerEncoder

	return zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       encoding == EncodingConsole,
		DisableStacktrace: level > zapcore.DebugLevel,
		Encoding:          encoding,
		EncoderConfig:     encoder,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}, nil
}
