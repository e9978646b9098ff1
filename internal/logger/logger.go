package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aliskhannn/termquiz/internal/config"
)

// New builds the application logger. Logs go to stderr so they never mix
// with the game output on stdout.
func New(cfg *config.Config) (*zap.Logger, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter builds the application logger on top of w. Entries never
// carry stack traces since stderr is shared with the messages shown to the player.
func NewWithWriter(cfg *config.Config, w io.Writer) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewDevelopmentConfig()
	encoder := zapcore.NewConsoleEncoder(zapCfg.EncoderConfig)
	if cfg.Env == "production" {
		zapCfg = zap.NewProductionConfig()
		encoder = zapcore.NewJSONEncoder(zapCfg.EncoderConfig)
	}
	zapCfg.Level = level
	zapCfg.DisableStacktrace = true

	sink := zapcore.Lock(zapcore.AddSync(w))
	opts := []zap.Option{zap.ErrorOutput(sink), zap.AddCaller()}
	if zapCfg.Development {
		opts = append(opts, zap.Development())
	}

	return zap.New(zapcore.NewCore(encoder, sink, zapCfg.Level), opts...), nil
}
