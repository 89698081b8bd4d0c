package cli

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/baaaaaaaka/cmdterm/logsink"
)

// newLogger builds a logger writing into sink and, when logFile is set, as
// JSON lines into that file.
func newLogger(sink *logsink.Sink, logFile string) (*zap.Logger, func(), error) {
	cores := []zapcore.Core{sink.Core(logsink.TraceLevel)}
	closeFile := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(enc, zapcore.Lock(f), logsink.TraceLevel))
		closeFile = func() { _ = f.Close() }
	}
	logger := zap.New(zapcore.NewTee(cores...))
	return logger, func() {
		_ = logger.Sync()
		closeFile()
	}, nil
}
