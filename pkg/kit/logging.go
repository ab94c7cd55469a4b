package kit

import (
	"go.uber.org/zap"
)

// NewLogger builds the production JSON logger. An empty level means info.
func NewLogger(service, level string) (*zap.Logger, error) {
	return newLogger(service, level, nil)
}

// NewFileLogger is NewLogger writing to path instead of stderr.
func NewFileLogger(service, level, path string) (*zap.Logger, error) {
	return newLogger(service, level, []string{path})
}

func newLogger(service, level string, paths []string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.InitialFields = map[string]any{"service": service}
	if len(paths) > 0 {
		cfg.OutputPaths = paths
		cfg.ErrorOutputPaths = paths
	}

	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = lvl
	}

	return cfg.Build()
}
