package xlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AntsXLogger adapts an XLogger to the ants pool logger. The pool only
// reports worker panics, so everything goes out at error level.
type AntsXLogger struct {
	logger XLogger
}

func (l *AntsXLogger) Printf(format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Logf(zapcore.ErrorLevel, format, args...)
}

func NewAntsXLogger(logger XLogger) *AntsXLogger {
	l := &xLogger{}
	if parent, ok := logger.(*xLogger); ok {
		l.dynamicLevelEnabler = parent.dynamicLevelEnabler
		l.encoder = parent.encoder
	}
	l.logger.Store(logger.
		zap().
		Named("Ants").
		WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			if core == nil {
				panic("[XLogger] core is nil")
			}
			cc, err := WrapCore(core, componentCoreEncoderCfg)
			if err != nil {
				panic(err)
			}
			return cc
		})),
	)
	return &AntsXLogger{
		logger: l,
	}
}
