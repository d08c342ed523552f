package xlog

import (
	"errors"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ zapcore.Core = (*xLogCore)(nil)

// xLogCore keeps the pieces a child logger needs to rebuild the core with
// another encoder config.
type xLogCore struct {
	lvlEnabler zapcore.LevelEnabler
	lvlEnc     zapcore.LevelEncoder
	tsEnc      zapcore.TimeEncoder
	ws         zapcore.WriteSyncer
	enc        func(cfg zapcore.EncoderConfig) zapcore.Encoder
	core       zapcore.Core
}

func (cc *xLogCore) Enabled(lvl zapcore.Level) bool {
	return cc.lvlEnabler.Enabled(lvl)
}

func (cc *xLogCore) With(fields []zap.Field) zapcore.Core {
	return cc.core.With(fields)
}

func (cc *xLogCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if cc.Enabled(ent.Level) {
		return ce.AddCore(ent, cc)
	}
	return ce
}

func (cc *xLogCore) Write(ent zapcore.Entry, fields []zap.Field) error {
	return cc.core.Write(ent, fields)
}

func (cc *xLogCore) Sync() error {
	return cc.core.Sync()
}

func newXLogCore(
	lvlEnabler zapcore.LevelEnabler,
	encoder logEncoderType,
	ws zapcore.WriteSyncer,
	lvlEnc zapcore.LevelEncoder,
	tsEnc zapcore.TimeEncoder,
) *xLogCore {
	cc := &xLogCore{
		lvlEnabler: lvlEnabler,
		lvlEnc:     lvlEnc,
		tsEnc:      tsEnc,
		ws:         ws,
		enc:        getEncoderByType(encoder),
	}
	config := zapcore.EncoderConfig{
		MessageKey:    "msg",
		LevelKey:      "lvl",
		EncodeLevel:   cc.lvlEnc,
		TimeKey:       "ts",
		EncodeTime:    cc.tsEnc,
		CallerKey:     "callAt",
		EncodeCaller:  zapcore.ShortCallerEncoder,
		FunctionKey:   "fn",
		NameKey:       "component",
		EncodeName:    zapcore.FullNameEncoder,
		StacktraceKey: coreKeyIgnored,
	}
	cc.core = zapcore.NewCore(cc.enc(config), cc.ws, cc.lvlEnabler)
	return cc
}

// WrapCore rebuilds the core with cfg, keeping the writer, the encoders and
// the level enabler, so a child follows the parent's level changes.
func WrapCore(core zapcore.Core, cfg zapcore.EncoderConfig) (zapcore.Core, error) {
	cc, ok := core.(*xLogCore)
	if !ok || cc == nil {
		return nil, errors.New("[XLogger] core is not an xlog core")
	}
	cfg.EncodeLevel = cc.lvlEnc
	cfg.EncodeTime = cc.tsEnc
	wrapped := &xLogCore{
		lvlEnabler: cc.lvlEnabler,
		lvlEnc:     cc.lvlEnc,
		tsEnc:      cc.tsEnc,
		ws:         cc.ws,
		enc:        cc.enc,
	}
	wrapped.core = zapcore.NewCore(cc.enc(cfg), cc.ws, cc.lvlEnabler)
	return wrapped, nil
}

var componentCoreEncoderCfg = zapcore.EncoderConfig{
	MessageKey:    "msg",
	LevelKey:      "lvl",
	TimeKey:       "ts",
	CallerKey:     coreKeyIgnored,
	EncodeCaller:  zapcore.ShortCallerEncoder,
	FunctionKey:   coreKeyIgnored,
	NameKey:       "component",
	EncodeName:    zapcore.FullNameEncoder,
	StacktraceKey: coreKeyIgnored,
}
