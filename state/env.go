// Package state defines shared program state.
package state

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"pseudosel/config"
	"pseudosel/css"
	"pseudosel/selector"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Log *zap.Logger

	// stylesheet parsers are built lazily, one per origin
	parsers map[selector.Origin]*css.Parser

	start         time.Time
	restoreStdLog func()
}

func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:   time.Now(),
		parsers: make(map[selector.Origin]*css.Parser),
	}
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// StylesheetParser returns parser configured for stylesheets of the given
// origin.
func (e *LocalEnv) StylesheetParser(origin selector.Origin) (*css.Parser, error) {
	if p, ok := e.parsers[origin]; ok {
		return p, nil
	}
	if e.Cfg == nil {
		return nil, errors.New("configuration is not loaded")
	}
	opts, err := e.Cfg.ParserOptions(origin)
	if err != nil {
		return nil, err
	}
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}
	p := css.NewParser(log, opts)
	if e.parsers == nil {
		e.parsers = make(map[selector.Origin]*css.Parser)
	}
	e.parsers[origin] = p
	return p, nil
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
