// Package redirectfx registers a redirect.Redirector with an fx application
// as an eagerly constructed singleton, detached again when the app stops.
package redirectfx

import (
	"context"

	"go.uber.org/fx"

	"github.com/rainbow-me/logredirect/common/logger"
	"github.com/rainbow-me/logredirect/redirect"
	"github.com/rainbow-me/logredirect/redirect/logrussource"
	"github.com/rainbow-me/logredirect/redirect/zapfactory"
)

// Module provides *redirect.Redirector and forces its construction. The
// application must supply a redirect.Root and a redirect.Factory.
var Module = fx.Module("redirect",
	fx.Provide(New),
	fx.Invoke(func(*redirect.Redirector) {}),
)

// Params are the dependencies of New.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Root      redirect.Root
	Factory   redirect.Factory
	Logger    *logger.Logger `optional:"true"`
}

// New attaches a redirector to p.Root and closes it on stop.
func New(p Params) (*redirect.Redirector, error) {
	r, err := redirect.New(p.Root, p.Factory, redirect.WithLogger(p.Logger))
	if err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return r.Close()
		},
	})

	return r, nil
}

// RegisterRedirector is the host setup call. It registers the redirector
// against whatever Root and Factory the application provides.
func RegisterRedirector() fx.Option {
	return Module
}

// LogrusRoot provides the standard logrus logger as the source root.
func LogrusRoot() fx.Option {
	return fx.Provide(func() redirect.Root {
		return logrussource.Standard()
	})
}

// ZapFactory provides a zapfactory.Factory built on the application logger.
func ZapFactory() fx.Option {
	return fx.Provide(func(l *logger.Logger) redirect.Factory {
		return zapfactory.New(l)
	})
}
