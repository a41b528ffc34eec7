package internal

import (
	"time"

	"github.com/derWhity/fyyur/internal/ctxhelper"
	"github.com/derWhity/fyyur/internal/log"
	"github.com/go-kit/kit/endpoint"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// LogCalls is a middleware that logs every call of the wrapped endpoint with its duration
func LogCalls(name string) endpoint.Middleware {
	return func(next endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			logger := ctxhelper.Logger(ctx).WithField(log.FldEndpoint, name)
			ctx = ctxhelper.WithLogger(ctx, logger)
			defer func(begin time.Time) {
				entry := logger.WithField(log.FldDuration, time.Since(begin))
				if err != nil {
					entry.WithError(err).Warn("Call failed")
					return
				}
				entry.Debug("Call finished")
			}(time.Now())
			return next(ctx, request)
		}
	}
}

// withLogging applies the call logging middleware to all given endpoints. The map keys are the endpoint names
func withLogging(eps map[string]*endpoint.Endpoint) {
	for name, ep := range eps {
		*ep = LogCalls(name)(*ep)
	}
}

// entryFields are the fields logged for an incoming HTTP request
func entryFields(method, path string) logrus.Fields {
	return logrus.Fields{
		log.FldMethod: method,
		log.FldPath:   path,
	}
}
