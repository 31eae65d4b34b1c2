package helpers

import (
	"context"
	"fmt"
	"io"
	"path"
	"runtime"

	"github.com/M0rdr3d/lisk/pkg/config"
	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/jakehl/goid"
	"github.com/sirupsen/logrus"
)

// Context keys. They stay plain strings so a *gin.Context resolves them from
// its Keys map.
const (
	CtxSource    = "filterd.source"
	CtxRequestID = "filterd.request-id"
	CtxEntity    = "filterd.entity"
)

const (
	sourceInternal = "internal"
	sourceUnknown  = "-"
)

var LogFormatter = &formatter.Formatter{
	TimestampFormat: "2006-01-02 15:04:05",
	HideKeys:        true,
	FieldsOrder:     []string{"src", "req-id", "entity", "service", "subsystem"},
	CallerFirst:     true,
	CustomCallerFormatter: func(f *runtime.Frame) string {
		return fmt.Sprintf(" [%s:%d]", path.Base(f.File), f.Line)
	},
}

// SetupLogger returns the logger of one subsystem of the service. Each
// subsystem owns its logrus instance so levels can be tuned independently.
func SetupLogger(currentLevel config.LogLevel, serviceID string, subsystem string) *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(LogFormatter)
	lSubsystem := logger.WithFields(logrus.Fields{
		"service":   serviceID,
		"subsystem": subsystem,
	})

	if currentLevel == config.None {
		lSubsystem.Infof("subsystem logging will be disabled")
		logger.SetOutput(io.Discard)
		return lSubsystem
	}

	logger.SetLevel(subsystemLevel(subsystem, currentLevel))
	lSubsystem.Debugf("log level set to '%s'", logger.GetLevel())
	return lSubsystem
}

func subsystemLevel(subsystem string, lvl config.LogLevel) logrus.Level {
	if lvl == "" {
		logrus.Warnf("'%s' log level not set. Defaulting to global log level", subsystem)
		return logrus.GetLevel()
	}

	level, err := logrus.ParseLevel(string(lvl))
	if err != nil {
		logrus.Warnf("'%s' invalid '%s' log level. Defaulting to global log level", subsystem, lvl)
		return logrus.GetLevel()
	}
	return level
}

// ContextWithEntity tags ctx with the entity being served so storage and SQL
// traces can be told apart.
func ContextWithEntity(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, CtxEntity, name)
}

// RequestFields collects the log fields carried by ctx. The request id is only
// reported at debug level and above.
func RequestFields(ctx context.Context, level logrus.Level) logrus.Fields {
	src := contextString(ctx, CtxSource)
	if src == "" {
		src = sourceUnknown
	}
	fields := logrus.Fields{"src": src}

	if name := contextString(ctx, CtxEntity); name != "" {
		fields["entity"] = name
	}

	if level >= logrus.DebugLevel {
		reqID := contextString(ctx, CtxRequestID)
		if reqID == "" {
			reqID = fmt.Sprintf("unset.%s", goid.NewV4UUID())
		}
		fields["req-id"] = reqID
	}

	return fields
}

func ConfigureLogger(ctx context.Context, logger *logrus.Entry) *logrus.Entry {
	return logger.WithFields(RequestFields(ctx, logger.Logger.GetLevel()))
}

func contextString(ctx context.Context, key string) string {
	s, _ := ctx.Value(key).(string)
	return s
}

// InitContext is the root context of work not triggered by a request, such as
// startup checks.
func InitContext() context.Context {
	ctx := context.WithValue(context.Background(), CtxSource, sourceInternal)
	return context.WithValue(ctx, CtxRequestID, fmt.Sprintf("internal.%s", goid.NewV4UUID()))
}
