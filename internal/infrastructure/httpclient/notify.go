package httpclient

import (
	"context"

	"go.uber.org/zap"

	"github.com/secondhand/console/internal/infrastructure/logger"
)

// Notifier surfaces a failure message to the operator.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, message string)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, message string) {
	f(ctx, message)
}

type logNotifier struct{}

func (logNotifier) Notify(ctx context.Context, message string) {
	logger.L(ctx).Error("notification", zap.String("message", message))
}
