package httpserver

import (
	"context"

	"github.com/skillcoder/replica-alerter/internal/logic/monitor"
)

// monitorer is the slice of the monitor service the health endpoints need.
type monitorer interface {
	Ping(ctx context.Context) error
	LastRun() monitor.RunSummary
}
