package antivirus

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the scanner cannot give a verdict.
var ErrUnavailable = errors.New("antivirus: scanner unavailable")

// Result is the verdict for one payload.
type Result struct {
	Infected   bool
	ThreatName string
}

// Scanner inspects uploaded payloads before they are stored. A non-nil
// error means no verdict; callers must not store the payload.
type Scanner interface {
	Scan(ctx context.Context, data []byte) (Result, error)
	Ping(ctx context.Context) error
}

// NoOp accepts everything. Used when no clamd address is configured.
type NoOp struct{}

var _ Scanner = NoOp{}

func (NoOp) Scan(context.Context, []byte) (Result, error) { return Result{}, nil }

func (NoOp) Ping(context.Context) error { return nil }
