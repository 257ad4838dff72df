package nba

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Args are the named string inputs of one call. Values are passed to the provider verbatim.
type Args map[string]string

type Param struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Operation is one entry of the dispatcher's registry.
type Operation struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Params      []Param `json:"params"`
	Shape       Shape   `json:"-"`

	fetch   fetchFunc
	extract extractFunc
}

// Dispatcher routes named calls to the provider. The registry is fixed at
// construction, so a Dispatcher is safe for concurrent use.
type Dispatcher struct {
	provider Provider
	logger   *slog.Logger
	ops      map[string]Operation
	order    []string
}

func NewDispatcher(provider Provider, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		provider: provider,
		logger:   logger,
		ops:      make(map[string]Operation),
	}
	for _, op := range operations() {
		if _, dup := d.ops[op.Name]; dup {
			panic("nba: duplicate operation " + op.Name)
		}
		d.ops[op.Name] = op
		d.order = append(d.order, op.Name)
	}
	return d
}

// Operations lists the registry in registration order.
func (d *Dispatcher) Operations() []Operation {
	out := make([]Operation, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.ops[name])
	}
	return out
}

func (d *Dispatcher) Operation(name string) (Operation, bool) {
	op, ok := d.ops[name]
	return op, ok
}

// Call runs the named operation. It never returns a Go error: every failure is
// reported through Result.Err with the matching error payload.
func (d *Dispatcher) Call(ctx context.Context, name string, args Args) Result {
	op, ok := d.ops[name]
	if !ok {
		return failed(ShapeObject, fmt.Errorf("%w: %s", ErrUnknownOperation, name))
	}
	for _, p := range op.Params {
		if _, ok := args[p.Name]; !ok {
			return d.finish(op, failed(op.Shape, fmt.Errorf("%w: %s", ErrMissingParam, p.Name)), 0)
		}
	}

	start := time.Now()
	res := guard(ctx, op.Shape, func(ctx context.Context) ([]byte, error) {
		return op.fetch(ctx, d.provider, args)
	}, op.extract, args)
	return d.finish(op, res, time.Since(start))
}

// Reject reports err as the result of the named operation without calling the provider.
func (d *Dispatcher) Reject(name string, err error) Result {
	op, ok := d.ops[name]
	if !ok {
		return failed(ShapeObject, err)
	}
	return d.finish(op, failed(op.Shape, err), 0)
}

func (d *Dispatcher) finish(op Operation, res Result, elapsed time.Duration) Result {
	if res.Failed() {
		d.logger.Warn("operation failed", "op", op.Name, "error", res.Err, "duration", elapsed.Round(time.Millisecond))
		return res
	}
	d.logger.Debug("operation ok", "op", op.Name, "bytes", len(res.Payload), "duration", elapsed.Round(time.Millisecond))
	return res
}
