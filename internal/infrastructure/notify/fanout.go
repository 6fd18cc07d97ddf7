package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/cricket-scorer/internal/domain/match"
)

// Sink is anything that accepts committed changes.
type Sink interface {
	NotifyMatchChanged(ctx context.Context, change match.Change) error
}

// Fanout forwards a change to every sink and joins their errors. One failing
// sink does not stop the others.
type Fanout struct {
	sinks []Sink
}

func NewFanout(sinks ...Sink) *Fanout {
	out := &Fanout{}
	for _, sink := range sinks {
		if sink != nil {
			out.sinks = append(out.sinks, sink)
		}
	}
	return out
}

func (f *Fanout) NotifyMatchChanged(ctx context.Context, change match.Change) error {
	var errs []error
	for _, sink := range f.sinks {
		if err := sink.NotifyMatchChanged(ctx, change); err != nil {
			errs = append(errs, fmt.Errorf("%T: %w", sink, err))
		}
	}
	return errors.Join(errs...)
}
