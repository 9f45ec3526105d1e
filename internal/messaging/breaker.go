package messaging

import (
	"context"

	"github.com/venicelab/orders/internal/domain"
	"github.com/venicelab/orders/internal/pkg/breaker"
)

// BreakerPublisher fails fast while the broker is down. Publish failures are
// already non-fatal to order creation; the breaker just keeps a dead broker
// from adding its timeout to every create.
type BreakerPublisher struct {
	next domain.EventPublisher
	brk  *breaker.Breaker
}

func WithBreaker(next domain.EventPublisher, brk *breaker.Breaker) *BreakerPublisher {
	return &BreakerPublisher{next: next, brk: brk}
}

func (p *BreakerPublisher) Publish(ctx context.Context, event any) error {
	if err := p.brk.Allow(); err != nil {
		return err
	}
	if err := p.next.Publish(ctx, event); err != nil {
		p.brk.Failure()
		return err
	}
	p.brk.Success()
	return nil
}
