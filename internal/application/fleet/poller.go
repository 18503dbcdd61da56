package fleet

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/basedbot-go/internal/application/common"
	"github.com/andrescamacho/basedbot-go/internal/application/mediator"
)

// Poller sends a RunCycleCommand every interval until its context ends.
// Cycles never overlap, so a fleet is never ticked twice at once.
type Poller struct {
	mediator   mediator.Mediator
	profileKey string
	interval   time.Duration
}

func NewPoller(m mediator.Mediator, profileKey string, interval time.Duration) *Poller {
	return &Poller{
		mediator:   m,
		profileKey: profileKey,
		interval:   interval,
	}
}

// Run runs a cycle immediately and then on every tick. A failed cycle is
// logged and the next one runs as scheduled. maxCycles > 0 stops after that
// many cycles.
func (p *Poller) Run(ctx context.Context, maxCycles int) error {
	logger := common.LoggerFromContext(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for cycles := 1; ; cycles++ {
		if _, err := p.mediator.Send(ctx, &RunCycleCommand{ProfileKey: p.profileKey}); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Log(common.LevelError, fmt.Sprintf("Cycle failed: %v", err), nil)
		}

		if maxCycles > 0 && cycles >= maxCycles {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
