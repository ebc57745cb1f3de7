package client

import (
	"context"
	"time"
)

const (
	MessagePollInterval = 3 * time.Second
	SupportPollInterval = 10 * time.Second
)

// Poller runs a fetch immediately and then on every tick until its context ends.
// Fetches never overlap: a slow fetch delays the next one.
type Poller struct {
	Interval time.Duration
	// OnError receives fetch failures. Polling continues after an error.
	OnError func(error)
}

// NewPoller returns a poller with the given interval.
func NewPoller(interval time.Duration) *Poller {
	return &Poller{Interval: interval}
}

// Run blocks until ctx is cancelled, then returns nil. A non-positive interval
// polls at MessagePollInterval.
func (p *Poller) Run(ctx context.Context, fetch func(context.Context) error) error {
	interval := p.Interval
	if interval <= 0 {
		interval = MessagePollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := fetch(ctx); err != nil && ctx.Err() == nil && p.OnError != nil {
			p.OnError(err)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
