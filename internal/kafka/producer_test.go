package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitClosedWithin(t *testing.T, p *Producer, d time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		p.WaitClosed()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatal("producer did not shut down")
	}
}

func TestProducerCloseIsIdempotent(t *testing.T) {
	p := NewProducer([]string{"127.0.0.1:1"}, "orders.test", 4)
	require.NotPanics(t, func() {
		p.Close()
		p.Close()
	})
}

func TestProducerShutdownCloseThenCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewProducer([]string{"127.0.0.1:1"}, "orders.test", 4)
	p.Start(ctx)

	require.NotPanics(t, func() {
		p.Close()
		cancel()
	})
	waitClosedWithin(t, p, 2*time.Second)
}

func TestProducerShutdownCancelThenClose(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewProducer([]string{"127.0.0.1:1"}, "orders.test", 4)
	p.Start(ctx)

	require.NotPanics(t, func() {
		cancel()
		p.Close()
	})
	waitClosedWithin(t, p, 2*time.Second)
}
