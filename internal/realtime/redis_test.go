package realtime

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newRedisFeed(t *testing.T) (*RedisFeed, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	f := NewRedisFeed(client, "", zap.NewNop())
	t.Cleanup(func() { _ = f.Close() })
	return f, mr
}

func TestRedisFeed_PublishSubscribe(t *testing.T) {
	f, _ := newRedisFeed(t)
	ctx := context.Background()

	s, err := f.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer s.Close()

	Announce(ctx, f, zap.NewNop(), "order-42", KindLocation)
	e := recv(t, s)
	if e.OrderID != "order-42" || e.Kind != KindLocation || e.At.IsZero() {
		t.Fatalf("got %+v", e)
	}
}

func TestRedisFeed_SkipsMalformedPayloads(t *testing.T) {
	f, mr := newRedisFeed(t)
	ctx := context.Background()

	s, err := f.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer s.Close()

	mr.Publish(DefaultChannel, "not json")
	_ = f.Publish(ctx, Event{OrderID: "after", Kind: KindUpdated})
	if e := recv(t, s); e.OrderID != "after" {
		t.Fatalf("got %+v, want the well-formed event", e)
	}
}
