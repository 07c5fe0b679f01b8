package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultChannel is the Redis channel carrying order changes.
const DefaultChannel = "orders:changes"

// RedisFeed is a Feed over Redis Pub/Sub, shared by every server instance.
type RedisFeed struct {
	client  *redis.Client
	channel string
	log     *zap.Logger
}

// NewRedisFeed wraps a connected client. An empty channel selects DefaultChannel.
func NewRedisFeed(client *redis.Client, channel string, log *zap.Logger) *RedisFeed {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisFeed{client: client, channel: channel, log: log}
}

func (f *RedisFeed) Publish(ctx context.Context, e Event) error {
	msg, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := f.client.Publish(ctx, f.channel, msg).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

type redisSub struct {
	ch     chan Event
	cancel context.CancelFunc
	once   sync.Once
	done   chan struct{}
}

func (s *redisSub) Events() <-chan Event { return s.ch }

// Close unsubscribes and waits for the reader goroutine to finish.
func (s *redisSub) Close() error {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
	return nil
}

// Subscribe waits for Redis to confirm the subscription before returning,
// so events published afterwards are not missed.
func (f *RedisFeed) Subscribe(ctx context.Context) (Subscription, error) {
	ps := f.client.Subscribe(ctx, f.channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", f.channel, err)
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &redisSub{ch: make(chan Event, subscriberBuffer), cancel: cancel, done: make(chan struct{})}
	msgs := ps.Channel()
	go func() {
		defer close(s.done)
		defer close(s.ch)
		for {
			select {
			case <-ctx.Done():
				_ = ps.Close()
				return
			case m, ok := <-msgs:
				if !ok {
					_ = ps.Close()
					return
				}
				var e Event
				if err := json.Unmarshal([]byte(m.Payload), &e); err != nil {
					f.log.Warn("drop malformed order change", zap.String("payload", m.Payload), zap.Error(err))
					continue
				}
				select {
				case s.ch <- e:
				default:
				}
			}
		}
	}()
	return s, nil
}

// Close releases the Redis client.
func (f *RedisFeed) Close() error {
	return f.client.Close()
}
