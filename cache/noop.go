package cache

import (
	"context"
	"time"
)

// NoopStore never stores anything. Every Get is a miss.
type NoopStore struct{}

func (NoopStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NoopStore) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (NoopStore) DeletePattern(context.Context, string) error {
	return nil
}
