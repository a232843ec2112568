package repository

import (
	"context"
	"sync/atomic"
)

// VisitCounter counts application accesses. Calculations never depend on it.
type VisitCounter interface {
	Name() string
	Increment(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type MemoryVisitCounter struct {
	name  string
	count atomic.Int64
}

func NewMemoryVisitCounter(name string) *MemoryVisitCounter {
	return &MemoryVisitCounter{name: name}
}

func (c *MemoryVisitCounter) Name() string { return c.name }

func (c *MemoryVisitCounter) Increment(context.Context) (int64, error) {
	return c.count.Add(1), nil
}

func (c *MemoryVisitCounter) Count(context.Context) (int64, error) {
	return c.count.Load(), nil
}
