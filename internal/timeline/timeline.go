// Package timeline merges per-input timed event streams into a single
// monotonic replay sequence (spec §4.B).
package timeline

import (
	"container/heap"
	"time"

	"github.com/Bl8k38500/liquirium/internal/eval"
)

// Event is one (time, input, value) update the simulation environment
// applies to its context.
type Event struct {
	Time  time.Time
	Input eval.Input
	Value any
}

// Provider produces the finite, time-ordered sequence of updates for one
// Input within [start, end]. The first event's time may equal start; events
// after end must not be produced. Implementations read from a
// CandleHistoryLoader/TradeHistoryLoader or derive events locally (e.g. the
// TimeInput ticker).
type Provider interface {
	Input() eval.Input
	// Next returns the next event at or after the provider's current
	// position, or ok=false when the provider is exhausted.
	Next() (t time.Time, value any, ok bool, err error)
}

// Merge performs a deterministic k-way merge of providers into a single
// Event sequence with non-decreasing times. Events with equal time are
// ordered by (inputKind, inputKey), per spec §4.B.
func Merge(providers []Provider) ([]Event, error) {
	h := &providerHeap{}
	heap.Init(h)

	for _, p := range providers {
		if err := pushNext(h, p); err != nil {
			return nil, err
		}
	}

	var events []Event
	for h.Len() > 0 {
		item := heap.Pop(h).(*heapItem)
		events = append(events, Event{Time: item.time, Input: item.provider.Input(), Value: item.value})
		if err := pushNext(h, item.provider); err != nil {
			return nil, err
		}
	}
	return events, nil
}

func pushNext(h *providerHeap, p Provider) error {
	t, v, ok, err := p.Next()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	kind, key := eval.InputOrder(p.Input())
	heap.Push(h, &heapItem{time: t, kind: kind, key: key, value: v, provider: p})
	return nil
}

type heapItem struct {
	time     time.Time
	kind     int
	key      string
	value    any
	provider Provider
}

// providerHeap orders items by (time, kind, key) ascending.
type providerHeap []*heapItem

func (h providerHeap) Len() int { return len(h) }

func (h providerHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if !a.time.Equal(b.time) {
		return a.time.Before(b.time)
	}
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	return a.key < b.key
}

func (h providerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *providerHeap) Push(x any) { *h = append(*h, x.(*heapItem)) }

func (h *providerHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
