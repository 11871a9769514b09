package timeline

import (
	"testing"
	"time"

	"github.com/Bl8k38500/liquirium/internal/eval"
	"github.com/stretchr/testify/require"
)

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestMerge_NonDecreasingAndTieBroken(t *testing.T) {
	t0 := mustTime("2026-01-01T00:00:00Z")

	p1 := NewStaticProvider(eval.TimeInput{Resolution: time.Minute}, []TimedValue{
		{Time: t0, Value: 1},
		{Time: t0.Add(time.Minute), Value: 2},
	})
	p2 := NewStaticProvider(eval.CompletedOperationRequestsInSession{}, []TimedValue{
		{Time: t0, Value: "a"},
	})

	events, err := Merge([]Provider{p1, p2})
	require.NoError(t, err)
	require.Len(t, events, 3)

	for i := 1; i < len(events); i++ {
		require.Falsef(t, events[i].Time.Before(events[i-1].Time), "events not monotonic at index %d", i)
	}

	// Both events at t0: TimeInput sorts before CompletedOperationRequestsInSession
	// by (inputKind, inputKey) since kindTime < kindCompletedOperationRequests.
	require.Equal(t, t0, events[0].Time)
	_, ok := events[0].Input.(eval.TimeInput)
	require.True(t, ok, "expected TimeInput to sort first among equal-time events, got %T", events[0].Input)
}

func TestMergeSegments_OverlapTruncation(t *testing.T) {
	type item struct {
		id   string
		time time.Time
	}
	timeOf := func(i item) time.Time { return i.time }

	base := mustTime("2026-01-01T00:00:00Z")
	at := func(sec int) time.Time { return base.Add(time.Duration(sec) * time.Second) }

	stored := []item{
		{"A", at(110)},
		{"B", at(112)},
		{"C", at(114)},
	}
	live := []item{
		{"B", at(112)},
		{"C2", at(113)},
		{"D", at(119)},
		{"E", at(120)},
	}

	merged := MergeSegments(stored, live, timeOf, at(120))

	want := []string{"A", "B", "C2", "D"}
	require.Len(t, merged, len(want))
	for i, id := range want {
		require.Equal(t, id, merged[i].id)
	}
}
