package eval

import "testing"

func TestSequence_AppendAndSince(t *testing.T) {
	s := NewSequence(1, 2, 3)
	s2 := s.Append(4, 5)

	if s.Len() != 3 || s2.Len() != 5 {
		t.Fatalf("unexpected lengths: %d, %d", s.Len(), s2.Len())
	}
	if got := s2.Since(3); len(got) != 2 || got[0] != 4 || got[1] != 5 {
		t.Fatalf("unexpected tail: %v", got)
	}
	// s must remain unaffected by the append (value semantics).
	if s.Len() != 3 {
		t.Fatalf("original sequence mutated by Append")
	}
}

func TestSequence_TruncateWhile(t *testing.T) {
	s := NewSequence(10, 20, 30, 40, 50)
	truncated := s.TruncateWhile(func(v int) bool { return v <= 30 })
	if truncated.Len() != 3 {
		t.Fatalf("expected 3 items kept, got %d: %v", truncated.Len(), truncated.All())
	}
}
