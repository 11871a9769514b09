package eval

import (
	"testing"
)

func TestEvaluate_InputNotBound(t *testing.T) {
	ctx := New()
	_, err := ctx.Evaluate(InputRef(TimeInput{}))
	if err == nil {
		t.Fatalf("expected InputNotBound error")
	}
	var notBound *InputNotBound
	if _, ok := err.(*InputNotBound); !ok {
		t.Fatalf("expected *InputNotBound, got %T (%v)", err, notBound)
	}
}

func TestEvaluate_Determinism(t *testing.T) {
	in := TimeInput{}
	ctx := New().UpdateInput(in, 42)

	v1, err := ctx.Evaluate(InputRef(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v2, err := ctx.Evaluate(InputRef(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v1 != v2 || v1 != 42 {
		t.Fatalf("expected deterministic value 42, got %v then %v", v1, v2)
	}
}

func TestUpdateInput_PreciseInvalidation(t *testing.T) {
	a := TimeInput{}
	b := CompletedOperationRequestsInSession{}

	ctx := New().UpdateInput(a, 1).UpdateInput(b, 10)

	callsToUnrelated := 0
	unrelated := Derive1("unrelated", InputRef(b), func(v int) (int, error) {
		callsToUnrelated++
		return v * 2, nil
	})

	v, err := ctx.Evaluate(unrelated)
	if err != nil || v != 20 {
		t.Fatalf("unexpected result: %v, %v", v, err)
	}

	ctx2 := ctx.UpdateInput(a, 2)

	v2, err := ctx2.Evaluate(unrelated)
	if err != nil || v2 != 20 {
		t.Fatalf("unexpected result: %v, %v", v2, err)
	}
	if callsToUnrelated != 1 {
		t.Fatalf("expected unrelated eval to be recomputed only once, got %d", callsToUnrelated)
	}
}

func TestUpdateInput_InvalidatesDependent(t *testing.T) {
	a := TimeInput{}
	ctx := New().UpdateInput(a, 1)

	doubled := Derive1("doubled", InputRef(a), func(v int) (int, error) { return v * 2, nil })

	v, _ := ctx.Evaluate(doubled)
	if v != 2 {
		t.Fatalf("expected 2, got %v", v)
	}

	ctx2 := ctx.UpdateInput(a, 5)
	v2, err := ctx2.Evaluate(doubled)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v2 != 10 {
		t.Fatalf("expected recomputed value 10, got %v", v2)
	}
}

func TestFold_ResumesFromCachedTail(t *testing.T) {
	a := TimeInput{}
	ctx := New().UpdateInput(a, NewSequence(1, 2, 3))

	foldCalls := 0
	sum := Fold("sum", InputRef(a), 0, func(acc int, item int) int {
		foldCalls++
		return acc + item
	})

	v, err := ctx.Evaluate(sum)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 6 {
		t.Fatalf("expected 6, got %v", v)
	}
	if foldCalls != 3 {
		t.Fatalf("expected 3 fold steps, got %d", foldCalls)
	}

	ctx2 := ctx.UpdateInput(a, NewSequence(1, 2, 3).Append(4, 5))
	v2, err := ctx2.Evaluate(sum)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v2 != 15 {
		t.Fatalf("expected 15, got %v", v2)
	}
	if foldCalls != 5 {
		t.Fatalf("expected only 2 additional fold steps (5 total), got %d", foldCalls)
	}
}
