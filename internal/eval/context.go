package eval

import (
	"maps"

	"github.com/Bl8k38500/liquirium/internal/metrics"
)

// memoEntry is the cached result of evaluating one Eval.
type memoEntry struct {
	value any
	deps  map[string]struct{} // transitive set of input keys this eval reads
}

type foldCacheEntry struct {
	len int
	acc any
}

// Context maintains the current Input bindings and a memo of evaluated
// Evals. It is deliberately simple: updates clone the maps involved rather
// than sharing structure, since the simulation core is single-threaded and
// never holds more than one live context at a time (spec §5). Evaluate
// mutates its receiver's memo in place and returns only the value; the
// receiver itself plays the part of the "new context", since no other code
// holds a reference to the pre-evaluation memo state.
type Context struct {
	inputs map[string]any

	memo    map[string]memoEntry
	reverse map[string]map[string]struct{} // input key -> eval keys depending on it

	foldCache map[string]foldCacheEntry // survives UpdateInput; keyed by fold id
}

// New returns an empty context with no input bindings.
func New() *Context {
	return &Context{
		inputs:    map[string]any{},
		memo:      map[string]memoEntry{},
		reverse:   map[string]map[string]struct{}{},
		foldCache: map[string]foldCacheEntry{},
	}
}

// UpdateInput returns a new context with input bound to value, evicting
// exactly the memoized evals whose transitive dependency set contains
// input's key (spec §4.A).
func (c *Context) UpdateInput(input Input, value any) *Context {
	key := input.Key()

	nc := &Context{
		inputs:    maps.Clone(c.inputs),
		memo:      maps.Clone(c.memo),
		reverse:   cloneReverse(c.reverse),
		foldCache: maps.Clone(c.foldCache),
	}
	nc.inputs[key] = value

	for evalKey := range nc.reverse[key] {
		delete(nc.memo, evalKey)
	}
	delete(nc.reverse, key)

	return nc
}

func cloneReverse(m map[string]map[string]struct{}) map[string]map[string]struct{} {
	out := make(map[string]map[string]struct{}, len(m))
	for k, v := range m {
		out[k] = maps.Clone(v)
	}
	return out
}

// Evaluate computes e's value, using and extending the memo. It fails with
// *InputNotBound if e transitively reads an Input with no binding.
func (c *Context) Evaluate(e Eval) (any, error) {
	value, _, err := c.resolve(e)
	return value, err
}

func (c *Context) resolve(e Eval) (any, map[string]struct{}, error) {
	key := e.key()
	if entry, ok := c.memo[key]; ok {
		metrics.IncCacheHit()
		return entry.value, entry.deps, nil
	}
	metrics.IncCacheMiss()

	var value any
	var deps map[string]struct{}
	var err error

	switch node := e.(type) {
	case inputRef:
		value, deps, err = c.resolveInputRef(node)
	case derived:
		value, deps, err = c.resolveDerived(node)
	case foldNode:
		value, deps, err = c.resolveFold(node)
	default:
		return nil, nil, &EvalFailure{EvalID: key, Err: errUnknownEvalKind}
	}
	if err != nil {
		return nil, nil, err
	}

	c.memo[key] = memoEntry{value: value, deps: deps}
	for inputKey := range deps {
		set, ok := c.reverse[inputKey]
		if !ok {
			set = map[string]struct{}{}
			c.reverse[inputKey] = set
		}
		set[key] = struct{}{}
	}
	return value, deps, nil
}

func (c *Context) resolveInputRef(node inputRef) (any, map[string]struct{}, error) {
	key := node.input.Key()
	value, ok := c.inputs[key]
	if !ok {
		return nil, nil, &InputNotBound{Input: node.input}
	}
	return value, map[string]struct{}{key: {}}, nil
}

func (c *Context) resolveDerived(node derived) (any, map[string]struct{}, error) {
	values := make([]any, len(node.deps))
	deps := map[string]struct{}{}
	for i, dep := range node.deps {
		v, dd, err := c.resolve(dep)
		if err != nil {
			return nil, nil, err
		}
		values[i] = v
		maps.Copy(deps, dd)
	}
	value, err := node.fn(values)
	if err != nil {
		return nil, nil, &EvalFailure{EvalID: node.id, Err: err}
	}
	return value, deps, nil
}

func (c *Context) resolveFold(node foldNode) (any, map[string]struct{}, error) {
	srcValue, deps, err := c.resolve(node.source)
	if err != nil {
		return nil, nil, err
	}
	seq, ok := srcValue.(anySequence)
	if !ok {
		return nil, nil, &EvalFailure{EvalID: node.id, Err: errFoldSourceNotSequence}
	}

	cacheKey := node.key()
	acc := node.zero
	start := 0
	if cached, ok := c.foldCache[cacheKey]; ok && cached.len <= seq.seqLen() {
		acc = cached.acc
		start = cached.len
	}
	for _, item := range seq.seqSince(start) {
		acc = node.step(acc, item)
	}
	c.foldCache[cacheKey] = foldCacheEntry{len: seq.seqLen(), acc: acc}

	return acc, deps, nil
}
