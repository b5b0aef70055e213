// Package policy gates object-tree construction with CEL rules
// evaluated against a candidate node's declared object kind, name,
// and depth before it is allowed into a NodeWithChildren tree.
package policy

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// Candidate is the input a rule evaluates: the shape of one node
// being considered for inclusion in a tree, independent of its
// payload's Go type.
type Candidate struct {
	ObjectKind string
	Name       string
	Depth      int
	IsRoot     bool
}

func (c Candidate) toCELInput() map[string]any {
	return map[string]any{
		"node": map[string]any{
			"object_kind": c.ObjectKind,
			"name":        c.Name,
			"depth":       int64(c.Depth),
			"is_root":     c.IsRoot,
		},
	}
}

// Evaluator compiles and caches CEL rule programs and evaluates
// Candidates against them. A rule must evaluate to a bool; any other
// result type is an evaluation error, not a denial.
type Evaluator struct {
	env      *cel.Env
	mu       sync.RWMutex
	prgCache map[string]cel.Program
	rules    []string
}

// New creates an Evaluator with the given rule set. Each rule is a
// CEL expression over a `node` variable with fields object_kind
// (string), name (string), depth (int), is_root (bool); a node is
// allowed only if every rule evaluates to true.
func New(rules []string) (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("node", cel.DynType),
	)
	if err != nil {
		return nil, fmt.Errorf("policy: create CEL environment: %w", err)
	}

	return &Evaluator{
		env:      env,
		prgCache: make(map[string]cel.Program),
		rules:    rules,
	}, nil
}

// Allow reports whether c satisfies every configured rule. On the
// first rule to reject or fail to evaluate, it returns false together
// with the reason.
func (e *Evaluator) Allow(c Candidate) (bool, error) {
	input := c.toCELInput()

	for i, rule := range e.rules {
		ok, err := e.evaluate(rule, input)
		if err != nil {
			return false, fmt.Errorf("policy: rule %d: %w", i, err)
		}
		if !ok {
			return false, fmt.Errorf("policy: node %q of kind %q denied by rule %d: %s", c.Name, c.ObjectKind, i, rule)
		}
	}

	return true, nil
}

func (e *Evaluator) evaluate(rule string, input map[string]any) (bool, error) {
	e.mu.RLock()
	prg, hit := e.prgCache[rule]
	e.mu.RUnlock()

	if !hit {
		e.mu.Lock()
		if prg, hit = e.prgCache[rule]; !hit {
			ast, issues := e.env.Compile(rule)
			if issues != nil && issues.Err() != nil {
				e.mu.Unlock()
				return false, fmt.Errorf("compile: %w", issues.Err())
			}
			p, err := e.env.Program(ast,
				cel.InterruptCheckFrequency(100),
				cel.CostLimit(10000),
			)
			if err != nil {
				e.mu.Unlock()
				return false, fmt.Errorf("program: %w", err)
			}
			e.prgCache[rule] = p
			prg = p
		}
		e.mu.Unlock()
	}

	out, _, err := prg.Eval(input)
	if err != nil {
		return false, fmt.Errorf("eval: %w", err)
	}
	val, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("rule result is not a bool")
	}
	return val, nil
}
