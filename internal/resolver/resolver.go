// Package resolver computes the literal value of var() references against a scope tree.
//
// Resolution walks from the scope a reference appears in up to the root and takes the
// nearest declaration. References inside that declaration's value are resolved from the
// same starting scope. A chain of the names currently being resolved cuts self and
// circular references: a name met again on the chain behaves as if it were undeclared,
// so the fallback of the offending var() applies when it has one.
package resolver

import (
	"strings"

	"bennypowers.dev/cssvars/internal/collections"
	"bennypowers.dev/cssvars/internal/log"
	"bennypowers.dev/cssvars/internal/reference"
	"bennypowers.dev/cssvars/internal/scope"
)

// Result is the outcome of resolving a reference or an expression
type Result struct {
	// Value is the literal text, valid only when Resolved
	Value string
	// Resolved is false when a reference was undeclared or cyclic with no fallback
	Resolved bool

	// cyclic marks results that depended on a cycle being cut. They depend on the chain
	// they were computed under and are never memoized.
	cyclic bool
}

type memoKey struct {
	name string
	from scope.ID
}

// Resolver resolves references against one scope tree. It is not safe for concurrent
// use; create one per transform.
type Resolver struct {
	tree *scope.Tree
	memo map[memoKey]string
}

// New creates a resolver for the given scope tree
func New(tree *scope.Tree) *Resolver {
	return &Resolver{
		tree: tree,
		memo: make(map[memoKey]string),
	}
}

// Expand substitutes every reference in expr, looking names up from scope from
func (r *Resolver) Expand(expr reference.Expression, from scope.ID) Result {
	return r.expand(expr, from, collections.NewSet[string]())
}

// Resolve resolves a single reference to name with an optional fallback
func (r *Resolver) Resolve(name string, fallback *reference.Expression, from scope.ID) Result {
	return r.resolve(name, fallback, from, collections.NewSet[string]())
}

// ResolveVariable computes a variable's own value from the scope it was declared in.
// The variable's name is on the chain from the start, so var(--x) inside --x is a
// self reference.
func (r *Resolver) ResolveVariable(v *scope.Variable) Result {
	chain := collections.NewSet(v.Name)
	return r.expand(v.Expr, v.Scope, chain)
}

func (r *Resolver) resolve(name string, fallback *reference.Expression, from scope.ID, chain collections.Set[string]) Result {
	if chain.Has(name) {
		log.Debug("Cycle through %s (chain %v)", name, collections.Sorted(chain))
		res := r.fallback(fallback, from, chain)
		res.cyclic = true
		return res
	}

	v, ok := r.tree.Lookup(name, from)
	if !ok {
		log.Debug("Variable %s is not declared in scope", name)
		return r.fallback(fallback, from, chain)
	}

	key := memoKey{name: name, from: from}
	if value, ok := r.memo[key]; ok {
		return Result{Value: value, Resolved: true}
	}

	var res Result
	if !v.Expr.HasReferences() {
		res = Result{Value: strings.TrimSpace(v.Raw), Resolved: true}
	} else {
		chain.Add(name)
		res = r.expand(v.Expr, from, chain)
		chain.Delete(name)
	}

	if res.Resolved {
		if !res.cyclic {
			r.memo[key] = res.Value
		}
		return res
	}

	// a declared but unresolvable value behaves as undeclared
	fb := r.fallback(fallback, from, chain)
	fb.cyclic = fb.cyclic || res.cyclic
	return fb
}

func (r *Resolver) fallback(fallback *reference.Expression, from scope.ID, chain collections.Set[string]) Result {
	if fallback == nil {
		return Result{}
	}
	return r.expand(*fallback, from, chain)
}

func (r *Resolver) expand(expr reference.Expression, from scope.ID, chain collections.Set[string]) Result {
	var b strings.Builder
	cyclic := false
	for _, seg := range expr.Segments {
		if seg.Ref == nil {
			b.WriteString(seg.Literal)
			continue
		}
		res := r.resolve(seg.Ref.Name, seg.Ref.Fallback, from, chain)
		cyclic = cyclic || res.cyclic
		if !res.Resolved {
			return Result{cyclic: cyclic}
		}
		b.WriteString(res.Value)
	}
	return Result{Value: strings.TrimSpace(b.String()), Resolved: true, cyclic: cyclic}
}
