// Package rules compiles modify-permission predicates written as expr
// expressions into grid.PermissionFunc values.
//
// An expression sees the record through three names:
//
//	id              the record id
//	record.<key>    the value of each column key passed to Compile
//	value("key")    the value of any key
//
// Example: `record.status != "done" && !(id startsWith "archived-")`.
package rules

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/go-theft-auto/grid"
)

// Rule is a compiled permission predicate.
type Rule struct {
	source  string
	keys    []string
	program *vm.Program
}

// compileEnv declares the shape of the environment for type checking.
func compileEnv(keys []string) map[string]any {
	rec := make(map[string]any, len(keys))
	for _, k := range keys {
		rec[k] = nil
	}
	return map[string]any{
		"id":     "",
		"record": rec,
		"value":  func(string) any { return nil },
	}
}

// Compile parses expression as a boolean predicate over records with the
// given column keys.
func Compile(expression string, keys []string) (*Rule, error) {
	program, err := expr.Compile(expression,
		expr.Env(compileEnv(keys)),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("compile rule %q: %w", expression, err)
	}
	return &Rule{source: expression, keys: append([]string(nil), keys...), program: program}, nil
}

// String returns the expression source.
func (r *Rule) String() string { return r.source }

func (r *Rule) env(rec grid.Record) map[string]any {
	values := make(map[string]any, len(r.keys))
	for _, k := range r.keys {
		values[k] = rec.Value(k)
	}
	return map[string]any{
		"id":     rec.ID(),
		"record": values,
		"value":  rec.Value,
	}
}

// Eval runs the rule against rec. A nil record is never allowed.
func (r *Rule) Eval(rec grid.Record) (bool, error) {
	if rec == nil {
		return false, nil
	}
	out, err := expr.Run(r.program, r.env(rec))
	if err != nil {
		return false, fmt.Errorf("evaluate rule %q on %s: %w", r.source, rec.ID(), err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Permission adapts the rule to grid.PermissionFunc. Evaluation errors deny
// and are logged at debug level.
func (r *Rule) Permission() grid.PermissionFunc {
	return func(rec grid.Record) bool {
		ok, err := r.Eval(rec)
		if err != nil {
			slog.Debug("rule denied on error", "rule", r.source, "err", err)
			return false
		}
		return ok
	}
}

// Cache memoizes compiled rules by expression and key set.
type Cache struct {
	rules sync.Map // cacheKey -> *Rule
}

type cacheKey struct {
	expression string
	keys       string
}

func keySignature(keys []string) string {
	var n int
	for _, k := range keys {
		n += len(k) + 1
	}
	b := make([]byte, 0, n)
	for _, k := range keys {
		b = append(b, k...)
		b = append(b, 0)
	}
	return string(b)
}

// Len returns the number of cached rules.
func (c *Cache) Len() int {
	n := 0
	c.rules.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// shared backs Permission, so rebuilding a grid's permission after a column
// change reuses the compiled program.
var shared Cache

// Compile returns the cached rule for expression, compiling it on first use.
// Failed compilations are not cached.
func (c *Cache) Compile(expression string, keys []string) (*Rule, error) {
	k := cacheKey{expression: expression, keys: keySignature(keys)}
	if cached, ok := c.rules.Load(k); ok {
		return cached.(*Rule), nil
	}
	r, err := Compile(expression, keys)
	if err != nil {
		return nil, err
	}
	actual, _ := c.rules.LoadOrStore(k, r)
	return actual.(*Rule), nil
}

// Permission compiles expression for the given columns, through a package
// cache, and returns it as a grid.PermissionFunc. An empty expression allows
// every record.
func Permission(expression string, columns []grid.Column) (grid.PermissionFunc, error) {
	if expression == "" {
		return func(rec grid.Record) bool { return rec != nil }, nil
	}
	keys := make([]string, len(columns))
	for i, c := range columns {
		keys[i] = c.Key
	}
	r, err := shared.Compile(expression, keys)
	if err != nil {
		return nil, err
	}
	return r.Permission(), nil
}
