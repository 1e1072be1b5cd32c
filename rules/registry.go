package rules

import (
	"fmt"
	"sort"
	"strings"

	apperr "github.com/dalemusser/rulebook/pantry/errors"
	"github.com/dalemusser/rulebook/pantry/text"
)

// Kind names the type a rule parameter is converted to.
type Kind string

// Parameter kinds.
const (
	KindInt        Kind = "int"
	KindFloat      Kind = "float"
	KindString     Kind = "string"
	KindBool       Kind = "bool"
	KindOrderItems Kind = "[{quantity, price}]"
	KindParcels    Kind = "[{weight}]"
)

// Param describes one rule parameter.
type Param struct {
	Name string
	Kind Kind
}

func (p Param) String() string {
	return p.Name + ":" + string(p.Kind)
}

// Rule binds a rule function to a name so it can be invoked from untyped
// arguments.
type Rule struct {
	Name   string
	Doc    string
	Params []Param

	eval func(a *argReader) (any, error)
}

// Signature renders the rule as name(param:kind, ...).
func (r *Rule) Signature() string {
	ps := make([]string, len(r.Params))
	for i, p := range r.Params {
		ps[i] = p.String()
	}
	return r.Name + "(" + strings.Join(ps, ", ") + ")"
}

// Eval converts args to the rule's parameter types and calls it. Missing,
// unconvertible and unexpected arguments return an invalid_argument error.
// The result is a string label, a float64 or a bool.
func (r *Rule) Eval(args Args) (any, error) {
	for name := range args {
		if !r.hasParam(name) {
			return nil, apperr.InvalidArgument(fmt.Sprintf("unexpected argument %q for %s", name, r.Signature())).
				WithDetail("param", name)
		}
	}
	return r.eval(&argReader{args: args})
}

func (r *Rule) hasParam(name string) bool {
	for _, p := range r.Params {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Registry is a read-only set of named rules. Lookups fold case,
// diacritics and separators, so "Validate-Email" finds validate_email.
type Registry struct {
	rules map[string]*Rule
	names []string
}

// NewRegistry builds a registry from rules. Duplicate keys panic, since
// they can only come from a programming error.
func NewRegistry(rules ...*Rule) *Registry {
	reg := &Registry{rules: make(map[string]*Rule, len(rules))}
	for _, r := range rules {
		key := text.Key(r.Name)
		if _, dup := reg.rules[key]; dup {
			panic("rules: duplicate rule " + key)
		}
		reg.rules[key] = r
		reg.names = append(reg.names, key)
	}
	sort.Strings(reg.names)
	return reg
}

// Lookup finds a rule by name.
func (reg *Registry) Lookup(name string) (*Rule, error) {
	if r, ok := reg.rules[text.Key(name)]; ok {
		return r, nil
	}
	return nil, apperr.UnknownRule(name)
}

// Eval looks up name and evaluates it with args.
func (reg *Registry) Eval(name string, args Args) (any, error) {
	r, err := reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	return r.Eval(args)
}

// Names returns all rule names in sorted order.
func (reg *Registry) Names() []string {
	out := make([]string, len(reg.names))
	copy(out, reg.names)
	return out
}

// Match returns the sorted rule names starting with prefix. An empty
// prefix matches everything.
func (reg *Registry) Match(prefix string) []string {
	lo, hi := text.PrefixRange(prefix)
	if lo == "" {
		return reg.Names()
	}
	start := sort.SearchStrings(reg.names, lo)
	end := sort.SearchStrings(reg.names, hi)
	out := make([]string, end-start)
	copy(out, reg.names[start:end])
	return out
}

var defaultRegistry = NewRegistry(builtinRules()...)

// Default returns the registry holding every rule in this package.
func Default() *Registry {
	return defaultRegistry
}
