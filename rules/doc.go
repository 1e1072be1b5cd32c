// Package rules holds the rulebook's decision rules: small pure functions
// that map a few scalar inputs to a categorical label, a number or a bool.
//
// Every boundary is a named constant and every label is an exported string
// constant, so callers and tests can refer to them by name:
//
//	if rules.ValidateEmail(addr) != rules.ValidEmail {
//	    ...
//	}
//
// Bad input yields an "Invalid ..." label rather than an error. The only rule
// that returns an error is ItemsShippingCost, when it is given a shipping
// method it does not know; that error wraps ErrUnknownShippingMethod.
//
// All functions are safe for concurrent use.
package rules
