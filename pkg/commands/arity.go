package commands

import "fmt"

// ArityKind is the shape of a command's argument contract
type ArityKind int

const (
	ArityNone ArityKind = iota
	ArityAny
	ArityFixed
)

// Arity is a command's argument-count contract
type Arity struct {
	Kind ArityKind
	N    int
}

// None accepts no arguments
func None() Arity { return Arity{Kind: ArityNone} }

// Any accepts any number of arguments
func Any() Arity { return Arity{Kind: ArityAny} }

// Fixed accepts exactly n arguments
func Fixed(n int) Arity { return Arity{Kind: ArityFixed, N: n} }

// Accepts reports whether count arguments satisfy the contract
func (a Arity) Accepts(count int) bool {
	switch a.Kind {
	case ArityNone:
		return count == 0
	case ArityAny:
		return true
	default:
		return count == a.N
	}
}

func (a Arity) String() string {
	switch a.Kind {
	case ArityNone:
		return "none"
	case ArityAny:
		return "any"
	default:
		return fmt.Sprintf("%d", a.N)
	}
}

// MarshalText renders the arity for machine output
func (a Arity) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Access is the capability an argument needs from the sandbox
type Access int

const (
	Read Access = iota + 1
	Write
)

// Strict reports whether the argument may not resolve to the package root
func (a Access) Strict() bool {
	return a == Write
}

func (a Access) String() string {
	switch a {
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return fmt.Sprintf("Access(%d)", int(a))
	}
}

// MarshalText renders the access for machine output
func (a Access) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}
