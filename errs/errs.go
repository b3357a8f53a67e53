// Package errs defines the typed error kinds surfaced by the column store,
// planner, and executor. Every error is constructed through one of the
// helper functions below so callers can test with errors.As or this
// package's Is instead of matching on message text. Is checks only err
// itself and does not unwrap; errors.As does.
package errs

import "fmt"

// Kind classifies an Error for programmatic handling.
type Kind int

const (
	KindIO Kind = iota
	KindCodec
	KindNameAlreadyTaken
	KindNameNotFound
	KindParse
	KindMissingColumn
	KindInvalidJoin
	KindPlan
	KindGrammar
)

// PlanKind enumerates the ways a built Plan can fail validation.
type PlanKind int

const (
	NoStages PlanKind = iota
	EmptyStages
	InvalidStageOrder
	EmptyNodeInStages
)

func (k PlanKind) String() string {
	switch k {
	case NoStages:
		return "no stages"
	case EmptyStages:
		return "empty stage"
	case InvalidStageOrder:
		return "invalid stage order"
	case EmptyNodeInStages:
		return "empty node in stage"
	default:
		return "unknown plan error"
	}
}

// Error is the single error type returned by this module's packages.
type Error struct {
	Kind    Kind
	Name    string
	Type    string
	Plan    PlanKind
	Msg     string
	Wrapped error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindIO:
		return fmt.Sprintf("io error: %v", e.Wrapped)
	case KindCodec:
		return fmt.Sprintf("codec error: %v", e.Wrapped)
	case KindNameAlreadyTaken:
		return fmt.Sprintf("name already taken: %s", e.Name)
	case KindNameNotFound:
		return fmt.Sprintf("name not found: %s", e.Name)
	case KindParse:
		return fmt.Sprintf("parse error: %s: expected %s", e.Name, e.Type)
	case KindMissingColumn:
		return fmt.Sprintf("missing column: %s", e.Name)
	case KindInvalidJoin:
		return fmt.Sprintf("invalid join: %s is not an integer column", e.Name)
	case KindPlan:
		return fmt.Sprintf("plan error: %s", e.Plan)
	case KindGrammar:
		return fmt.Sprintf("grammar error: %s", e.Msg)
	default:
		return "unknown error"
	}
}

func (e *Error) Unwrap() error { return e.Wrapped }

func IO(err error) error              { return &Error{Kind: KindIO, Wrapped: err} }
func Codec(err error) error           { return &Error{Kind: KindCodec, Wrapped: err} }
func NameAlreadyTaken(name string) error { return &Error{Kind: KindNameAlreadyTaken, Name: name} }
func NameNotFound(name string) error     { return &Error{Kind: KindNameNotFound, Name: name} }
func ParseErr(name, typ string) error    { return &Error{Kind: KindParse, Name: name, Type: typ} }
func MissingColumn(name string) error    { return &Error{Kind: KindMissingColumn, Name: name} }
func InvalidJoin(name string) error      { return &Error{Kind: KindInvalidJoin, Name: name} }
func PlanErr(k PlanKind) error           { return &Error{Kind: KindPlan, Plan: k} }
func Grammar(msg string) error           { return &Error{Kind: KindGrammar, Msg: msg} }

// Is reports whether err is an *Error of the given Kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	return e.Kind == kind
}
