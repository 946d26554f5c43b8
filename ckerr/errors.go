package ckerr

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

// enableDebugErrorPrinting makes errors include their stacktrace when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota

	// unification failures, see IsUnification

	HeadMismatch
	ArityMismatch
	OccursCheckFailed
	UnsupportedTerm

	// observational equality failures

	UnknownSort
	CastWitnessRejected
	CastEqualityRejected

	// dictionary validation failures

	DictionaryIncomplete
	LawViolation

	// instance resolution failures

	CycleDetected
	NoMatchingInstance
)

type KitError interface {
	Error() string
	Code() ErrCode

	withStack([]byte) KitError
	getStack() []byte
}

// IsUnification reports whether err is a failure to unify two terms.
//
// The constraint solver treats a unification failure during head matching as
// "try the next candidate instance"; everywhere else it is fatal.
func IsUnification(err error) bool {
	code := CodeOf(err)
	return code >= HeadMismatch && code <= UnsupportedTerm
}

// CodeOf returns the ErrCode of err, or None when err is not a KitError
func CodeOf(err error) ErrCode {
	var kitErr KitError
	if errors.As(err, &kitErr) {
		return kitErr.Code()
	}
	return None
}

func FormatWithCode(e KitError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			stack = strings.Split(stack, "\n")[6]
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

func New[E KitError](err E) KitError {
	return err.withStack(debug.Stack())
}

type NewHeadMismatch struct {
	First  fmt.Stringer
	Second fmt.Stringer
	stack  []byte
}

func (e NewHeadMismatch) Error() string {
	return fmt.Sprintf("cannot unify '%v' with '%v': constructor heads differ", e.First, e.Second)
}
func (e NewHeadMismatch) Code() ErrCode    { return HeadMismatch }
func (e NewHeadMismatch) getStack() []byte { return e.stack }
func (e NewHeadMismatch) withStack(stack []byte) KitError {
	e.stack = stack
	return e
}

type NewArityMismatch struct {
	First  fmt.Stringer
	Second fmt.Stringer
	Want   int
	Got    int
	stack  []byte
}

func (e NewArityMismatch) Error() string {
	return fmt.Sprintf("cannot unify '%v' with '%v': expected %d arguments, found %d", e.First, e.Second, e.Want, e.Got)
}
func (e NewArityMismatch) Code() ErrCode    { return ArityMismatch }
func (e NewArityMismatch) getStack() []byte { return e.stack }
func (e NewArityMismatch) withStack(stack []byte) KitError {
	e.stack = stack
	return e
}

type NewOccursCheckFailed struct {
	Var  fmt.Stringer
	Term fmt.Stringer

	stack []byte
}

func (e NewOccursCheckFailed) Error() string {
	return fmt.Sprintf("occurs check failed: variable '%v' appears inside '%v'", e.Var, e.Term)
}
func (e NewOccursCheckFailed) Code() ErrCode    { return OccursCheckFailed }
func (e NewOccursCheckFailed) getStack() []byte { return e.stack }
func (e NewOccursCheckFailed) withStack(stack []byte) KitError {
	e.stack = stack
	return e
}

type NewUnsupportedTerm struct {
	First  fmt.Stringer
	Second fmt.Stringer
	stack  []byte
}

func (e NewUnsupportedTerm) Error() string {
	return fmt.Sprintf("unsupported terms during unification: '%v', '%v'", e.First, e.Second)
}
func (e NewUnsupportedTerm) Code() ErrCode    { return UnsupportedTerm }
func (e NewUnsupportedTerm) getStack() []byte { return e.stack }
func (e NewUnsupportedTerm) withStack(stack []byte) KitError {
	e.stack = stack
	return e
}

type NewUnknownSort struct {
	Sort  fmt.Stringer
	stack []byte
}

func (e NewUnknownSort) Error() string {
	return fmt.Sprintf("no observational normaliser registered for sort '%v'", e.Sort)
}
func (e NewUnknownSort) Code() ErrCode    { return UnknownSort }
func (e NewUnknownSort) getStack() []byte { return e.stack }
func (e NewUnknownSort) withStack(stack []byte) KitError {
	e.stack = stack
	return e
}

type NewCastWitnessRejected struct {
	Source any
	Target any
	stack  []byte
}

func (e NewCastWitnessRejected) Error() string {
	return fmt.Sprintf("cast witness rejected '%v' as '%v'", e.Source, e.Target)
}
func (e NewCastWitnessRejected) Code() ErrCode    { return CastWitnessRejected }
func (e NewCastWitnessRejected) getStack() []byte { return e.stack }
func (e NewCastWitnessRejected) withStack(stack []byte) KitError {
	e.stack = stack
	return e
}

type NewCastEqualityRejected struct {
	Source any
	Target any
	stack  []byte
}

func (e NewCastEqualityRejected) Error() string {
	return fmt.Sprintf("observational equality rejected the cast of '%v' to '%v'", e.Source, e.Target)
}
func (e NewCastEqualityRejected) Code() ErrCode    { return CastEqualityRejected }
func (e NewCastEqualityRejected) getStack() []byte { return e.stack }
func (e NewCastEqualityRejected) withStack(stack []byte) KitError {
	e.stack = stack
	return e
}

type NewDictionaryIncomplete struct {
	Class   string
	Missing []string
	stack   []byte
}

func (e NewDictionaryIncomplete) Error() string {
	return fmt.Sprintf("dictionary for %s is missing fields: %v", e.Class, strings.Join(e.Missing, ", "))
}
func (e NewDictionaryIncomplete) Code() ErrCode    { return DictionaryIncomplete }
func (e NewDictionaryIncomplete) getStack() []byte { return e.stack }
func (e NewDictionaryIncomplete) withStack(stack []byte) KitError {
	e.stack = stack
	return e
}

type NewLawViolation struct {
	Class string
	Index int
	Cause error
	stack []byte
}

func (e NewLawViolation) Error() string {
	return fmt.Sprintf("law %d of %s violated: %v", e.Index, e.Class, e.Cause)
}
func (e NewLawViolation) Unwrap() error    { return e.Cause }
func (e NewLawViolation) Code() ErrCode    { return LawViolation }
func (e NewLawViolation) getStack() []byte { return e.stack }
func (e NewLawViolation) withStack(stack []byte) KitError {
	e.stack = stack
	return e
}

type NewCycleDetected struct {
	Class  string
	Target fmt.Stringer
	stack  []byte
}

func (e NewCycleDetected) Error() string {
	return fmt.Sprintf("cycle detected while resolving %s for '%v'", e.Class, e.Target)
}
func (e NewCycleDetected) Code() ErrCode    { return CycleDetected }
func (e NewCycleDetected) getStack() []byte { return e.stack }
func (e NewCycleDetected) withStack(stack []byte) KitError {
	e.stack = stack
	return e
}

type NewNoMatchingInstance struct {
	Class  string
	Target fmt.Stringer
	stack  []byte
}

func (e NewNoMatchingInstance) Error() string {
	return fmt.Sprintf("no instance matches constraint %s '%v'", e.Class, e.Target)
}
func (e NewNoMatchingInstance) Code() ErrCode    { return NoMatchingInstance }
func (e NewNoMatchingInstance) getStack() []byte { return e.stack }
func (e NewNoMatchingInstance) withStack(stack []byte) KitError {
	e.stack = stack
	return e
}
