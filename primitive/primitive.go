// Package primitive resolves, per primitive model type, the function that
// converts wire-format text into a native value.
//
// Resolution tries, in order: the type's declared enumeration members, the
// standard encoding.TextUnmarshaler convention, and a parse function
// registered through the type's directive. A primitive type that supports
// none of the three is misdeclared, which is a construction-time error.
package primitive

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gofhir/fhirmap/directive"
)

// ParseFunc converts wire-format text into a native value of the mapped
// type. Failures are reported as *ParseError.
type ParseFunc func(text string) (any, error)

// Resolution errors.
var (
	// ErrNoParseCapability indicates a primitive type with no discoverable
	// text-to-value conversion. This is a declaration error, raised when
	// the mapping is constructed, not when text is parsed.
	ErrNoParseCapability = errors.New("no parse capability")

	// ErrNotAFunction indicates a registered parse factory that is not a
	// function at all.
	ErrNotAFunction = errors.New("registered parser is not a function")

	// ErrBadParseShape indicates a registered parse factory whose signature
	// is not func(string) (T, error).
	ErrBadParseShape = errors.New("registered parser has wrong shape")
)

// ParseError is the typed failure returned when text does not convert to a
// value of the target type. It is an ordinary per-field condition for the
// caller, not a crash.
type ParseError struct {
	Type reflect.Type
	Text string
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot parse %q as %s: %v", e.Text, e.Type, e.Err)
	}
	return fmt.Sprintf("cannot parse %q as %s", e.Text, e.Type)
}

// Unwrap returns the underlying cause, if any.
func (e *ParseError) Unwrap() error { return e.Err }

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Resolve returns the parse function for a concrete primitive model type.
func Resolve(t reflect.Type) (ParseFunc, error) {
	d, declared := directive.Lookup(t)

	if declared && len(d.Enum) > 0 {
		return enumParser(t, d.Enum), nil
	}
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return textParser(t), nil
	}
	if declared && d.Parse != nil {
		return fromFactory(t, d.Parse)
	}
	return nil, fmt.Errorf("%s: %w", t, ErrNoParseCapability)
}

// enumParser matches text against the declared members of an enumerated
// type, by wire code first and member symbol second.
func enumParser(t reflect.Type, members []directive.EnumMember) ParseFunc {
	return func(text string) (any, error) {
		for i := range members {
			if members[i].Code == text {
				return members[i].Value, nil
			}
		}
		for i := range members {
			if strings.EqualFold(members[i].Symbol, text) {
				return members[i].Value, nil
			}
		}
		return nil, &ParseError{
			Type: t,
			Text: text,
			Err:  fmt.Errorf("no member with code or symbol %q", text),
		}
	}
}

// textParser builds a ParseFunc over the encoding.TextUnmarshaler
// implemented by *T.
func textParser(t reflect.Type) ParseFunc {
	return func(text string) (any, error) {
		v := reflect.New(t)
		if err := v.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
			return nil, &ParseError{Type: t, Text: text, Err: err}
		}
		return v.Elem().Interface(), nil
	}
}

// fromFactory validates the shape of a registered parse factory and wraps it
// as a ParseFunc.
//
// The only accepted shape is:
//
//	func(text string) (T, error)
//
// with T assignable to the declared type.
func fromFactory(t reflect.Type, factory any) (ParseFunc, error) {
	fv := reflect.ValueOf(factory)
	ft := fv.Type()
	if ft.Kind() != reflect.Func {
		return nil, fmt.Errorf("%s: %w", t, ErrNotAFunction)
	}

	ok := ft.NumIn() == 1 &&
		ft.In(0).Kind() == reflect.String &&
		ft.NumOut() == 2 &&
		ft.Out(0).AssignableTo(t) &&
		ft.Out(1).Implements(errorType)
	if !ok {
		return nil, fmt.Errorf("%s: %s: %w", t, ft, ErrBadParseShape)
	}

	return func(text string) (any, error) {
		out := fv.Call([]reflect.Value{reflect.ValueOf(text)})
		if err, _ := out[1].Interface().(error); err != nil {
			return nil, &ParseError{Type: t, Text: text, Err: err}
		}
		return out[0].Interface(), nil
	}, nil
}
