package pvt

import (
	"errors"
	"fmt"
)

var (
	// ErrDomainInvalid indicates a result or intermediate outside the
	// published applicability range of a correlation.
	ErrDomainInvalid = errors.New("pvt: outside valid domain")

	// ErrMathUndefined indicates log of a non-positive value, division by
	// zero, a negative base under a fractional power or similar.
	ErrMathUndefined = errors.New("pvt: mathematically undefined")

	// ErrOverflow indicates an exponential or power beyond float64 range.
	ErrOverflow = &kindError{msg: "pvt: overflow", parent: ErrMathUndefined}

	// ErrDivisionByZero indicates a zero divisor.
	ErrDivisionByZero = &kindError{msg: "pvt: division by zero", parent: ErrMathUndefined}

	// ErrInvalidGrid indicates a grid request with count < 2 or min >= max.
	ErrInvalidGrid = errors.New("pvt: invalid grid configuration")

	// ErrMissingParameter indicates a snapshot without a required value.
	ErrMissingParameter = errors.New("pvt: missing parameter")

	// ErrUnknownParameter indicates a name the correlation does not declare.
	ErrUnknownParameter = errors.New("pvt: unknown parameter")

	// ErrUnknownCorrelation indicates a catalog lookup miss.
	ErrUnknownCorrelation = errors.New("pvt: unknown correlation")
)

// kindError is a sentinel that also matches its parent with errors.Is.
type kindError struct {
	msg    string
	parent error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool { return target == e.parent }

// EvalError wraps an evaluation failure with the correlation and the
// parameter involved, when known.
type EvalError struct {
	Correlation string
	Param       string
	Value       float64
	Wrapped     error
}

func (e *EvalError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("%s: %v", e.Correlation, e.Wrapped)
	}
	if errors.Is(e.Wrapped, ErrMissingParameter) || errors.Is(e.Wrapped, ErrUnknownParameter) {
		return fmt.Sprintf("%s: %v: %s", e.Correlation, e.Wrapped, e.Param)
	}
	return fmt.Sprintf("%s: %s=%g: %v", e.Correlation, e.Param, e.Value, e.Wrapped)
}

func (e *EvalError) Unwrap() error {
	return e.Wrapped
}

// Fail builds an EvalError for correlation id.
func Fail(id string, err error, param string, value float64) error {
	return &EvalError{Correlation: id, Param: param, Value: value, Wrapped: err}
}

// Kind is the error taxonomy used for display and for absent-point reasons.
type Kind string

const (
	KindNone             Kind = ""
	KindDomainInvalid    Kind = "DomainInvalid"
	KindMathUndefined    Kind = "MathUndefined"
	KindInvalidGrid      Kind = "InvalidGridConfiguration"
	KindMissingParameter Kind = "MissingParameter"
	KindUnknown          Kind = "Unknown"
)

// KindOf classifies err. Overflow is reported as MathUndefined.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrDomainInvalid):
		return KindDomainInvalid
	case errors.Is(err, ErrMathUndefined):
		return KindMathUndefined
	case errors.Is(err, ErrInvalidGrid):
		return KindInvalidGrid
	case errors.Is(err, ErrMissingParameter), errors.Is(err, ErrUnknownParameter):
		return KindMissingParameter
	default:
		return KindUnknown
	}
}
