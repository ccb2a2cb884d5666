// Package evaluator turns function definitions such as "sin(x)/x" into
// callable real functions of one variable.
//
// The plot core depends only on the Compiler and Function interfaces;
// Expr is the default implementation.
package evaluator

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotFinite is wrapped by an EvalError when a function produced NaN or
// an infinity.
var ErrNotFinite = errors.New("result is not finite")

// Compiler compiles a definition with exactly one free variable.
type Compiler interface {
	Compile(definition, variable string) (Function, error)
}

// Function is a compiled real function of one variable.
//
// Evaluate returns an *EvalError if the function is undefined at x,
// including when the result would be NaN or infinite.
type Function interface {
	Evaluate(x float64) (float64, error)
}

// CompileError reports a definition the compiler rejected.
type CompileError struct {
	Definition string
	Err        error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid function %q: %v", e.Definition, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// EvalError reports a failed evaluation at a single point.
type EvalError struct {
	X   float64
	Err error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluation at x=%g: %v", e.X, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

// Func adapts an ordinary Go function to the Function interface.
type Func func(x float64) float64

// Evaluate calls f and rejects non-finite results.
func (f Func) Evaluate(x float64) (float64, error) {
	return checkFinite(x, f(x))
}

func checkFinite(x, y float64) (float64, error) {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, &EvalError{X: x, Err: ErrNotFinite}
	}
	return y, nil
}
