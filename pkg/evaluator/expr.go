package evaluator

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/vm"
)

var (
	// ErrEmptyDefinition is returned for a blank definition.
	ErrEmptyDefinition = errors.New("empty definition")
	// ErrBadVariable is returned when the variable name is not an
	// identifier or shadows a built-in function or constant.
	ErrBadVariable = errors.New("invalid variable name")
)

// functions available to every definition
var functions = map[string]any{
	"sin":    math.Sin,
	"cos":    math.Cos,
	"tan":    math.Tan,
	"asin":   math.Asin,
	"acos":   math.Acos,
	"atan":   math.Atan,
	"atan2":  math.Atan2,
	"sinh":   math.Sinh,
	"cosh":   math.Cosh,
	"tanh":   math.Tanh,
	"sqrt":   math.Sqrt,
	"cbrt":   math.Cbrt,
	"exp":    math.Exp,
	"expm1":  math.Expm1,
	"log":    math.Log,
	"log10":  math.Log10,
	"log2":   math.Log2,
	"log1p":  math.Log1p,
	"abs":    math.Abs,
	"ceil":   math.Ceil,
	"floor":  math.Floor,
	"pow":    math.Pow,
	"mod":    math.Mod,
	"signum": signum,
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

func signum(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return x // keeps ±0 and NaN
}

// Expr compiles definitions written in the expression language of
// github.com/expr-lang/expr, restricted to arithmetic (+ - * / ^),
// comparisons and conditionals, the functions sin, cos, tan, asin, acos,
// atan, atan2, sinh, cosh, tanh, sqrt, cbrt, exp, expm1, log, log10,
// log2, log1p, abs, ceil, floor, pow, mod and signum, and the constants
// pi and e. The language's own built-in functions are disabled.
type Expr struct{}

// Compile implements Compiler. The only free name allowed in definition
// besides the built-ins is variable.
func (Expr) Compile(definition, variable string) (Function, error) {
	if strings.TrimSpace(definition) == "" {
		return nil, &CompileError{Definition: definition, Err: ErrEmptyDefinition}
	}
	if !isIdentifier(variable) || isBuiltin(variable) {
		return nil, &CompileError{
			Definition: definition,
			Err:        fmt.Errorf("%w: %q", ErrBadVariable, variable),
		}
	}

	env := make(map[string]any, len(functions)+len(constants)+1)
	for name, fn := range functions {
		env[name] = fn
	}
	for name, c := range constants {
		env[name] = c
	}
	env[variable] = 0.0

	program, err := expr.Compile(definition,
		expr.Env(env),
		expr.AsFloat64(),
		expr.DisableAllBuiltins(),
		expr.Patch(floatLiterals{}))
	if err != nil {
		return nil, &CompileError{Definition: definition, Err: err}
	}
	return &exprFunction{
		program:  program,
		env:      env,
		variable: variable,
	}, nil
}

// exprFunction evaluates a compiled program. It rebinds the variable in
// its private environment on every call and is not safe for concurrent
// use.
type exprFunction struct {
	program  *vm.Program
	env      map[string]any
	variable string
	machine  vm.VM
}

func (f *exprFunction) Evaluate(x float64) (float64, error) {
	f.env[f.variable] = x
	out, err := f.machine.Run(f.program, f.env)
	if err != nil {
		return 0, &EvalError{X: x, Err: err}
	}
	y, ok := out.(float64)
	if !ok {
		return 0, &EvalError{X: x, Err: fmt.Errorf("result has type %T", out)}
	}
	return checkFinite(x, y)
}

// floatLiterals rewrites integer literals as floats, so arithmetic on
// constants is done in float64 and cannot wrap around.
type floatLiterals struct{}

func (floatLiterals) Visit(node *ast.Node) {
	if n, ok := (*node).(*ast.IntegerNode); ok {
		ast.Patch(node, &ast.FloatNode{Value: float64(n.Value)})
	}
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

func isBuiltin(name string) bool {
	if _, ok := functions[name]; ok {
		return true
	}
	_, ok := constants[name]
	return ok
}
