package evaluator

import (
	"errors"
	"math"
	"testing"
)

func TestExprEvaluate(t *testing.T) {
	tests := []struct {
		definition string
		x          float64
		want       float64
	}{
		{"sin(x)", math.Pi / 2, 1},
		{"x^2 + 2*x + 1", 3, 16},
		{"x ** 3", -2, -8},
		{"1/x", 4, 0.25},
		{"3", 100, 3},
		{"pi", 0, math.Pi},
		{"e^x", 1, math.E},
		{"-x", 2.5, -2.5},
		{"(x + 1) * (x - 1)", 5, 24},
		{"sqrt(x) + cbrt(x)", 64, 12},
		{"log(e)", 0, 1},
		{"log10(x)", 1000, 3},
		{"log2(x)", 8, 3},
		{"abs(x) + floor(x) + ceil(x)", -1.5, -1.5},
		{"signum(x)", -7, -1},
		{"signum(x)", 0, 0},
		{"pow(x, 0.5)", 9, 3},
		{"atan2(1, x)", 1, math.Pi / 4},
		{"mod(x, 3)", 7.5, 1.5},
		{"x > 0 ? 1 : -1", -2, -1},
		{"sin(2)", 0, math.Sin(2)},
		{"7/2", 0, 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.definition, func(t *testing.T) {
			fn, err := Expr{}.Compile(tt.definition, "x")
			if err != nil {
				t.Fatalf("Compile(%q) failed: %v", tt.definition, err)
			}
			got, err := fn.Evaluate(tt.x)
			if err != nil {
				t.Fatalf("Evaluate(%g) failed: %v", tt.x, err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("%s at x=%g: got %g, want %g", tt.definition, tt.x, got, tt.want)
			}
		})
	}
}

func TestExprIntegerLiteralsDoNotWrap(t *testing.T) {
	tests := []struct {
		definition string
		x          float64
		want       float64
	}{
		{"9223372036854775807+1", 0, 9223372036854775808},
		{"1000000000000*1000000000000*x", 2, 2e24},
		{"-9223372036854775807-10", 0, -9223372036854775817},
		{"3000000000*3000000000", 0, 9e18},
	}
	for _, tt := range tests {
		fn, err := Expr{}.Compile(tt.definition, "x")
		if err != nil {
			t.Fatalf("Compile(%q) failed: %v", tt.definition, err)
		}
		got, err := fn.Evaluate(tt.x)
		if err != nil {
			t.Fatalf("%s: Evaluate(%g) failed: %v", tt.definition, tt.x, err)
		}
		if math.Abs(got-tt.want) > 1e-12*math.Abs(tt.want) {
			t.Errorf("%s at x=%g: got %g, want %g", tt.definition, tt.x, got, tt.want)
		}
	}
}

func TestExprEvaluateNotFinite(t *testing.T) {
	tests := []struct {
		definition string
		x          float64
	}{
		{"1/x", 0},
		{"sqrt(x)", -1},
		{"log(x)", 0},
		{"tan(x) * 0 + x / 0", 1},
		{"exp(x)", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.definition, func(t *testing.T) {
			fn, err := Expr{}.Compile(tt.definition, "x")
			if err != nil {
				t.Fatalf("Compile(%q) failed: %v", tt.definition, err)
			}
			_, err = fn.Evaluate(tt.x)
			var evalErr *EvalError
			if !errors.As(err, &evalErr) {
				t.Fatalf("Evaluate(%g) error = %v, want *EvalError", tt.x, err)
			}
			if evalErr.X != tt.x {
				t.Errorf("EvalError.X = %g, want %g", evalErr.X, tt.x)
			}
			if !errors.Is(err, ErrNotFinite) {
				t.Errorf("error %v does not wrap ErrNotFinite", err)
			}
		})
	}
}

func TestExprCompileErrors(t *testing.T) {
	tests := []struct {
		name       string
		definition string
		variable   string
		wantErr    error
	}{
		{"empty", "", "x", ErrEmptyDefinition},
		{"blank", "   \t", "x", ErrEmptyDefinition},
		{"unbalanced", "sin(x", "x", nil},
		{"dangling operator", "x +", "x", nil},
		{"unknown variable", "y + 1", "x", nil},
		{"unknown function", "foo(x)", "x", nil},
		{"two variables", "x * y", "x", nil},
		{"wrong variable", "x + 1", "t", nil},
		{"variable shadows function", "sin + 1", "sin", ErrBadVariable},
		{"variable shadows constant", "pi", "pi", ErrBadVariable},
		{"variable not an identifier", "x", "2x", ErrBadVariable},
		{"empty variable", "x", "", ErrBadVariable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := Expr{}.Compile(tt.definition, tt.variable)
			if err == nil {
				t.Fatalf("Compile(%q, %q) succeeded", tt.definition, tt.variable)
			}
			if fn != nil {
				t.Errorf("Compile returned a function alongside error %v", err)
			}
			var compileErr *CompileError
			if !errors.As(err, &compileErr) {
				t.Fatalf("error %v is not a *CompileError", err)
			}
			if compileErr.Definition != tt.definition {
				t.Errorf("CompileError.Definition = %q, want %q", compileErr.Definition, tt.definition)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error %v does not wrap %v", err, tt.wantErr)
			}
		})
	}
}

func TestExprOtherVariable(t *testing.T) {
	fn, err := Expr{}.Compile("2*t + 1", "t")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	got, err := fn.Evaluate(4)
	if err != nil || got != 9 {
		t.Errorf("Evaluate(4) = %g, %v; want 9, nil", got, err)
	}
}

func TestExprFunctionsAreIndependent(t *testing.T) {
	f, err := Expr{}.Compile("x + 1", "x")
	if err != nil {
		t.Fatal(err)
	}
	g, err := Expr{}.Compile("x * 10", "x")
	if err != nil {
		t.Fatal(err)
	}

	fy, _ := f.Evaluate(1)
	gy, _ := g.Evaluate(2)
	fy2, _ := f.Evaluate(1)
	if fy != 2 || gy != 20 || fy2 != 2 {
		t.Errorf("got f(1)=%g, g(2)=%g, f(1)=%g; want 2, 20, 2", fy, gy, fy2)
	}
}

func TestFunc(t *testing.T) {
	sq := Func(math.Sqrt)

	y, err := sq.Evaluate(16)
	if err != nil || y != 4 {
		t.Errorf("Evaluate(16) = %g, %v; want 4, nil", y, err)
	}

	_, err = sq.Evaluate(-4)
	if !errors.Is(err, ErrNotFinite) {
		t.Errorf("Evaluate(-4) error = %v, want ErrNotFinite", err)
	}

	inf := Func(func(x float64) float64 { return 1 / x })
	if _, err := inf.Evaluate(0); err == nil {
		t.Error("1/x at 0 did not fail")
	}
}

func TestErrorMessages(t *testing.T) {
	ce := &CompileError{Definition: "sin(", Err: errors.New("unexpected end")}
	if got, want := ce.Error(), `invalid function "sin(": unexpected end`; got != want {
		t.Errorf("CompileError.Error() = %q, want %q", got, want)
	}
	ee := &EvalError{X: 0, Err: ErrNotFinite}
	if got, want := ee.Error(), "evaluation at x=0: result is not finite"; got != want {
		t.Errorf("EvalError.Error() = %q, want %q", got, want)
	}
}
