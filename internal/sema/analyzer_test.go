package sema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tinyrange/mathseq/internal/ast"
	"github.com/tinyrange/mathseq/internal/parser"
	"github.com/tinyrange/mathseq/internal/types"
)

func analyze(t *testing.T, src string) (*Analyzer, bool) {
	t.Helper()
	p, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	a := New()
	ok := a.Analyze(p)
	return a, ok
}

func wantDiags(t *testing.T, a *Analyzer, errs, warns []string) {
	t.Helper()
	if diff := cmp.Diff(errs, a.Errors()); diff != "" {
		t.Errorf("errors (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(warns, a.Warnings()); diff != "" {
		t.Errorf("warnings (-want +got):\n%s", diff)
	}
}

const fibProgram = `
func fibonacci(n: int) -> sequence {
    let result: sequence = [0, 1]
    while length(result) < n {
        let k: int = length(result)
        result = result + [result[k - 1] + result[k - 2]]
    }
    return result
}

func square(x: int) -> int {
    return x * x
}

func main() -> int {
    let fib: sequence = fibonacci(10)
    print(fib)
    print(map(fib, square))
    return 0
}
`

func TestCleanProgram(t *testing.T) {
	a, ok := analyze(t, fibProgram)
	if !ok {
		t.Fatalf("unexpected errors: %v", a.Errors())
	}
	wantDiags(t, a, nil, nil)
}

func TestDiagnostics(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		errs  []string
		warns []string
	}{
		{
			name: "missing return is a warning",
			src:  "func f() -> int { let x: int = 1 }\nfunc main() -> int { return f() }",
			warns: []string{
				"Semantic Warning at line 1: Function 'f' may not return a value",
			},
		},
		{
			name: "missing main",
			src:  "func helper() -> void { }",
			warns: []string{
				"Semantic Warning: Program should have a 'main' function with signature: func main() -> int",
			},
		},
		{
			name: "main with wrong signature",
			src:  "func main(a: int) -> int { return a }",
			warns: []string{
				"Semantic Warning: Program should have a 'main' function with signature: func main() -> int",
			},
		},
		{
			name: "redeclare in same scope",
			src:  "func main() -> int {\n let x: int = 1\n let x: int = 2\n return x }",
			errs: []string{"Semantic Error at line 3: Variable 'x' already declared in this scope"},
		},
		{
			name: "shadowing in child scope is legal",
			src:  "func main() -> int {\n let x: int = 1\n { let x: bool = true }\n if true { let x: float = 1.5 }\n return x }",
		},
		{
			name: "int to float coercion only",
			src:  "func main() -> int {\n let f: float = 1\n let i: int = 2.5\n return 0 }",
			errs: []string{"Semantic Error at line 3: Type mismatch in initialization of 'i', expected int but got float"},
		},
		{
			name: "assignment checks",
			src:  "func main() -> int {\n y = 1\n main = 2\n let b: bool = true\n b = 3\n return 0 }",
			errs: []string{
				"Semantic Error at line 2: Undefined variable 'y'",
				"Semantic Error at line 3: Cannot assign to constant 'main'",
				"Semantic Error at line 5: Type mismatch in assignment to 'b', expected bool but got int",
			},
		},
		{
			name: "rejected statements still check their operands",
			src:  "func f() -> int { return 1 }\nfunc main() -> int {\n f = undefinedThing + 1\n let s: sequence = map([1], f, missing)\n return 0 }",
			errs: []string{
				"Semantic Error at line 3: Cannot assign to constant 'f'",
				"Semantic Error at line 3: Undefined variable 'undefinedThing'",
				"Semantic Error at line 4: Function 'map' expects 2 arguments",
				"Semantic Error at line 4: Function 'f' cannot be used as a value",
				"Semantic Error at line 4: Undefined variable 'missing'",
			},
		},
		{
			name: "conditions must be boolean",
			src:  "func main() -> int {\n if 1 { }\n while 2.5 { }\n return 0 }",
			errs: []string{
				"Semantic Error at line 2: Condition expression must be boolean",
				"Semantic Error at line 3: Condition expression must be boolean",
			},
		},
		{
			name: "binary typing",
			src: "func main() -> int {\n let a: int = 1 + true\n let b: int = 5.0 % 2\n" +
				" let c: bool = true && 1\n let d: bool = true + false\n let e: bool = [1] < [2]\n return 0 }",
			errs: []string{
				"Semantic Error at line 2: Type mismatch in binary operation '+', left: int, right: bool",
				"Semantic Error at line 3: Type mismatch in binary operation '%', left: float, right: int",
				"Semantic Error at line 4: Type mismatch in binary operation '&&', left: bool, right: int",
				"Semantic Error at line 5: Invalid operation '+' for type bool",
			},
		},
		{
			name: "unary typing",
			src:  "func main() -> int {\n let a: bool = !1\n let b: int = -true\n return 0 }",
			errs: []string{
				"Semantic Error at line 2: Invalid unary operation '!' for type int",
				"Semantic Error at line 3: Invalid unary operation '-' for type bool",
			},
		},
		{
			name: "returns",
			src:  "func f() -> int {\n return\n}\nfunc g() -> bool {\n return 1\n}\nfunc h() -> float { return 2 }\nfunc main() -> int { return 0 }",
			errs: []string{
				"Semantic Error at line 2: Function must return a value of type int",
				"Semantic Error at line 5: Return type mismatch, expected bool but got int",
			},
		},
		{
			name: "duplicate function and parameter",
			src:  "func f(a: int, a: int) -> void { }\nfunc f() -> void { }\nfunc main() -> int { return 0 }",
			errs: []string{
				"Semantic Error at line 2: Function 'f' already declared",
				"Semantic Error at line 1: Parameter 'a' already declared",
			},
		},
		{
			name: "builtin name reserved",
			src:  "func print() -> void { }\nfunc main() -> int { return 0 }",
			errs: []string{"Semantic Error at line 1: Function 'print' conflicts with a built-in function"},
		},
		{
			name: "uninitialized read",
			src:  "func main() -> int {\n let x: int\n return x }",
			warns: []string{"Semantic Warning at line 3: Variable 'x' may be uninitialized"},
		},
		{
			name: "builtin arguments",
			src: "func main() -> int {\n let n: int = length(1)\n let m: int = length()\n" +
				" let g: int = get(3, true)\n let i: int = input(5)\n let j: int = input(\"a\", \"b\")\n return 0 }",
			errs: []string{
				"Semantic Error at line 2: Function 'length' expects a sequence argument",
				"Semantic Error at line 3: Function 'length' expects 1 argument",
				"Semantic Error at line 4: Cannot index non-sequence type",
				"Semantic Error at line 4: Array index must be an integer",
				"Semantic Error at line 5: Function 'input' expects a string literal prompt",
				"Semantic Error at line 6: Function 'input' expects 0 or 1 argument",
			},
		},
		{
			name: "map and filter",
			src: "func two(a: int, b: int) -> int { return a }\nfunc main() -> int {\n let s: sequence = [1]\n" +
				" s = map(s)\n s = filter(s, nothing)\n s = map(s, two)\n s = map(1, 2)\n return 0 }",
			errs: []string{
				"Semantic Error at line 4: Function 'map' expects 2 arguments",
				"Semantic Error at line 5: Undefined function 'nothing'",
				"Semantic Error at line 6: Function 'two' passed to 'map' must take exactly one parameter",
				"Semantic Error at line 7: Function 'map' expects a sequence as its first argument",
				"Semantic Error at line 7: Function 'map' expects a function name as its second argument",
			},
		},
		{
			name: "user calls",
			src: "func f(a: float, b: bool) -> int { return 1 }\nfunc main() -> int {\n let x: int = f(1)\n" +
				" let y: int = f(1, 2)\n let z: int = g()\n let v: int = 1\n v()\n let w: int = f\n return 0 }",
			errs: []string{
				"Semantic Error at line 3: Function 'f' expects 2 arguments but got 1",
				"Semantic Error at line 4: Type mismatch in argument 2 of 'f', expected bool but got int",
				"Semantic Error at line 5: Undefined function 'g'",
				"Semantic Error at line 7: 'v' is not a function",
				"Semantic Error at line 8: Function 'f' cannot be used as a value",
			},
		},
		{
			name: "inconsistent sequence",
			src:  "func main() -> int {\n let s: sequence = [1, 2.5, 3]\n let t: sequence = [1.5, 2]\n return 0 }",
			warns: []string{"Semantic Warning at line 2: Inconsistent types in sequence"},
		},
		{
			name: "errors do not stop analysis",
			src:  "func main() -> int {\n a = 1\n b = 2\n return c }",
			errs: []string{
				"Semantic Error at line 2: Undefined variable 'a'",
				"Semantic Error at line 3: Undefined variable 'b'",
				"Semantic Error at line 4: Undefined variable 'c'",
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, ok := analyze(t, c.src)
			if ok != (len(c.errs) == 0) {
				t.Errorf("Analyze returned %v with errors %v", ok, a.Errors())
			}
			wantDiags(t, a, c.errs, c.warns)
		})
	}
}

func TestTypeAnnotations(t *testing.T) {
	p, err := parser.Parse("func main() -> int { let f: float = 1 + 2.0\n return 0 }")
	if err != nil {
		t.Fatal(err)
	}
	a := New()
	a.Analyze(p)
	init := p.Funcs[0].Body[0].(*ast.DeclStmt).Init
	if got := a.TypeOf(init); got != types.Float {
		t.Fatalf("TypeOf = %v, want float", got)
	}
}

func TestAnalyzeResetsState(t *testing.T) {
	a := New()
	bad, _ := parser.Parse("func main() -> int { return x }")
	good, _ := parser.Parse("func main() -> int { return 0 }")
	if a.Analyze(bad) {
		t.Fatal("bad program accepted")
	}
	if !a.Analyze(good) {
		t.Fatalf("good program rejected: %v", a.Errors())
	}
	if len(a.Warnings()) != 0 {
		t.Fatalf("stale warnings: %v", a.Warnings())
	}
}
