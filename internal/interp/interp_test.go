package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdecook/treewalk/internal/lexer"
	"github.com/samdecook/treewalk/internal/parser"
	"github.com/samdecook/treewalk/internal/resolver"
)

// run lexes, parses, resolves, and evaluates src against a fresh
// Interpreter, returning everything printed to stdout.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	toks := lexer.New([]byte(src)).Scan()
	program, err := parser.New(toks).Parse()
	require.NoError(t, err)
	locals, err := resolver.Resolve(program)
	require.NoError(t, err)

	in := New()
	var out bytes.Buffer
	in.Stdout = &out
	err = in.Run(program, locals)
	return out.String(), err
}

func TestFibonacciClosureAndRecursion(t *testing.T) {
	out, err := run(t, `
		fun fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`)
	require.NoError(t, err)
	assert.Equal(t, "55\n", out)
}

func TestClosureCapturesDefiningEnvironment(t *testing.T) {
	out, err := run(t, `
		fun makeCounter() {
			var count = 0;
			fun increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();
		print counter();
		print counter();
		print counter();
	`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestClassInheritanceAndSuper(t *testing.T) {
	out, err := run(t, `
		class Animal {
			speak() { print "..."; }
		}
		class Dog < Animal {
			speak() {
				super.speak();
				print "Woof";
			}
		}
		Dog().speak();
	`)
	require.NoError(t, err)
	assert.Equal(t, "...\nWoof\n", out)
}

func TestInitializerReturnsBoundThis(t *testing.T) {
	out, err := run(t, `
		class Point {
			init(x, y) {
				this.x = x;
				this.y = y;
			}
		}
		var p = Point(3, 4);
		print p.x;
		print p.y;
	`)
	require.NoError(t, err)
	assert.Equal(t, "3\n4\n", out)
}

func TestUndefinedPropertyIsARuntimeError(t *testing.T) {
	_, err := run(t, `
		class Empty {}
		print Empty().missing;
	`)
	require.Error(t, err)
	rerr, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Contains(t, rerr.Message, "Undefined property")
}

func TestArrayLiteralIndexAndAssignment(t *testing.T) {
	out, err := run(t, `
		var a = [1, 2, 3];
		a[1] = 20;
		print a[0];
		print a[1];
		print a[2];
		print len(a);
	`)
	require.NoError(t, err)
	assert.Equal(t, "1\n20\n3\n3\n", out)
}

func TestArrayIndexOutOfBoundsIsARuntimeError(t *testing.T) {
	_, err := run(t, `
		var a = [1, 2];
		print a[5];
	`)
	require.Error(t, err)
	rerr, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Contains(t, rerr.Message, "out of bounds")
}

func TestArrayIndexMustBeNonNegativeInteger(t *testing.T) {
	_, err := run(t, `
		var a = [1, 2];
		print a[-1];
	`)
	require.Error(t, err)
	rerr, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Contains(t, rerr.Message, "non-negative")
}

func TestTruthiness(t *testing.T) {
	out, err := run(t, `
		if (nil) print "wrong"; else print "nil is falsy";
		if (false) print "wrong"; else print "false is falsy";
		if (0) print "0 is truthy"; else print "wrong";
		if ("") print "empty string is truthy"; else print "wrong";
	`)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"nil is falsy",
		"false is falsy",
		"0 is truthy",
		"empty string is truthy",
	}, "\n")+"\n", out)
}

func TestBuiltinsStrLenNum(t *testing.T) {
	out, err := run(t, `
		print str(42);
		print len("hello");
		print num("3.5") + 0.5;
	`)
	require.NoError(t, err)
	assert.Equal(t, "42\n5\n4\n", out)
}

func TestPrintNilIsCapitalized(t *testing.T) {
	out, err := run(t, `print nil;`)
	require.NoError(t, err)
	assert.Equal(t, "Nil\n", out)
}

func TestLargeIntegerLiteralEvaluatesExactly(t *testing.T) {
	// Regression: the scanner's display-normalized Token.Literal switches
	// to exponent notation for large magnitudes and always appends
	// ".0", which made a naive reparse of that string either fail or
	// silently evaluate to 0. The literal must evaluate from the raw
	// source text instead.
	out, err := run(t, `print 100000000000000000000000;`)
	require.NoError(t, err)
	assert.Equal(t, "1e+23\n", out)
}
