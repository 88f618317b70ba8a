package eval

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nebula-lang/nebula/parser"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	p, err := parser.NewParser(src)
	require.NoError(t, err)
	stmts, err := p.Parse()
	require.NoError(t, err)

	var buf bytes.Buffer
	ev := NewEvaluator()
	ev.SetWriter(&buf)
	_, err = ev.Run(stmts)
	return buf.String(), err
}

func TestEval_ArithmeticAndAssignment(t *testing.T) {
	out, err := run(t, "let int x = 2;\nx = (x * 3);\nprintln x;\n")
	require.NoError(t, err)
	assert.Equal(t, "6\n", out)
}

func TestEval_FloatPrintsCorrectly(t *testing.T) {
	out, err := run(t, "let float x = 3.5;\nprintln x;\n")
	require.NoError(t, err)
	assert.Equal(t, "3.5\n", out)
}

func TestEval_BoolPrintsAsWord(t *testing.T) {
	out, err := run(t, "let bool b = true;\nprintln b;\n")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestEval_PrintReverseOrder(t *testing.T) {
	out, err := run(t, "println 1 2 3;\n")
	require.NoError(t, err)
	assert.Equal(t, "321\n", out)
}

func TestEval_IfElse(t *testing.T) {
	out, err := run(t, "let int x = 0;\nif (x == 0)\n  println 1;\nelse\n  println 2;\nend\n")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestEval_WhileLoop(t *testing.T) {
	out, err := run(t, "let int i = 0;\nwhile (i < 3)\n  println i;\n  i = (i + 1);\nend\n")
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestEval_UninitializedVariableIsError(t *testing.T) {
	_, err := run(t, "let int x;\nprintln x;\n")
	require.Error(t, err)
	assert.Equal(t, "cannot evaluate an unitialized variable", err.Error())
}

func TestEval_TypeMismatchAssignmentIsError(t *testing.T) {
	_, err := run(t, "let int x = 1;\nlet float y = 2.0;\nx = y;\n")
	require.Error(t, err)
	assert.Equal(t, "cannot assign a variable to a value of a different type", err.Error())
}

func TestEval_ArithOnDifferingTypesIsError(t *testing.T) {
	_, err := run(t, "let int x = 1;\nlet float y = 2.0;\nx + y;\n")
	require.Error(t, err)
	assert.Equal(t, "cannot perform arithmetic on differing types", err.Error())
}

func TestEval_ComparisonAcrossTypesIsError(t *testing.T) {
	_, err := run(t, "let int x = 1;\nlet float y = 1.0;\nx == y;\n")
	require.Error(t, err)
	assert.Equal(t, "cannot compare two values of differing types", err.Error())
}

func TestEval_NonBoolConditionalIsError(t *testing.T) {
	_, err := run(t, "if (1)\n  println 1;\nend\n")
	require.Error(t, err)
	assert.Equal(t, "invalid conditional", err.Error())
}

func TestEval_InlineIfWithoutBlock(t *testing.T) {
	out, err := run(t, "let int node = 5;\nif (true)\n  node = 20;\nend\nprintln node;\n")
	require.NoError(t, err)
	assert.Equal(t, "20\n", out)
}

func TestEval_CharComparison(t *testing.T) {
	out, err := run(t, "begin\n  let char a = 'a';\n  let char b = 'b';\n  println a != b;\nend\n")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestEval_ChildScopeNotVisibleOutside(t *testing.T) {
	_, err := run(t, "begin\n  let int x = 1;\nend\nprintln x;\n")
	require.Error(t, err)
	assert.Equal(t, "unknown symbol 'x'", err.Error())
}

func TestEval_FloatModTruncatesToInt(t *testing.T) {
	out, err := run(t, "let float x = 5.0;\nlet float y = 2.0;\nprintln x % y;\n")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestEval_IterativeFibonacci(t *testing.T) {
	src := "let int n = 20;\n" +
		"let int a = 0;\n" +
		"let int b = 1;\n" +
		"let int i = 0;\n" +
		"while (i < n)\n" +
		"  let int tmp = (a + b);\n" +
		"  a = b;\n" +
		"  b = tmp;\n" +
		"  i = (i + 1);\n" +
		"end\n" +
		"println a;\n"
	out, err := run(t, src)
	require.NoError(t, err)
	assert.Equal(t, "6765\n", out)
}
