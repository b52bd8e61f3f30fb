package tally

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sambeau/tally/pkg/tally/errors"
)

func TestEvaluate(t *testing.T) {
	got, err := Evaluate("145 + 33")
	require.NoError(t, err)
	assert.Equal(t, int32(178), got)
}

func TestEvaluateNoPrecedence(t *testing.T) {
	got, err := Evaluate("2+3*4")
	require.NoError(t, err)
	assert.Equal(t, int32(20), got)
}

func TestEvaluateError(t *testing.T) {
	_, err := Evaluate("44 / 0")
	require.Error(t, err)

	var terr *errors.TallyError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "OP-0001", terr.Code)
	assert.Equal(t, errors.ClassOperator, terr.Class)
}

func TestContextSetText(t *testing.T) {
	c := New("6*7")
	got, err := c.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, int32(42), got)

	c.SetText("6+7")
	got, err = c.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, int32(13), got)
}

func TestTraceLogging(t *testing.T) {
	log := NewBufferedLogger()
	c := New("1+2")
	c.SetLogger(log)

	got, err := c.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, int32(3), got)

	// One trace line per consumed token: 1, +, 2.
	lines := log.Lines()
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "INT")
	assert.Contains(t, lines[1], "OP")
	assert.Contains(t, lines[2], "INT")
}

func TestWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	l := WriterLogger(&buf)
	l.LogLine("hello", 42)
	assert.Equal(t, "hello 42\n", buf.String())
}

func TestBufferedLogger(t *testing.T) {
	l := NewBufferedLogger()
	l.Log("a")
	l.LogLine("b")
	l.LogLine("c")
	assert.Equal(t, []string{"ab", "c"}, l.Lines())
	assert.Equal(t, "ab\nc\n", l.String())

	l.Reset()
	assert.Empty(t, l.Lines())
	assert.Empty(t, l.String())
}
