package dump

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type point struct {
	X, Y int
}

type shape struct {
	Name   string
	Origin point
	Tags   []string
	hidden int
}

type panicky struct{}

func (panicky) String() string { panic("boom") }

func TestDumpScalar(t *testing.T) {
	assert.Equal(t, "42", Dump(42, "n"))
	assert.Equal(t, "hello", Dump("hello", "s"))
	assert.Equal(t, "<nil>", Dump(nil, "nothing"))
}

func TestDumpStruct(t *testing.T) {
	s := shape{Name: "square", Origin: point{1, 2}, Tags: []string{"a"}, hidden: 3}
	want := "s\n" +
		"Name: square\n" +
		"Origin: {1 2}\n" +
		"Tags: [a]\n" +
		"hidden: <Unable to Evaluate>\n"
	assert.Equal(t, want, Dump(s, "s"))
	assert.Equal(t, want, Dump(&s, "s"))
}

func TestDumpMapSortsKeys(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1}
	assert.Equal(t, "m\na: 1\nb: 2\n", Dump(m, "m"))
}

func TestDumpSlice(t *testing.T) {
	assert.Equal(t, "l\n0: x\n1: y\n", Dump([]string{"x", "y"}, "l"))
}

func TestDumpUnableToEvaluate(t *testing.T) {
	got := Dump(map[string]any{"p": panicky{}, "e": errors.New("bad")}, "m")
	assert.Equal(t, "m\ne: bad\np: <Unable to Evaluate>\n", got)
}

func TestDumpRecursive(t *testing.T) {
	type outer struct {
		Inner struct {
			Deep point
			N    int
		}
		Label string
	}
	var o outer
	o.Inner.Deep = point{3, 4}
	o.Inner.N = 7
	o.Label = "top"

	want := "o\n" +
		"\tInner\n" +
		"\t\tDeep: <Maximum Depth Reached>\n" +
		"\t\tN: 7\n" +
		"\tLabel: top\n"
	assert.Equal(t, want, DumpRecursive(o, "o", "", 0))
}

func TestDumpRecursiveBeyondMaxDepth(t *testing.T) {
	assert.Equal(t, "  p: <Maximum Depth Reached>\n", DumpRecursive(point{}, "p", "  ", MaxDepth+1))
}

func TestDumpRecursiveScalar(t *testing.T) {
	assert.Equal(t, "n: 5\n", DumpRecursive(5, "n", "", 0))
}

func TestField(t *testing.T) {
	f := Field("pt", point{1, 2})
	assert.Equal(t, "pt", f.Key)
	assert.Equal(t, zapcore.StringType, f.Type)
	assert.Equal(t, "pt\n\tX: 1\n\tY: 2\n", f.String)

	// usable with a real logger
	zap.NewNop().Debug("dump", f)
}

func TestDumpRecursiveTreatsStringersAsLeaves(t *testing.T) {
	v := struct {
		Err error
		P   panicky
	}{Err: errors.New("bad")}
	assert.Equal(t, "v\n\tErr: bad\n\tP: <Unable to Evaluate>\n", DumpRecursive(v, "v", "", 0))
}
