package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSeparators(t *testing.T) {
	norm := normalizeLine("add x1,x2,x3")
	require.Len(t, norm.tokens, 4)
	assert.Equal(t, "add", norm.tokens[0].text)
	assert.Equal(t, "x1", norm.tokens[1].text)
	assert.Equal(t, "x2", norm.tokens[2].text)
	assert.Equal(t, "x3", norm.tokens[3].text)
}

// Separator rewriting is one-to-one with the original characters, so every
// token position indexes back into the raw line.
func TestNormalizePreservesPositions(t *testing.T) {
	raw := "\tlw x2,\t8(x1) # load"
	norm := normalizeLine(raw)
	require.Len(t, norm.tokens, 4)
	for _, tok := range norm.tokens {
		assert.Equal(t, tok.text, raw[tok.pos:tok.pos+len(tok.text)])
	}
}

func TestNormalizeComments(t *testing.T) {
	assert.True(t, normalizeLine("# just a comment").empty())
	assert.True(t, normalizeLine("").empty())
	assert.True(t, normalizeLine("   \t  ").empty())

	norm := normalizeLine("addi x1, x0, 1 # trailing")
	require.Len(t, norm.tokens, 4)
	assert.Equal(t, "1", norm.tokens[3].text)
}

func TestNormalizeLabels(t *testing.T) {
	norm := normalizeLine("loop: addi x1, x1, -1")
	require.True(t, norm.hasLabel)
	assert.Equal(t, "loop", norm.label.text)
	assert.Empty(t, norm.labelError)
	require.Len(t, norm.tokens, 4)
	assert.Equal(t, "addi", norm.tokens[0].text)

	bare := normalizeLine("alone:")
	assert.True(t, bare.hasLabel)
	assert.True(t, bare.empty())
}

func TestNormalizeRejectsBadLabelNames(t *testing.T) {
	norm := normalizeLine("bad name: addi x1, x0, 1")
	require.True(t, norm.hasLabel)
	assert.NotEmpty(t, norm.labelError)

	empty := normalizeLine(": addi x1, x0, 1")
	require.True(t, empty.hasLabel)
	assert.NotEmpty(t, empty.labelError)
}

// A '#' inside what would be a label still starts a comment; the colon after
// it must not be treated as a label separator.
func TestCommentBeforeColon(t *testing.T) {
	norm := normalizeLine("# note: not a label")
	assert.False(t, norm.hasLabel)
	assert.True(t, norm.empty())
}

func TestParseImmediate(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"10", 10},
		{"-1", -1},
		{"-2048", -2048},
		{"0xFFF", 4095},
		{"0X10", 16},
		{"010", 10}, // leading zero is not octal
	}
	for _, c := range cases {
		got, err := parseImmediate(c.in)
		require.NoErrorf(t, err, "input %q", c.in)
		assert.Equalf(t, c.want, got, "input %q", c.in)
	}

	for _, bad := range []string{"", "x", "1x", "0x", "-0x10", "10.5"} {
		_, err := parseImmediate(bad)
		assert.Errorf(t, err, "input %q", bad)
	}
}

func TestRegisterNumber(t *testing.T) {
	for _, c := range []struct {
		name string
		want uint32
	}{
		{"x0", 0}, {"zero", 0}, {"ra", 1}, {"sp", 2},
		{"t0", 5}, {"s0", 8}, {"fp", 8}, {"a0", 10},
		{"X31", 31}, {" t6 ", 31},
	} {
		got, ok := RegisterNumber(c.name)
		require.Truef(t, ok, "register %q", c.name)
		assert.Equalf(t, c.want, got, "register %q", c.name)
	}

	for _, bad := range []string{"x32", "x-1", "q7", "", "x"} {
		_, ok := RegisterNumber(bad)
		assert.Falsef(t, ok, "register %q", bad)
	}
}
