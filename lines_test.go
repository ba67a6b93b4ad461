package wiki2json

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckLines(t *testing.T) {
	in := "{\"a\":1}\n{\"a\":\n\n[1,2]\n{\"b\":true}"
	valid, invalid := &bytes.Buffer{}, &bytes.Buffer{}
	n, bad, err := CheckLines(strings.NewReader(in), valid, invalid)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 2, bad)
	assert.Equal(t, "{\"a\":1}\n[1,2]\n{\"b\":true}", valid.String())
	assert.Equal(t, "{\"a\":\n\n", invalid.String())
}

func TestCheckLinesConverted(t *testing.T) {
	out := convertFile(t, "testdata/multistream.xml")
	n, bad, err := CheckLines(strings.NewReader(out), &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Zero(t, bad)
}

// Six lines of ten bytes each.
var tenByteLines = "line 0001\nline 0002\nline 0003\nline 0004\nline 0005\nline 0006\n"

type splitResult struct {
	name    string
	written int64
}

func split(t *testing.T, in string, limits ...int64) ([]*bytes.Buffer, []splitResult) {
	t.Helper()
	var parts []Part
	var bufs []*bytes.Buffer
	for i, l := range limits {
		b := &bytes.Buffer{}
		bufs = append(bufs, b)
		parts = append(parts, Part{Limit: l, Name: string(rune('a' + i)), W: b})
	}
	var results []splitResult
	err := Split(strings.NewReader(in), parts, func(p Part, written int64) {
		results = append(results, splitResult{p.Name, written})
	})
	require.NoError(t, err)
	return bufs, results
}

func TestSplit(t *testing.T) {
	bufs, results := split(t, tenByteLines, 20, 50)
	assert.Equal(t, "line 0001\nline 0002\n", bufs[0].String())
	assert.Equal(t, "line 0003\nline 0004\nline 0005\n", bufs[1].String())
	assert.Equal(t, []splitResult{{"a", 20}, {"b", 30}}, results)
}

func TestSplitSorts(t *testing.T) {
	bufs, results := split(t, tenByteLines, 50, 20)
	assert.Equal(t, "line 0003\nline 0004\nline 0005\n", bufs[0].String())
	assert.Equal(t, "line 0001\nline 0002\n", bufs[1].String())
	assert.Equal(t, []splitResult{{"b", 20}, {"a", 30}}, results)
}

func TestSplitSkipsCloseLimits(t *testing.T) {
	bufs, results := split(t, tenByteLines, 15, 18, 40)
	assert.Equal(t, "line 0001\n", bufs[0].String())
	assert.Empty(t, bufs[1].String())
	assert.Equal(t, "line 0002\nline 0003\nline 0004\n", bufs[2].String())
	assert.Equal(t, []splitResult{{"a", 10}, {"b", 0}, {"c", 30}}, results)
}

func TestSplitShortInput(t *testing.T) {
	bufs, results := split(t, "line 0001\n", 20, 50)
	assert.Equal(t, "line 0001\n", bufs[0].String())
	assert.Empty(t, bufs[1].String())
	assert.Equal(t, []splitResult{{"a", 10}, {"b", 0}}, results)
}

func TestCopyHead(t *testing.T) {
	tests := []struct {
		max int64
		exp string
	}{
		{0, ""},
		{9, ""},
		{10, "line 0001\n"},
		{29, "line 0001\nline 0002\n"},
		{30, "line 0001\nline 0002\nline 0003\n"},
		{1000, tenByteLines},
	}
	for _, test := range tests {
		out := &bytes.Buffer{}
		n, err := CopyHead(out, strings.NewReader(tenByteLines), test.max)
		require.NoError(t, err)
		assert.Equal(t, test.exp, out.String(), "max %v", test.max)
		assert.EqualValues(t, len(test.exp), n, "max %v", test.max)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in  string
		exp int64
	}{
		{"100", 100},
		{"1K", 1024},
		{"2k", 2048},
		{"1.5M", 1572864},
		{"3G", 3 << 30},
		{" 1 G ", 1 << 30},
		{"1GiB", 1 << 30},
		{"1GB", 1000000000},
	}
	for _, test := range tests {
		got, err := ParseSize(test.in)
		require.NoError(t, err, "parsing %q", test.in)
		assert.Equal(t, test.exp, got, "parsing %q", test.in)
	}

	for _, in := range []string{"", "G", "lots"} {
		_, err := ParseSize(in)
		assert.Error(t, err, "parsing %q", in)
	}
}
