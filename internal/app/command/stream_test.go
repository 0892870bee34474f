package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *Registry[testHandler] {
	t.Helper()
	r := NewPrefixRegistry[testHandler]()
	require.NoError(t, r.Register(desc("help", "h"), desc("test"), desc("nlb")))
	r.Seal()
	return r
}

func TestParse(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		name    string
		content string
		prefix  string
		cmd     string
		rest    string
		num     uint64
		hasNum  bool
		ok      bool
	}{
		{"leading whitespace", "  !help ping", "!", "help", "ping", 0, false, true},
		{"numeric suffix", "test123", "", "test", "", 123, true, true},
		{"case insensitive", "<NLB +hdhr 123", "<", "nlb", "+hdhr 123", 0, false, true},
		{"suffix with args", "<nlb2   +dt!", "<", "nlb", "+dt!", 2, true, true},
		{"unknown", "<nope", "<", "", "", 0, false, false},
		{"only digits", "<123", "<", "", "", 0, false, false},
		{"unknown with digits", "<nope1", "<", "", "", 0, false, false},
		{"empty", "<", "<", "", "", 0, false, false},
		{"multiple spaces", "!h   a    b", "!", "help", "a    b", 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.content, tt.prefix, r)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.cmd, got.Descriptor.Name())
			assert.Equal(t, tt.rest, got.Args.Rest())
			num, hasNum := got.Args.Num()
			assert.Equal(t, tt.hasNum, hasNum)
			assert.Equal(t, tt.num, num)
		})
	}
}

func TestArgs(t *testing.T) {
	a := NewArgs("  add  ! $  ?", nil)

	first, ok := a.Next()
	require.True(t, ok)
	assert.Equal(t, "add", first)
	assert.Equal(t, []string{"!", "$"}, a.Take(2))
	assert.Equal(t, "?", a.Rest())
	assert.Equal(t, []string{"?"}, a.Take(5))

	_, ok = a.Next()
	assert.False(t, ok)
}
