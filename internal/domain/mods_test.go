package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMods(t *testing.T) {
	tests := []struct {
		in      string
		want    GameMods
		wantErr bool
	}{
		{"hdhr", ModHidden | ModHardRock, false},
		{"HDDT", ModHidden | ModDoubleTime, false},
		{"nm", NoMods, false},
		{"mr4k", ModMirror | ModKey4, false},
		{"hdx", 0, true},
		{"zz", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMods(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGameModsString(t *testing.T) {
	assert.Equal(t, "NM", NoMods.String())
	assert.Equal(t, "HDHR", (ModHardRock | ModHidden).String())
	assert.Equal(t, []string{"DT", "NC"}, (ModNightcore | ModDoubleTime).Acronyms())
}

func TestGameModsUnmarshal(t *testing.T) {
	var a, b GameMods
	require.NoError(t, json.Unmarshal([]byte(`["HD","DT"]`), &a))
	require.NoError(t, json.Unmarshal([]byte(`[{"acronym":"HD"},{"acronym":"DT"},{"acronym":"CL"}]`), &b))

	assert.Equal(t, ModHidden|ModDoubleTime, a)
	assert.Equal(t, a, b)
}

func TestModSelection(t *testing.T) {
	tests := []struct {
		arg    string
		strict bool
		want   ModSelection
		ok     bool
	}{
		{"+hdhr", true, ModSelection{Kind: SelectInclude, Mods: ModHidden | ModHardRock}, true},
		{"+hdhr!", true, ModSelection{Kind: SelectExact, Mods: ModHidden | ModHardRock}, true},
		{"-ez!", true, ModSelection{Kind: SelectExclude, Mods: ModEasy}, true},
		{"-ez", true, ModSelection{}, false},
		{"hdhr", true, ModSelection{}, false},
		{"hdhr", false, ModSelection{Kind: SelectInclude, Mods: ModHidden | ModHardRock}, true},
		{"+xx", false, ModSelection{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			var (
				got ModSelection
				ok  bool
			)
			if tt.strict {
				got, ok = MatchModSelection(tt.arg)
			} else {
				got, ok = ParseModSelection(tt.arg)
			}
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModSelectionFilter(t *testing.T) {
	var none *ModSelection
	_, ok := none.Filter()
	assert.False(t, ok)
	assert.True(t, none.Allows(ModHidden))

	exclude := &ModSelection{Kind: SelectExclude, Mods: ModHidden}
	_, ok = exclude.Filter()
	assert.False(t, ok)
	assert.False(t, exclude.Allows(ModHidden|ModHardRock))
	assert.True(t, exclude.Allows(ModHardRock))

	exact := &ModSelection{Kind: SelectExact, Mods: ModDoubleTime}
	mods, ok := exact.Filter()
	assert.True(t, ok)
	assert.Equal(t, ModDoubleTime, mods)
	assert.True(t, exact.Allows(ModNightcore))
}
