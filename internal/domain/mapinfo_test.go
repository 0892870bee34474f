package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOsu = "\ufeffosu file format v14\r\n" +
	"\r\n[General]\r\nAudioFilename: audio.mp3\r\nMode: 3\r\n" +
	"\r\n[Metadata]\r\nTitle:Blue Zenith\r\nArtist:xi\r\nCreator:Asphyxia\r\nVersion:FOUR DIMENSIONS\r\nBeatmapID:658127\r\nBeatmapSetID:292301\r\n" +
	"\r\n[Difficulty]\r\nCircleSize:7\r\nOverallDifficulty:8.5\r\n" +
	"\r\n[Events]\r\nMode: 1\r\n"

func TestParseMapInfo(t *testing.T) {
	info, err := ParseMapInfo([]byte(sampleOsu))
	require.NoError(t, err)

	assert.Equal(t, ModeMania, info.Mode)
	assert.Equal(t, uint32(658127), info.MapID)
	assert.Equal(t, uint32(292301), info.MapsetID)
	assert.Equal(t, "[7K] xi - Blue Zenith [FOUR DIMENSIONS]", info.DisplayTitle())
	assert.InDelta(t, 8.5, info.OD, 0.001)
}

func TestParseMapInfoRejectsGarbage(t *testing.T) {
	_, err := ParseMapInfo([]byte("<html><body>too many requests</body></html>"))
	assert.Error(t, err)

	_, err = ParseMapInfo(nil)
	assert.Error(t, err)
}

func TestMapIDFromText(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
		ok   bool
	}{
		{"2240404", 2240404, true},
		{"https://osu.ppy.sh/beatmapsets/902425#osu/2240404", 2240404, true},
		{"https://osu.ppy.sh/b/123", 123, true},
		{"https://osu.ppy.sh/beatmaps/456", 456, true},
		{"https://osu.ppy.sh/beatmapsets/902425", 0, false},
		{"hdhr", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := MapIDFromText(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	id, ok := MapsetIDFromText("https://osu.ppy.sh/beatmapsets/902425")
	assert.True(t, ok)
	assert.Equal(t, uint32(902425), id)
}
