package domain

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// MapInfo son los metadatos que leemos del .osu.
type MapInfo struct {
	MapID      uint32
	MapsetID   uint32
	Mode       GameMode
	Artist     string
	Title      string
	Version    string
	Creator    string
	CircleSize float64
	OD         float64
}

func (m MapInfo) URL() string {
	return fmt.Sprintf("https://osu.ppy.sh/b/%d", m.MapID)
}

func (m MapInfo) DisplayTitle() string {
	t := fmt.Sprintf("%s - %s [%s]", m.Artist, m.Title, m.Version)
	if m.Mode == ModeMania && m.CircleSize > 0 {
		t = fmt.Sprintf("[%dK] %s", int(m.CircleSize), t)
	}
	return t
}

// ParseMapInfo lee las secciones [General], [Metadata] y [Difficulty] de un .osu.
func ParseMapInfo(content []byte) (MapInfo, error) {
	var info MapInfo
	sc := bufio.NewScanner(bytes.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	first := true
	section := ""
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if first {
			first = false
			line = strings.TrimPrefix(line, "\ufeff")
			if !strings.HasPrefix(line, "osu file format") {
				return MapInfo{}, fmt.Errorf("not an .osu file")
			}
			continue
		}
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = line[1 : len(line)-1]
			if section == "Events" || section == "TimingPoints" || section == "HitObjects" {
				break
			}
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		switch section {
		case "General":
			if key == "Mode" {
				n, err := strconv.Atoi(value)
				if err != nil || n < 0 || n > 3 {
					return MapInfo{}, fmt.Errorf("invalid mode %q", value)
				}
				info.Mode = GameMode(n)
			}
		case "Metadata":
			switch key {
			case "Title":
				info.Title = value
			case "Artist":
				info.Artist = value
			case "Creator":
				info.Creator = value
			case "Version":
				info.Version = value
			case "BeatmapID":
				if n, err := strconv.ParseUint(value, 10, 32); err == nil {
					info.MapID = uint32(n)
				}
			case "BeatmapSetID":
				if n, err := strconv.ParseUint(value, 10, 32); err == nil {
					info.MapsetID = uint32(n)
				}
			}
		case "Difficulty":
			switch key {
			case "CircleSize":
				info.CircleSize, _ = strconv.ParseFloat(value, 64)
			case "OverallDifficulty":
				info.OD, _ = strconv.ParseFloat(value, 64)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return MapInfo{}, err
	}
	if first {
		return MapInfo{}, fmt.Errorf("empty .osu file")
	}
	return info, nil
}
