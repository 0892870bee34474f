package osu

import (
	"context"
	"fmt"
)

// MapFile descarga el .osu de un map.
func (c *Client) MapFile(ctx context.Context, mapID uint32) ([]byte, error) {
	return c.get(ctx, SiteMapFile, fmt.Sprintf("%sosu/%d", c.baseURL, mapID), notHTML)
}
