package api

import "fmt"

// --- Feed subscriptions ---

func (c *Client) ListFeeds() ([]Feed, error) {
	data, err := c.get("/api/feeds")
	if err != nil {
		return nil, err
	}
	return decodeList[Feed](data)
}

func (c *Client) AddFeed(input CreateFeedInput) (*Feed, error) {
	data, err := c.post("/api/feeds", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Feed](data)
}

func (c *Client) DeleteFeed(id string) error {
	_, err := c.del(fmt.Sprintf("/api/feeds/%s", id))
	return err
}

func (c *Client) SetFeedEnabled(id string, enabled bool) error {
	body := map[string]bool{"enabled": enabled}
	_, err := c.patch(fmt.Sprintf("/api/feeds/%s/enabled", id), body)
	return err
}
