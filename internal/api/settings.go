package api

// --- System settings ---

func (c *Client) GetSettings() (*Settings, error) {
	data, err := c.get("/api/settings")
	if err != nil {
		return nil, err
	}
	return decodeOne[Settings](data)
}

func (c *Client) UpdateSettings(input UpdateSettingsInput) (*Settings, error) {
	data, err := c.put("/api/settings", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Settings](data)
}

// PurgeArticles removes articles older than the retention window now
// instead of waiting for the scheduled purge.
func (c *Client) PurgeArticles() (*PurgeResult, error) {
	data, err := c.post("/api/settings/purge", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[PurgeResult](data)
}
