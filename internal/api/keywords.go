package api

import "fmt"

// --- Shared watchlist ---

func (c *Client) ListKeywords() ([]Keyword, error) {
	data, err := c.get("/api/keywords")
	if err != nil {
		return nil, err
	}
	return decodeList[Keyword](data)
}

func (c *Client) AddKeyword(input AddKeywordInput) (*Keyword, error) {
	data, err := c.post("/api/keywords", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Keyword](data)
}

// UpdateKeywordCategory moves a keyword to another category. An empty
// category clears it on the server.
func (c *Client) UpdateKeywordCategory(id, category string) (*Keyword, error) {
	body := map[string]string{"category": category}
	data, err := c.patch(fmt.Sprintf("/api/keywords/%s", id), body)
	if err != nil {
		return nil, err
	}
	return decodeOne[Keyword](data)
}

func (c *Client) DeleteKeyword(id string) error {
	_, err := c.del(fmt.Sprintf("/api/keywords/%s", id))
	return err
}

func (c *Client) SetKeywordActive(id string, active bool) error {
	body := map[string]bool{"is_active": active}
	_, err := c.patch(fmt.Sprintf("/api/keywords/%s/active", id), body)
	return err
}

// RefreshMatches asks the server to re-evaluate stored articles against the
// shared watchlist and reports how many changed.
func (c *Client) RefreshMatches() (*RefreshMatchesResult, error) {
	data, err := c.post("/api/keywords/refresh-matches", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[RefreshMatchesResult](data)
}

// --- Personal watchlist ---

func (c *Client) ListPersonalKeywords() ([]PersonalKeyword, error) {
	data, err := c.get("/api/keywords/personal")
	if err != nil {
		return nil, err
	}
	return decodeList[PersonalKeyword](data)
}

func (c *Client) AddPersonalKeyword(keyword string) (*PersonalKeyword, error) {
	body := map[string]string{"keyword": keyword}
	data, err := c.post("/api/keywords/personal", body)
	if err != nil {
		return nil, err
	}
	return decodeOne[PersonalKeyword](data)
}

func (c *Client) DeletePersonalKeyword(id string) error {
	_, err := c.del(fmt.Sprintf("/api/keywords/personal/%s", id))
	return err
}

func (c *Client) SetPersonalKeywordActive(id string, active bool) error {
	body := map[string]bool{"is_active": active}
	_, err := c.patch(fmt.Sprintf("/api/keywords/personal/%s/active", id), body)
	return err
}
