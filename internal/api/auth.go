package api

// Login exchanges credentials for a bearer token.
func (c *Client) Login(username, password string) (*LoginResponse, error) {
	data, err := c.post("/api/auth/login", LoginInput{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	return decodeOne[LoginResponse](data)
}
