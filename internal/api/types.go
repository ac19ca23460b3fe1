package api

import "time"

// --- Watchlist ---

// Keyword represents a shared watchlist entry visible to every analyst.
// Category is empty for uncategorized keywords.
type Keyword struct {
	ID        string     `json:"id"`
	Keyword   string     `json:"keyword"`
	Category  string     `json:"category,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// PersonalKeyword represents a watchlist entry private to the requesting
// user. The server enforces per-user scoping; the client never sees other
// users' entries.
type PersonalKeyword struct {
	ID       string `json:"id"`
	Keyword  string `json:"keyword"`
	IsActive bool   `json:"is_active"`
}

// AddKeywordInput defines the fields for creating a watchlist entry.
type AddKeywordInput struct {
	Keyword  string `json:"keyword"`
	Category string `json:"category,omitempty"`
}

// RefreshMatchesResult reports the outcome of re-evaluating stored articles
// against the shared watchlist.
type RefreshMatchesResult struct {
	ArticlesUpdated      int `json:"articles_updated"`
	HighPriorityArticles int `json:"high_priority_articles"`
}

// --- Feeds ---

// Feed represents a custom feed subscription.
type Feed struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	URL             string     `json:"url"`
	Enabled         bool       `json:"enabled"`
	IntervalMinutes int        `json:"interval_minutes"`
	LastFetchedAt   *time.Time `json:"last_fetched_at,omitempty"`
	LastError       string     `json:"last_error,omitempty"`
	ArticleCount    int        `json:"article_count"`
}

// CreateFeedInput defines the fields for subscribing to a feed.
type CreateFeedInput struct {
	Name            string `json:"name"`
	URL             string `json:"url"`
	IntervalMinutes int    `json:"interval_minutes,omitempty"`
}

// --- System ---

// SystemStatus is the monitoring snapshot shown on the dashboard.
type SystemStatus struct {
	Status            string     `json:"status"`
	UptimeSeconds     int64      `json:"uptime_seconds"`
	ArticleCount      int        `json:"article_count"`
	ArticlesToday     int        `json:"articles_today"`
	HighPriorityCount int        `json:"high_priority_count"`
	FeedsHealthy      int        `json:"feeds_healthy"`
	FeedsFailing      int        `json:"feeds_failing"`
	StorageBytes      int64      `json:"storage_bytes"`
	LastIngestAt      *time.Time `json:"last_ingest_at,omitempty"`
}

// --- Settings ---

// Settings holds server-side retention configuration.
type Settings struct {
	RetentionDays   int  `json:"retention_days"`
	AutoPurge       bool `json:"auto_purge"`
	HighPriorityPin bool `json:"high_priority_pin"`
}

// UpdateSettingsInput defines the mutable settings fields.
type UpdateSettingsInput struct {
	RetentionDays   *int  `json:"retention_days,omitempty"`
	AutoPurge       *bool `json:"auto_purge,omitempty"`
	HighPriorityPin *bool `json:"high_priority_pin,omitempty"`
}

// PurgeResult reports how many articles a retention purge removed.
type PurgeResult struct {
	Removed int `json:"removed"`
}

// --- Auth ---

// LoginInput defines the credentials for logging in.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse contains the session information after a successful login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}
