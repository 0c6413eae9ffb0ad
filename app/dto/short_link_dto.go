package dto

// CreateShortLinkRequest is the body of POST /gen
type CreateShortLinkRequest struct {
	URL string `json:"url" validate:"required"`
}

// CreateShortLinkResponse carries the public short URL and the owner-only stats URL
type CreateShortLinkResponse struct {
	ShortURL string `json:"short_url"`
	StatsURL string `json:"stats_url"`
}

// ShortLinkStatsResponse is the full short link record returned to the token holder
type ShortLinkStatsResponse struct {
	ID       uint   `json:"id"`
	ShortKey string `json:"short_key"`
	URL      string `json:"url"`
	Token    string `json:"token"`
	Clicks   int    `json:"clicks"`
}
