package model

// ClientPlayer is one side as reported to clients.
type ClientPlayer struct {
	ID       string   `json:"name"`
	Color    Color    `json:"color"`
	Computer bool     `json:"computer"`
	Captured []string `json:"captured"`
	// ThinkTime is the accumulated thinking time in milliseconds.
	ThinkTime int64 `json:"thinkTime"`
}
