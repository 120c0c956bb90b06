package dto

// ProfileResponse is the signed-in user's account view. A WatchlistLimit
// of 0 means unlimited.
type ProfileResponse struct {
	UserID         string `json:"userId"`
	Premium        bool   `json:"premium"`
	WatchlistLimit int    `json:"watchlistLimit"`
}
