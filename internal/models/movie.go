package models

// MovieRecord is a single catalog entry. Records are created at catalog
// load time and never mutated afterwards.
type MovieRecord struct {
	Title        string `json:"title"`
	Genre        string `json:"genre"`
	Rating       string `json:"rating"`
	DownloadLink string `json:"download_link"`
}

// SearchRequest is the request body for a movie search.
type SearchRequest struct {
	UserID string `json:"user_id"`
	Query  string `json:"query"`
}

// SearchResponse is the search response.
type SearchResponse struct {
	Query   string        `json:"query"`
	Results []MovieRecord `json:"results"`
}

// RegisterRequest is the request body for registering a user.
type RegisterRequest struct {
	UserID string `json:"user_id"`
}

// AddFavoriteRequest is the request body for adding a favorite.
type AddFavoriteRequest struct {
	Title string `json:"title"`
}

// FavoritesResponse lists a user's favorite titles.
type FavoritesResponse struct {
	UserID    string   `json:"user_id"`
	Favorites []string `json:"favorites"`
}

// HistoryResponse lists a user's past search queries in order.
type HistoryResponse struct {
	UserID  string   `json:"user_id"`
	History []string `json:"history"`
}
