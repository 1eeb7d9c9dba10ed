package model

import "time"

// Comment is a row in the comments table, joined with its author for
// listing responses.
type Comment struct {
	ID        int64     `json:"id"`
	VideoID   int64     `json:"videoId"`
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar,omitempty"`
	Verified  bool      `json:"verified"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentListResponse is the API response for a video's comment listing.
type CommentListResponse struct {
	Data       []Comment `json:"data"`
	Pagination PageInfo  `json:"pagination"`
}
