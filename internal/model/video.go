package model

import "time"

// Video is a row in the videos table.
type Video struct {
	ID              int64     `json:"id"`
	VideoID         string    `json:"videoId"`
	ShortID         string    `json:"shortId,omitempty"`
	UserID          int64     `json:"userId"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Thumbnail       string    `json:"thumbnail,omitempty"`
	Duration        string    `json:"duration,omitempty"`
	Views           int64     `json:"views"`
	Rating          float64   `json:"rating"`
	Approved        bool      `json:"approved"`
	Featured        bool      `json:"featured"`
	Privacy         int       `json:"privacy"`
	IsShort         bool      `json:"isShort"`
	PublicationDate time.Time `json:"publicationDate"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Pagination metadata returned alongside listing results.
type PageInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// VideoListResponse is the API response for every video-listing path.
type VideoListResponse struct {
	Data       []Video  `json:"data"`
	Pagination PageInfo `json:"pagination"`
}
