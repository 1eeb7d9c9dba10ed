package model

import "time"

// UserBlock is the binary "I do not want to see this user" relation.
// Existence alone means active; unblocking hard-deletes the row.
type UserBlock struct {
	BlockerID int64     `json:"blockerId"`
	BlockedID int64     `json:"blockedId"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreatorBlock suppresses all content from one creator for one viewer.
// Created active; lifted at most once. A re-block creates a new row.
type CreatorBlock struct {
	ID        int64      `json:"id"`
	CreatorID int64      `json:"creatorId"`
	Username  string     `json:"username,omitempty"`
	BlockedBy int64      `json:"blockedBy"`
	Reason    string     `json:"reason"`
	Active    bool       `json:"active"`
	LiftedBy  *int64     `json:"liftedBy,omitempty"`
	LiftedAt  *time.Time `json:"liftedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// VideoBlock suppresses a single video, platform-wide (global, privileged
// actors) or for the blocking viewer only (manual). StartAt/EndAt optionally
// bound a window within the video; EndAt == 0 means unbounded.
type VideoBlock struct {
	ID        int64      `json:"id"`
	VideoID   int64      `json:"videoId"`
	Title     string     `json:"title,omitempty"`
	Thumbnail string     `json:"thumbnail,omitempty"`
	BlockedBy int64      `json:"blockedBy"`
	BlockType string     `json:"blockType"`
	Reason    string     `json:"reason"`
	StartAt   int64      `json:"startAt"`
	EndAt     int64      `json:"endAt"`
	Active    bool       `json:"active"`
	LiftedBy  *int64     `json:"liftedBy,omitempty"`
	LiftedAt  *time.Time `json:"liftedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// BlockVideoRequest is the allow-listed body for POST /video-block/block/:videoId.
type BlockVideoRequest struct {
	BlockType string `json:"blockType"`
	Reason    string `json:"reason"`
	StartAt   int64  `json:"startAt"`
	EndAt     int64  `json:"endAt"`
}

// BlockCreatorRequest is the allow-listed body for POST /block-creator/block/:creatorId.
type BlockCreatorRequest struct {
	Reason string `json:"reason"`
}
