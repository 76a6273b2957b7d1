package models

import "time"

// DiscussionThread is a project discussion about annotation disagreements.
type DiscussionThread struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Project   int64     `json:"project"`
	Version   *int64    `json:"version,omitempty"`
	Closed    bool      `json:"closed"`
	CreatedBy *int64    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DiscussionMessage is one message posted to a discussion thread.
type DiscussionMessage struct {
	ID        int64     `json:"id"`
	Thread    int64     `json:"thread"`
	Message   string    `json:"message"`
	CreatedBy *int64    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
