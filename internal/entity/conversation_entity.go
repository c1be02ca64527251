package entity

import "time"

// Turn is one message in a conversation, either side.
type Turn struct {
	Role    string
	Content string
	At      time.Time
}
