package domain

import "time"

// Comment is a remark left on a todo.
type Comment struct {
	ID        string
	TodoID    string
	UserID    string
	Contents  string
	CreatedAt time.Time
}
