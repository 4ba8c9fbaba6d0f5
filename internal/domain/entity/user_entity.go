package entity

import (
	"slices"
	"time"
)

// User is the aggregate root of the hobby network.
//
// Hobbies and Friends are semantic sets: order is irrelevant for scoring and
// membership is unique. The store owns their wire encoding; the rest of the
// code only ever sees decoded slices.
type User struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Age             int       `json:"age"`
	Hobbies         []string  `json:"hobbies"`
	Friends         []string  `json:"friends"`
	CreatedAt       time.Time `json:"createdAt"`
	PopularityScore float64   `json:"popularityScore"`
}

// HasFriend reports whether the given user id is in the friend set.
func (u *User) HasFriend(id string) bool {
	return slices.Contains(u.Friends, id)
}

// AddFriend inserts the id into the friend set, ignoring duplicates.
func (u *User) AddFriend(id string) {
	if !u.HasFriend(id) {
		u.Friends = append(u.Friends, id)
	}
}

// RemoveFriend drops the id from the friend set if present.
func (u *User) RemoveFriend(id string) {
	u.Friends = slices.DeleteFunc(u.Friends, func(f string) bool { return f == id })
}
