package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/hobbylink/internal/domain/entity"
)

func indexUsers(users ...*entity.User) map[string]*entity.User {
	byID := make(map[string]*entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID
}

func TestScoreHalfPoints(t *testing.T) {
	alice := &entity.User{ID: "a", Hobbies: []string{"Reading", "Hiking"}, Friends: []string{"b"}}
	bob := &entity.User{ID: "b", Hobbies: []string{"Hiking", "Coding"}, Friends: []string{"a"}}
	byID := indexUsers(alice, bob)

	// one friend (2 half-points) + one shared hobby (1 half-point)
	assert.Equal(t, 3, scoreHalfPoints(alice, byID))
	assert.Equal(t, 3, scoreHalfPoints(bob, byID))
	assert.Equal(t, 1.5, scoreFromHalfPoints(3))
}

func TestScoreNoFriends(t *testing.T) {
	u := &entity.User{ID: "a", Hobbies: []string{"Reading"}}
	assert.Zero(t, scoreHalfPoints(u, indexUsers(u)))
}

func TestScoreDanglingFriend(t *testing.T) {
	u := &entity.User{ID: "a", Hobbies: []string{"Reading"}, Friends: []string{"ghost"}}
	// the dangling id still counts toward the friend term
	assert.Equal(t, 2, scoreHalfPoints(u, indexUsers(u)))
}

func TestScoreSharedHobbyCountedOncePerName(t *testing.T) {
	alice := &entity.User{ID: "a", Hobbies: []string{"Hiking"}, Friends: []string{"b"}}
	bob := &entity.User{ID: "b", Hobbies: []string{"Hiking", "Hiking"}, Friends: []string{"a"}}

	assert.Equal(t, 3, scoreHalfPoints(alice, indexUsers(alice, bob)))
}

func TestScoreMultipleFriendsAccumulate(t *testing.T) {
	alice := &entity.User{ID: "a", Hobbies: []string{"Reading", "Hiking"}, Friends: []string{"b", "c"}}
	bob := &entity.User{ID: "b", Hobbies: []string{"Hiking"}, Friends: []string{"a"}}
	carol := &entity.User{ID: "c", Hobbies: []string{"Reading", "Hiking"}, Friends: []string{"a"}}
	byID := indexUsers(alice, bob, carol)

	// two friends (4) + 1 shared with bob + 2 shared with carol
	assert.Equal(t, 7, scoreHalfPoints(alice, byID))
	assert.Equal(t, 3.5, scoreFromHalfPoints(7))
}

func TestHalfPointsRoundTrip(t *testing.T) {
	for n := 0; n <= 64; n++ {
		assert.Equal(t, n, halfPointsOf(scoreFromHalfPoints(n)))
	}
}
