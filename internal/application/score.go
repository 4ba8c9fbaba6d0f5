package application

import (
	"math"

	"github.com/oksasatya/hobbylink/internal/domain/entity"
)

// Popularity scores are sums of whole and half points, so all arithmetic and
// change detection happens in integer half-points. The float stored in the
// row is only ever derived from a half-point value, which keeps the
// "unchanged, skip the write" comparison exact on every platform.

// scoreHalfPoints computes 2*score for one user against a full snapshot:
// two half-points per friend plus one half-point per hobby shared with a
// resolvable friend. Dangling friend ids still count toward the friend term
// but contribute no shared-hobby credit.
func scoreHalfPoints(u *entity.User, byID map[string]*entity.User) int {
	hobbies := make(map[string]struct{}, len(u.Hobbies))
	for _, h := range u.Hobbies {
		hobbies[h] = struct{}{}
	}

	shared := 0
	for _, friendID := range u.Friends {
		friend, ok := byID[friendID]
		if !ok {
			continue
		}
		seen := make(map[string]struct{}, len(friend.Hobbies))
		for _, h := range friend.Hobbies {
			if _, dup := seen[h]; dup {
				continue
			}
			seen[h] = struct{}{}
			if _, match := hobbies[h]; match {
				shared++
			}
		}
	}

	return 2*len(u.Friends) + shared
}

func scoreFromHalfPoints(n int) float64 {
	return float64(n) / 2
}

func halfPointsOf(score float64) int {
	return int(math.Round(score * 2))
}
