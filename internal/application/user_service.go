package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hobbylink/internal/domain"
	"github.com/oksasatya/hobbylink/internal/domain/entity"
	repo "github.com/oksasatya/hobbylink/internal/domain/repository"
	"github.com/oksasatya/hobbylink/pkg/helpers"
)

const (
	graphCacheKey = "graph:view"
	graphCacheTTL = 10 * time.Second
)

// Service is the relationship engine: it owns every mutation of the friend
// graph and the invariants that keep it consistent. Redis and Elasticsearch
// are optional collaborators; the engine works with either set to nil.
type Service struct {
	Repo         repo.UserRepository
	Redis        *redis.Client
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
}

func NewService(r repo.UserRepository, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string) *Service {
	return &Service{
		Repo:         r,
		Redis:        rdb,
		Logger:       logger,
		ES:           es,
		ESUsersIndex: esUsersIndex,
	}
}

type CreateUserInput struct {
	Username string
	Age      int
	Hobbies  []string
}

type UpdateUserInput struct {
	Username *string
	Age      *int
	Hobbies  *[]string
}

// dedupe collapses repeated names while preserving first-seen order for
// display.
func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// CreateUser inserts a new user with an empty friend set and a zero score.
func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	u := &entity.User{
		Username:        in.Username,
		Age:             in.Age,
		Hobbies:         dedupe(in.Hobbies),
		Friends:         []string{},
		PopularityScore: 0,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.invalidateGraphCache(ctx)
	s.indexUser(ctx, u)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user created")
	}
	return u, nil
}

// UpdateUser replaces username/age/hobbies where present in the patch and
// leaves the friend set untouched.
func (s *Service) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*entity.User, error) {
	var updated *entity.User
	err := s.Repo.WithTx(ctx, func(tx repo.UserRepository) error {
		u, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if in.Username != nil {
			u.Username = *in.Username
		}
		if in.Age != nil {
			u.Age = *in.Age
		}
		if in.Hobbies != nil {
			u.Hobbies = dedupe(*in.Hobbies)
		}
		if err := tx.Update(ctx, u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateGraphCache(ctx)
	s.indexUser(ctx, updated)
	return updated, nil
}

// DeleteUser removes a user. Users that still have friends cannot be
// deleted; callers must unlink first.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	err := s.Repo.WithTx(ctx, func(tx repo.UserRepository) error {
		u, err := tx.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if len(u.Friends) > 0 {
			return fmt.Errorf("user %s: %w", id, domain.ErrHasActiveRelationships)
		}
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.invalidateGraphCache(ctx)
	s.removeUserIndex(ctx, id)
	if s.Logger != nil {
		s.Logger.WithField("user_id", id).Info("user deleted")
	}
	return nil
}

// Link creates a symmetric friendship between two users. Both friend sets
// change in one transaction; a concurrent reader never observes the edge
// half-applied. Rows are locked in canonical id order so two concurrent
// links over the same pair cannot deadlock.
func (s *Service) Link(ctx context.Context, aID, bID string) (a, b *entity.User, err error) {
	if aID == bID {
		return nil, nil, fmt.Errorf("user %s: %w", aID, domain.ErrSelfLink)
	}

	err = s.Repo.WithTx(ctx, func(tx repo.UserRepository) error {
		loID, hiID := canonicalPair(aID, bID)
		lo, err := tx.GetByID(ctx, loID)
		if err != nil {
			return err
		}
		hi, err := tx.GetByID(ctx, hiID)
		if err != nil {
			return err
		}

		// Symmetry holds, so checking one side is enough.
		if lo.HasFriend(hi.ID) {
			return fmt.Errorf("%s and %s: %w", aID, bID, domain.ErrAlreadyLinked)
		}

		lo.AddFriend(hi.ID)
		hi.AddFriend(lo.ID)
		if err := tx.Update(ctx, lo); err != nil {
			return err
		}
		if err := tx.Update(ctx, hi); err != nil {
			return err
		}

		if lo.ID == aID {
			a, b = lo, hi
		} else {
			a, b = hi, lo
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.invalidateGraphCache(ctx)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"a": a.ID, "b": b.ID}).Info("users linked")
	}
	return a, b, nil
}

// Unlink removes a friendship edge. If the peer was deleted concurrently,
// the surviving side still gets its entry removed and the operation reports
// success; scoring and projection already tolerate the dangling id in the
// meantime.
func (s *Service) Unlink(ctx context.Context, aID, bID string) (a *entity.User, err error) {
	err = s.Repo.WithTx(ctx, func(tx repo.UserRepository) error {
		var peer *entity.User
		loID, _ := canonicalPair(aID, bID)

		// Lock in canonical order, same as Link.
		for _, id := range []string{loID, otherOf(loID, aID, bID)} {
			u, err := tx.GetByID(ctx, id)
			if err != nil {
				if id != aID && errors.Is(err, domain.ErrUserNotFound) {
					continue
				}
				return err
			}
			if id == aID {
				a = u
			} else {
				peer = u
			}
		}

		if !a.HasFriend(bID) {
			return fmt.Errorf("%s and %s: %w", aID, bID, domain.ErrNotLinked)
		}

		a.RemoveFriend(bID)
		if err := tx.Update(ctx, a); err != nil {
			return err
		}
		if peer != nil {
			peer.RemoveFriend(aID)
			if err := tx.Update(ctx, peer); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateGraphCache(ctx)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"a": aID, "b": bID}).Info("users unlinked")
	}
	return a, nil
}

func otherOf(picked, a, b string) string {
	if picked == a {
		return b
	}
	return a
}

// ListAllWithScores reads the full snapshot, recomputes every popularity
// score against it and persists the ones that changed. This is the only
// place scores are computed; stored values are a cache of the last pass.
func (s *Service) ListAllWithScores(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for _, u := range users {
		hp := scoreHalfPoints(u, byID)
		if hp == halfPointsOf(u.PopularityScore) {
			continue
		}
		score := scoreFromHalfPoints(hp)
		if err := s.Repo.UpdateScore(ctx, u.ID, score); err != nil {
			// Deleted between snapshot and write-back; the stale score
			// died with the row.
			if errors.Is(err, domain.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		u.PopularityScore = score
	}

	return users, nil
}

// Graph returns the node/edge projection of the current snapshot, cached
// briefly in Redis. Every mutation invalidates the cache.
func (s *Service) Graph(ctx context.Context) (*entity.Graph, error) {
	if s.Redis != nil {
		var cached entity.Graph
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, graphCacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	users, err := s.ListAllWithScores(ctx)
	if err != nil {
		return nil, err
	}
	graph := BuildGraph(users)

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, graphCacheKey, graph, graphCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("graph cache write failed")
		}
	}
	return graph, nil
}

func (s *Service) invalidateGraphCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, graphCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("graph cache invalidation failed")
	}
}
