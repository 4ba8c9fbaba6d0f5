package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/hobbylink/internal/domain"
	"github.com/oksasatya/hobbylink/internal/domain/entity"
	"github.com/oksasatya/hobbylink/internal/domain/repository"
)

const pgUniqueViolation = "23505"

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the same queries
// serve pooled and transaction-scoped repositories.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository implements repository.UserRepository on Postgres.
//
// Hobbies and friends live as jsonb set columns inside the user row; pgx
// (de)serializes them at the boundary so callers only handle []string.
type UserRepository struct {
	pool *pgxpool.Pool // nil when scoped to a transaction
	q    querier
	inTx bool
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool, q: pool}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(domain.ErrStoreUnavailable, err))
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.q.QueryRow(ctx, `
		INSERT INTO users (username, age, hobbies, friends, popularity_score)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, u.Username, u.Age, u.Hobbies, u.Friends, u.PopularityScore)

	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("insert user %q: %w", u.Username, domain.ErrDuplicateUsername)
		}
		return storeErr("insert user", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `
		SELECT id, username, age, hobbies, friends, created_at, popularity_score
		FROM users
		WHERE id = $1`
	if r.inTx {
		query += `
		FOR UPDATE`
	}

	u := &entity.User{}
	row := r.q.QueryRow(ctx, query, id)
	if err := row.Scan(&u.ID, &u.Username, &u.Age, &u.Hobbies, &u.Friends,
		&u.CreatedAt, &u.PopularityScore); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrUserNotFound)
		}
		return nil, storeErr("query user", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, username, age, hobbies, friends, created_at, popularity_score
		FROM users
		ORDER BY created_at
	`)
	if err != nil {
		return nil, storeErr("query users", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u := &entity.User{}
		if err := rows.Scan(&u.ID, &u.Username, &u.Age, &u.Hobbies, &u.Friends,
			&u.CreatedAt, &u.PopularityScore); err != nil {
			return nil, storeErr("scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate users", err)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	res, err := r.q.Exec(ctx, `
		UPDATE users
		SET username = $1, age = $2, hobbies = $3, friends = $4
		WHERE id = $5
	`, u.Username, u.Age, u.Hobbies, u.Friends, u.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("rename user to %q: %w", u.Username, domain.ErrDuplicateUsername)
		}
		return storeErr("update user", err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", u.ID, domain.ErrUserNotFound)
	}
	return nil
}

func (r *UserRepository) UpdateScore(ctx context.Context, id string, score float64) error {
	res, err := r.q.Exec(ctx, `
		UPDATE users SET popularity_score = $1 WHERE id = $2
	`, score, id)
	if err != nil {
		return storeErr("update score", err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrUserNotFound)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete user", err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrUserNotFound)
	}
	return nil
}

// WithTx runs fn inside one transaction. A repository already scoped to a
// transaction reuses it, so engine operations compose.
func (r *UserRepository) WithTx(ctx context.Context, fn func(repository.UserRepository) error) error {
	if r.inTx {
		return fn(r)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storeErr("begin tx", err)
	}

	if err := fn(&UserRepository{q: tx, inTx: true}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit tx", err)
	}
	return nil
}
