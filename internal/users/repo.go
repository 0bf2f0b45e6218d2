package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	PasswordHash    string    `json:"-"`
	Rating          float64   `json:"rating"`
	TotalRequests   int       `json:"totalRequests"`
	TotalDeliveries int       `json:"totalDeliveries"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type NewUser struct {
	Email        string
	Name         string
	PasswordHash string
}

func (r *Repo) Create(ctx context.Context, nu NewUser) (*User, error) {
	if nu.Email == "" || nu.Name == "" {
		return nil, fmt.Errorf("email and name required")
	}

	const q = `
insert into users (id, email, name, password_hash)
values ($1, $2, $3, nullif($4,''))
returning id::text, email, name, coalesce(password_hash,''), rating,
          total_requests, total_deliveries, created_at, updated_at;
`
	var u User
	err := r.db.QueryRow(ctx, q, uuid.New().String(), nu.Email, nu.Name, nu.PasswordHash).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Rating,
			&u.TotalRequests, &u.TotalDeliveries, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		// unique violation on email
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*User, error) {
	const q = `
select id::text, email, name, coalesce(password_hash,''), rating,
       total_requests, total_deliveries, created_at, updated_at
from users
where email = $1;
`
	return r.scanOne(r.db.QueryRow(ctx, q, email))
}

func (r *Repo) GetByID(ctx context.Context, id string) (*User, error) {
	const q = `
select id::text, email, name, coalesce(password_hash,''), rating,
       total_requests, total_deliveries, created_at, updated_at
from users
where id = $1::uuid;
`
	return r.scanOne(r.db.QueryRow(ctx, q, id))
}

func (r *Repo) scanOne(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Rating,
		&u.TotalRequests, &u.TotalDeliveries, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
