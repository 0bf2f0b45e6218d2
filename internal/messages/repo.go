package messages

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrRequestNotFound = errors.New("request not found")

// Sender is the message author projection embedded in reads.
type Sender struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	RequestID string    `json:"requestId"`
	SenderID  string    `json:"senderId"`
	CreatedAt time.Time `json:"createdAt"`
	Sender    Sender    `json:"sender"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// GetThread loads the participant/status slice of a request for the gate.
func (r *Repo) GetThread(ctx context.Context, requestID string) (*Thread, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return nil, ErrRequestNotFound
	}

	const q = `
select id::text, requester_id::text, fulfiller_id::text, status
from requests
where id = $1::uuid;
`
	var t Thread
	err := r.db.QueryRow(ctx, q, requestID).Scan(&t.RequestID, &t.RequesterID, &t.FulfillerID, &t.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByRequest returns a thread's messages oldest first.
func (r *Repo) ListByRequest(ctx context.Context, requestID string) ([]Message, error) {
	const q = `
select m.id::text, m.content, m.request_id::text, m.sender_id::text, m.created_at,
       u.name, u.email
from messages m
join users u on u.id = m.sender_id
where m.request_id = $1::uuid
order by m.created_at asc, m.id;
`
	rows, err := r.db.Query(ctx, q, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Message, 0, 16)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Content, &m.RequestID, &m.SenderID, &m.CreatedAt,
			&m.Sender.Name, &m.Sender.Email); err != nil {
			return nil, err
		}
		m.Sender.ID = m.SenderID
		out = append(out, m)
	}
	return out, rows.Err()
}

// Create appends a message to a thread. Messages are immutable once written.
func (r *Repo) Create(ctx context.Context, requestID, senderID, content string) (*Message, error) {
	const q = `
insert into messages (id, content, request_id, sender_id)
values ($1, $2, $3::uuid, $4::uuid)
returning id::text, content, request_id::text, sender_id::text, created_at;
`
	var m Message
	err := r.db.QueryRow(ctx, q, uuid.New().String(), content, requestID, senderID).
		Scan(&m.ID, &m.Content, &m.RequestID, &m.SenderID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}

	const sender = `select name, email from users where id = $1::uuid;`
	if err := r.db.QueryRow(ctx, sender, senderID).Scan(&m.Sender.Name, &m.Sender.Email); err != nil {
		return nil, err
	}
	m.Sender.ID = m.SenderID

	return &m, nil
}
