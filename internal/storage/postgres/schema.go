package postgres

import (
	"database/sql"
	"fmt"
)

// EnsureSchema creates the marketplace tables if they do not exist.
// Statements are idempotent so this is safe to run on every boot.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`create table if not exists users (
			id uuid primary key,
			email text not null unique,
			name text not null,
			password_hash text,
			rating double precision not null default 0,
			total_requests integer not null default 0,
			total_deliveries integer not null default 0,
			created_at timestamptz not null default now(),
			updated_at timestamptz not null default now()
		)`,
		`create table if not exists requests (
			id uuid primary key,
			title text not null,
			description text,
			category text not null,
			quantity integer not null,
			estimated_value double precision,
			source_city text not null,
			source_shop text,
			source_address text,
			alternative_source text,
			delivery_city text not null,
			meetup_area text,
			due_date timestamptz not null,
			status text not null default 'OPEN',
			requester_id uuid not null references users(id),
			fulfiller_id uuid references users(id),
			created_at timestamptz not null default now(),
			updated_at timestamptz not null default now(),
			check (fulfiller_id is null or fulfiller_id <> requester_id)
		)`,
		`create table if not exists messages (
			id uuid primary key,
			content text not null,
			request_id uuid not null references requests(id) on delete cascade,
			sender_id uuid not null references users(id),
			created_at timestamptz not null default now()
		)`,
		`create index if not exists idx_requests_status on requests(status)`,
		`create index if not exists idx_requests_category on requests(category)`,
		`create index if not exists idx_requests_delivery_city on requests(lower(delivery_city))`,
		`create index if not exists idx_requests_created_at on requests(created_at desc, id)`,
		`create index if not exists idx_messages_request_id on messages(request_id)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}
