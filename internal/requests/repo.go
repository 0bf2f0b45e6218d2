package requests

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const selectRequest = `
select r.id::text, r.title, r.description, r.category, r.quantity, r.estimated_value,
       r.source_city, r.source_shop, r.source_address, r.alternative_source,
       r.delivery_city, r.meetup_area, r.due_date, r.status,
       r.requester_id::text, r.fulfiller_id::text, r.created_at, r.updated_at,
       ru.name, ru.email, ru.rating, ru.total_requests, ru.total_deliveries,
       fu.name, fu.email, fu.rating, fu.total_requests, fu.total_deliveries,
       (select count(*) from messages m where m.request_id = r.id)
from requests r
join users ru on ru.id = r.requester_id
left join users fu on fu.id = r.fulfiller_id
`

func scanRequest(row pgx.Row) (*Request, error) {
	var (
		req                                         Request
		requester                                   UserSummary
		fulfillerName, fulfillerEmail               *string
		fulfillerRating                             *float64
		fulfillerTotalRequests, fulfillerDeliveries *int
	)

	err := row.Scan(
		&req.ID, &req.Title, &req.Description, &req.Category, &req.Quantity, &req.EstimatedValue,
		&req.SourceCity, &req.SourceShop, &req.SourceAddress, &req.AlternativeSource,
		&req.DeliveryCity, &req.MeetupArea, &req.DueDate, &req.Status,
		&req.RequesterID, &req.FulfillerID, &req.CreatedAt, &req.UpdatedAt,
		&requester.Name, &requester.Email, &requester.Rating,
		&requester.TotalRequests, &requester.TotalDeliveries,
		&fulfillerName, &fulfillerEmail, &fulfillerRating,
		&fulfillerTotalRequests, &fulfillerDeliveries,
		&req.MessageCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	requester.ID = req.RequesterID
	req.Requester = &requester

	if req.FulfillerID != nil {
		req.Fulfiller = &UserSummary{
			ID:              *req.FulfillerID,
			Name:            *fulfillerName,
			Email:           *fulfillerEmail,
			Rating:          *fulfillerRating,
			TotalRequests:   *fulfillerTotalRequests,
			TotalDeliveries: *fulfillerDeliveries,
		}
	}

	return &req, nil
}

// Create inserts a new OPEN request and bumps the requester's total_requests
// counter in the same transaction.
func (r *Repo) Create(ctx context.Context, requesterID string, in CreateInput) (*Request, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	id := uuid.New().String()

	const insert = `
insert into requests (id, title, description, category, quantity, estimated_value,
                      source_city, source_shop, source_address, alternative_source,
                      delivery_city, meetup_area, due_date, requester_id)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14::uuid);
`
	_, err = tx.Exec(ctx, insert,
		id, strings.TrimSpace(in.Title), in.Description, in.Category, in.Quantity, in.EstimatedValue,
		strings.TrimSpace(in.SourceCity), in.SourceShop, in.SourceAddress, in.AlternativeSource,
		strings.TrimSpace(in.DeliveryCity), in.MeetupArea, in.DueDate, requesterID)
	if err != nil {
		return nil, fmt.Errorf("insert request: %w", err)
	}

	const bump = `update users set total_requests = total_requests + 1, updated_at = now() where id = $1::uuid;`
	if _, err := tx.Exec(ctx, bump, requesterID); err != nil {
		return nil, fmt.Errorf("bump requester counter: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Request, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	q := selectRequest + ` where r.id = $1::uuid;`
	return scanRequest(r.db.QueryRow(ctx, q, id))
}

func buildListWhere(f ListFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if f.Category != nil {
		args = append(args, *f.Category)
		conds = append(conds, fmt.Sprintf("r.category = $%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		conds = append(conds, fmt.Sprintf("r.status = $%d", len(args)))
	}
	if f.DeliveryCity != "" {
		args = append(args, "%"+f.DeliveryCity+"%")
		conds = append(conds, fmt.Sprintf("r.delivery_city ilike $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " where " + strings.Join(conds, " and "), args
}

// List returns a page of requests with the full participant projection,
// newest first, plus the unpaginated total for the filter.
func (r *Repo) List(ctx context.Context, f ListFilter) ([]Request, int, error) {
	where, args := buildListWhere(f)

	total, err := r.countRequests(ctx, where, args)
	if err != nil {
		return nil, 0, err
	}

	q := selectRequest + where +
		fmt.Sprintf(" order by r.created_at desc, r.id limit $%d offset $%d;", len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Request, 0, f.Limit)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *req)
	}
	return out, total, rows.Err()
}

// ListPublic returns the field-limited projection for the unauthenticated
// listing. Internal sourcing fields and requester contact details are never
// selected.
func (r *Repo) ListPublic(ctx context.Context, f ListFilter) ([]PublicRequest, int, error) {
	where, args := buildListWhere(f)

	total, err := r.countRequests(ctx, where, args)
	if err != nil {
		return nil, 0, err
	}

	q := `
select r.id::text, r.title, r.description, r.category, r.quantity, r.estimated_value,
       r.source_city, r.delivery_city, r.status, r.due_date, r.created_at,
       ru.id::text, ru.name, ru.rating, ru.total_requests, ru.total_deliveries,
       (select count(*) from messages m where m.request_id = r.id)
from requests r
join users ru on ru.id = r.requester_id
` + where + fmt.Sprintf(" order by r.created_at desc, r.id limit $%d offset $%d;", len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]PublicRequest, 0, f.Limit)
	for rows.Next() {
		var p PublicRequest
		err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Category, &p.Quantity, &p.EstimatedValue,
			&p.SourceCity, &p.DeliveryCity, &p.Status, &p.DueDate, &p.CreatedAt,
			&p.Requester.ID, &p.Requester.Name, &p.Requester.Rating,
			&p.Requester.TotalRequests, &p.Requester.TotalDeliveries,
			&p.MessageCount,
		)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *Repo) countRequests(ctx context.Context, where string, args []any) (int, error) {
	var total int
	q := `select count(*) from requests r` + where + `;`
	if err := r.db.QueryRow(ctx, q, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// UpdateFields writes the provided non-status fields. Authorization and the
// OPEN-only gate are the caller's responsibility (see CanEdit).
func (r *Repo) UpdateFields(ctx context.Context, id string, in UpdateInput) (*Request, error) {
	const q = `
update requests
set title              = coalesce($2, title),
    description        = coalesce($3, description),
    category           = coalesce($4, category),
    quantity           = coalesce($5, quantity),
    estimated_value    = coalesce($6, estimated_value),
    source_city        = coalesce($7, source_city),
    source_shop        = coalesce($8, source_shop),
    source_address     = coalesce($9, source_address),
    alternative_source = coalesce($10, alternative_source),
    delivery_city      = coalesce($11, delivery_city),
    meetup_area        = coalesce($12, meetup_area),
    due_date           = coalesce($13, due_date),
    updated_at         = now()
where id = $1::uuid;
`
	ct, err := r.db.Exec(ctx, q, id,
		in.Title, in.Description, in.Category, in.Quantity, in.EstimatedValue,
		in.SourceCity, in.SourceShop, in.SourceAddress, in.AlternativeSource,
		in.DeliveryCity, in.MeetupArea, in.DueDate)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// SetStatus applies the direct status override without state checks.
func (r *Repo) SetStatus(ctx context.Context, id string, status Status) (*Request, error) {
	const q = `update requests set status = $2, updated_at = now() where id = $1::uuid;`
	ct, err := r.db.Exec(ctx, q, id, status)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Fulfill performs the OPEN -> IN_PROGRESS transition atomically. The row is
// locked and re-validated inside the transaction so that of two concurrent
// attempts exactly one wins; the loser gets ErrConflict. The winner's
// total_deliveries counter is bumped in the same transaction.
func (r *Repo) Fulfill(ctx context.Context, id, fulfillerID string) (*Request, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const lock = `
select status, requester_id::text, fulfiller_id::text
from requests
where id = $1::uuid
for update;
`
	var (
		status           Status
		requesterID      string
		currentFulfiller *string
	)
	if err := tx.QueryRow(ctx, lock, id).Scan(&status, &requesterID, &currentFulfiller); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if requesterID == fulfillerID {
		return nil, fmt.Errorf("%w: cannot fulfill your own request", ErrInvalidState)
	}
	if status != StatusOpen || currentFulfiller != nil {
		return nil, ErrConflict
	}

	const claim = `
update requests
set status = $2, fulfiller_id = $3::uuid, updated_at = now()
where id = $1::uuid;
`
	if _, err := tx.Exec(ctx, claim, id, StatusInProgress, fulfillerID); err != nil {
		return nil, fmt.Errorf("claim request: %w", err)
	}

	const bump = `update users set total_deliveries = total_deliveries + 1, updated_at = now() where id = $1::uuid;`
	if _, err := tx.Exec(ctx, bump, fulfillerID); err != nil {
		return nil, fmt.Errorf("bump fulfiller counter: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Cancel performs the OPEN -> CANCELLED transition and decrements the
// requester's total_requests counter in the same transaction. A request that
// left OPEN between the caller's check and the write maps to ErrConflict.
func (r *Repo) Cancel(ctx context.Context, id, requesterID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `
update requests
set status = $2, updated_at = now()
where id = $1::uuid and status = $3;
`
	ct, err := tx.Exec(ctx, q, id, StatusCancelled, StatusOpen)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrConflict
	}

	const drop = `update users set total_requests = greatest(total_requests - 1, 0), updated_at = now() where id = $1::uuid;`
	if _, err := tx.Exec(ctx, drop, requesterID); err != nil {
		return fmt.Errorf("drop requester counter: %w", err)
	}

	return tx.Commit(ctx)
}

// HardDelete permanently removes a request. Messages go with it via the
// foreign key cascade, and the requester's total_requests counter is
// decremented in the same transaction.
func (r *Repo) HardDelete(ctx context.Context, id, requesterID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `delete from requests where id = $1::uuid;`
	ct, err := tx.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	const drop = `update users set total_requests = greatest(total_requests - 1, 0), updated_at = now() where id = $1::uuid;`
	if _, err := tx.Exec(ctx, drop, requesterID); err != nil {
		return fmt.Errorf("drop requester counter: %w", err)
	}

	return tx.Commit(ctx)
}
