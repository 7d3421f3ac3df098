package postgres

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	errx "github.com/vserve-support/server/internal/core/error"
	"github.com/vserve-support/server/internal/models"
)

type TicketRepo struct{ db *pgxpool.Pool }

func NewTicketRepo(db *pgxpool.Pool) *TicketRepo { return &TicketRepo{db: db} }

const ticketColumns = `
	id, user_id, first_name, last_name, address, contact_no,
	issue_title, issue_description, scheduled_time, status,
	COALESCE(user_role, ''), created_at, deadline, COALESCE(last_updated, created_at)`

func (r *TicketRepo) Create(ctx context.Context, t *models.Ticket) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO tickets (
			id, user_id, first_name, last_name, address, contact_no,
			issue_title, issue_description, scheduled_time, status,
			user_role, created_at, deadline
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NULLIF($11,''),$12,$13)`,
		t.ID, t.UserID, t.FirstName, t.LastName, t.Address, t.ContactNumber,
		t.IssueTitle, t.IssueDescription, t.ScheduledTime, t.Status,
		t.UserRole, t.CreatedAt, t.Deadline,
	)
	if err != nil {
		return errx.WrapPostgres(err)
	}
	return nil
}

func (r *TicketRepo) ListByUser(ctx context.Context, userID string) ([]models.Ticket, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+ticketColumns+`
		FROM tickets
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, errx.WrapPostgres(err)
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *TicketRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE tickets SET status = $2, last_updated = $3 WHERE id = $1`,
		id, status, time.Now())
	if err != nil {
		return errx.WrapPostgres(err)
	}
	if tag.RowsAffected() == 0 {
		return errx.New(nil, http.StatusNotFound, errx.NotFoundMessage)
	}
	return nil
}

func (r *TicketRepo) ListAll(ctx context.Context) ([]models.Ticket, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+ticketColumns+`
		FROM tickets
		ORDER BY created_at`)
	if err != nil {
		return nil, errx.WrapPostgres(err)
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *TicketRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id); err != nil {
		return errx.WrapPostgres(err)
	}
	return nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanTickets(rows rowScanner) ([]models.Ticket, error) {
	var out []models.Ticket
	for rows.Next() {
		var t models.Ticket
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.FirstName, &t.LastName, &t.Address, &t.ContactNumber,
			&t.IssueTitle, &t.IssueDescription, &t.ScheduledTime, &t.Status,
			&t.UserRole, &t.CreatedAt, &t.Deadline, &t.LastUpdated,
		); err != nil {
			return nil, errx.WrapPostgres(err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errx.WrapPostgres(err)
	}
	return out, nil
}
