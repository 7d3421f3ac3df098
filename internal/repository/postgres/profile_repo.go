package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	errx "github.com/vserve-support/server/internal/core/error"
	"github.com/vserve-support/server/internal/models"
)

type ProfileRepo struct{ db *pgxpool.Pool }

func NewProfileRepo(db *pgxpool.Pool) *ProfileRepo { return &ProfileRepo{db: db} }

// Get returns nil when no profile is on file for the user; the dialogue falls
// back to sentinel values in that case.
func (r *ProfileRepo) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	var p models.UserProfile
	err := r.db.QueryRow(ctx, `
		SELECT user_id, first_name, last_name, address, contact_no, COALESCE(role, '')
		FROM user_profiles
		WHERE user_id = $1`, userID,
	).Scan(&p.UserID, &p.FirstName, &p.LastName, &p.Address, &p.ContactNumber, &p.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errx.WrapPostgres(err)
	}
	return &p, nil
}
