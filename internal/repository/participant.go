package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tarra_waitlist/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Participant struct {
	ID            string         `db:"id"`
	ReferralCode  string         `db:"referral_code"`
	FullName      string         `db:"full_name"`
	Email         string         `db:"email"`
	PhoneNumber   string         `db:"phone_number"`
	Interests     pq.StringArray `db:"interests"`
	ReferredBy    *string        `db:"referred_by"`
	ReferralCount int            `db:"referral_count"`
	IsGhost       bool           `db:"is_ghost"`
	CreatedAt     time.Time      `db:"created_at"`
}

type leaderboardRow struct {
	FullName      string    `db:"full_name"`
	ReferralCount int       `db:"referral_count"`
	IsGhost       bool      `db:"is_ghost"`
	CreatedAt     time.Time `db:"created_at"`
}

func (p *Participant) toModel() *model.Participant {
	return &model.Participant{
		ID:            p.ID,
		ReferralCode:  p.ReferralCode,
		FullName:      p.FullName,
		Email:         p.Email,
		PhoneNumber:   p.PhoneNumber,
		Interests:     p.Interests,
		ReferredBy:    p.ReferredBy,
		ReferralCount: p.ReferralCount,
		IsGhost:       p.IsGhost,
		CreatedAt:     p.CreatedAt,
	}
}

// translateUnique maps the store's unique index violations onto the
// repository's duplicate sentinels so callers can name the colliding field.
func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case "participants_email_key":
		return ErrDuplicateEmail
	case "participants_phone_number_key":
		return ErrDuplicatePhone
	case "participants_referral_code_key":
		return ErrDuplicateCode
	}
	return err
}

// CreateParticipant inserts the participant and, when an attribution is
// recorded, credits the referrer. The counter update uses the store's own
// increment expression and runs as the final statement, so a failed insert
// can never leave partial credit behind.
func (r *Repository) CreateParticipant(ctx context.Context, p *model.Participant) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Insert("participants").
			SetMap(map[string]interface{}{
				"id":             p.ID,
				"referral_code":  p.ReferralCode,
				"full_name":      p.FullName,
				"email":          p.Email,
				"phone_number":   p.PhoneNumber,
				"interests":      pq.StringArray(p.Interests),
				"referred_by":    p.ReferredBy,
				"referral_count": p.ReferralCount,
				"is_ghost":       p.IsGhost,
				"created_at":     p.CreatedAt,
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build participant insert query: %w", err)
		}

		_, err = tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", translateUnique(err))
		}

		if p.ReferredBy != nil {
			updateQuery, updateArgs, err := squirrel.
				Update("participants").
				Set("referral_count", squirrel.Expr("referral_count + 1")).
				Where(squirrel.Eq{"referral_code": p.ReferredBy}).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build referrer update query: %w", err)
			}

			_, err = tx.ExecContext(ctx, updateQuery, updateArgs...)
			if err != nil {
				return fmt.Errorf("failed to credit referrer: %w", err)
			}
		}

		return nil
	})
}

func (r *Repository) getParticipantBy(ctx context.Context, pred squirrel.Eq) (*model.Participant, error) {
	var p Participant
	query, args, err := squirrel.
		Select("*").
		From("participants").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &p, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return p.toModel(), nil
}

func (r *Repository) GetParticipantByID(ctx context.Context, id string) (*model.Participant, error) {
	return r.getParticipantBy(ctx, squirrel.Eq{"id": id})
}

func (r *Repository) GetParticipantByCode(ctx context.Context, code string) (*model.Participant, error) {
	return r.getParticipantBy(ctx, squirrel.Eq{"referral_code": code})
}

func (r *Repository) GetParticipantByEmail(ctx context.Context, email string) (*model.Participant, error) {
	return r.getParticipantBy(ctx, squirrel.Eq{"email": email})
}

// GetRealParticipantByPhone is the identity recovery lookup. Ghost rows are
// excluded so a seeded phone number can never restore a session.
func (r *Repository) GetRealParticipantByPhone(ctx context.Context, phone string) (*model.Participant, error) {
	return r.getParticipantBy(ctx, squirrel.Eq{"phone_number": phone, "is_ghost": false})
}

func (r *Repository) GetParticipantByPhone(ctx context.Context, phone string) (*model.Participant, error) {
	return r.getParticipantBy(ctx, squirrel.Eq{"phone_number": phone})
}

// CountWithMoreReferrals counts participants, ghosts included, with a
// strictly higher referral count. Rank is one more than this.
func (r *Repository) CountWithMoreReferrals(ctx context.Context, count int) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From("participants").
		Where(squirrel.Gt{"referral_count": count}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	err = r.db.GetContext(ctx, &n, query, args...)
	if err != nil {
		return 0, err
	}

	return n, nil
}

// GetLeaderboardRows returns the top candidates ordered by referral count
// descending, name ascending as the display tie-break.
func (r *Repository) GetLeaderboardRows(ctx context.Context, limit int) ([]model.LeaderboardRow, error) {
	query, args, err := squirrel.
		Select("full_name", "referral_count", "is_ghost", "created_at").
		From("participants").
		OrderBy("referral_count DESC", "full_name ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var rows []leaderboardRow
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard rows: %w", err)
	}

	out := make([]model.LeaderboardRow, len(rows))
	for i, row := range rows {
		out[i] = model.LeaderboardRow{
			FirstName:     model.FirstToken(row.FullName),
			ReferralCount: row.ReferralCount,
			IsGhost:       row.IsGhost,
			CreatedAt:     row.CreatedAt,
		}
	}

	return out, nil
}

// GetDirectReferrals returns the participants attributed to the given code,
// newest first.
func (r *Repository) GetDirectReferrals(ctx context.Context, code string) ([]*model.Participant, error) {
	query, args, err := squirrel.
		Select("*").
		From("participants").
		Where(squirrel.Eq{"referred_by": code}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var referrals []Participant
	err = r.db.SelectContext(ctx, &referrals, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get direct referrals: %w", err)
	}

	out := make([]*model.Participant, len(referrals))
	for i := range referrals {
		out[i] = referrals[i].toModel()
	}

	return out, nil
}

// ResetGhosts deletes every synthetic row and inserts the given replacement
// set in one transaction. The administrative bulk reset is the only delete
// this store ever performs.
func (r *Repository) ResetGhosts(ctx context.Context, ghosts []*model.Participant) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		deleteQuery, deleteArgs, err := squirrel.
			Delete("participants").
			Where(squirrel.Eq{"is_ghost": true}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build ghost delete query: %w", err)
		}

		_, err = tx.ExecContext(ctx, deleteQuery, deleteArgs...)
		if err != nil {
			return fmt.Errorf("failed to delete ghosts: %w", err)
		}

		if len(ghosts) == 0 {
			return nil
		}

		builder := squirrel.
			Insert("participants").
			Columns("id", "referral_code", "full_name", "email", "phone_number",
				"interests", "referred_by", "referral_count", "is_ghost", "created_at")

		for _, g := range ghosts {
			builder = builder.Values(g.ID, g.ReferralCode, g.FullName, g.Email,
				g.PhoneNumber, pq.StringArray(g.Interests), nil, g.ReferralCount,
				true, g.CreatedAt)
		}

		query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build ghost insert query: %w", err)
		}

		_, err = tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to insert ghosts: %w", translateUnique(err))
		}

		return nil
	})
}
