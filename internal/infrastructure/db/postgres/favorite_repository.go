package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/travelplanner/booking-system/internal/core/domain"
)

type FavoriteRepository struct {
	db DB
}

func NewFavoriteRepository(db DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Create(ctx context.Context, f *domain.Favorite) (*domain.Favorite, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	out := domain.Favorite{UserID: f.UserID, DestinationID: f.DestinationID}
	err := r.db.QueryRow(ctx,
		`INSERT INTO favorites (user_id, destination_id) VALUES ($1, $2) RETURNING id`,
		f.UserID, f.DestinationID,
	).Scan(&out.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrFavoriteExists
		}
		return nil, fmt.Errorf("insert favorite: %w", err)
	}
	return &out, nil
}

func (r *FavoriteRepository) FindByID(ctx context.Context, id int64) (*domain.Favorite, error) {
	return r.findOne(ctx, `SELECT id, user_id, destination_id FROM favorites WHERE id = $1`, id)
}

func (r *FavoriteRepository) FindByOwnerAndDestination(ctx context.Context, userID, destinationID int64) (*domain.Favorite, error) {
	return r.findOne(ctx,
		`SELECT id, user_id, destination_id FROM favorites WHERE user_id = $1 AND destination_id = $2`,
		userID, destinationID)
}

func (r *FavoriteRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Favorite, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var f domain.Favorite
	if err := r.db.QueryRow(ctx, query, args...).Scan(&f.ID, &f.UserID, &f.DestinationID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFavoriteNotFound
		}
		return nil, fmt.Errorf("find favorite: %w", err)
	}
	return &f, nil
}

func (r *FavoriteRepository) FindByOwner(ctx context.Context, userID int64) ([]*domain.Favorite, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, user_id, destination_id FROM favorites WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Favorite, 0)
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.DestinationID); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}

// Delete only matches a favorite that still belongs to ownerID.
func (r *FavoriteRepository) Delete(ctx context.Context, id, ownerID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepository) DeleteByDestination(ctx context.Context, destinationID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE destination_id = $1`, destinationID); err != nil {
		return fmt.Errorf("delete favorites: %w", err)
	}
	return nil
}
