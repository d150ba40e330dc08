package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/travelplanner/booking-system/internal/core/domain"
	"github.com/travelplanner/booking-system/internal/core/ports"
)

const destinationColumns = "id, name, country, city, description, image_url, price"

type DestinationRepository struct {
	db DB
}

func NewDestinationRepository(db DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

func scanDestination(row pgx.Row) (*domain.Destination, error) {
	var d domain.Destination
	if err := row.Scan(&d.ID, &d.Name, &d.Country, &d.City, &d.Description, &d.ImageURL, &d.Price); err != nil {
		return nil, err
	}
	return &d, nil
}

func collectDestinations(rows pgx.Rows) ([]*domain.Destination, error) {
	defer rows.Close()
	out := make([]*domain.Destination, 0)
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DestinationRepository) FindByID(ctx context.Context, id int64) (*domain.Destination, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	d, err := scanDestination(r.db.QueryRow(ctx, `SELECT `+destinationColumns+` FROM destinations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDestinationNotFound
		}
		return nil, fmt.Errorf("find destination: %w", err)
	}
	return d, nil
}

func (r *DestinationRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Destination, error) {
	out := make(map[int64]*domain.Destination, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+destinationColumns+` FROM destinations WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("find destinations: %w", err)
	}
	list, err := collectDestinations(rows)
	if err != nil {
		return nil, fmt.Errorf("scan destinations: %w", err)
	}
	for _, d := range list {
		out[d.ID] = d
	}
	return out, nil
}

// destinationQuery builds the catalogue listing statement. Sort columns come
// from a fixed set, never from the filter text.
func destinationQuery(f ports.DestinationFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Search != "" {
		p := arg("%" + escapeLike(f.Search) + "%")
		where = append(where, fmt.Sprintf("(name ILIKE %[1]s OR city ILIKE %[1]s OR country ILIKE %[1]s)", p))
	}
	if f.Country != "" {
		where = append(where, "lower(country) = lower("+arg(f.Country)+")")
	}
	if f.MinPrice != nil {
		where = append(where, "price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, "price <= "+arg(*f.MaxPrice))
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + destinationColumns + " FROM destinations")
	if len(where) > 0 {
		sb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}

	dir := "ASC"
	if f.SortOrder == "desc" {
		dir = "DESC"
	}
	switch f.SortBy {
	case "price":
		sb.WriteString(" ORDER BY price " + dir + ", id " + dir)
	case "name":
		sb.WriteString(" ORDER BY lower(name) " + dir + ", id " + dir)
	case "country":
		sb.WriteString(" ORDER BY lower(country) " + dir + ", id " + dir)
	default:
		sb.WriteString(" ORDER BY id " + dir)
	}
	return sb.String(), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *DestinationRepository) List(ctx context.Context, f ports.DestinationFilter) ([]*domain.Destination, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, args := destinationQuery(f)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	out, err := collectDestinations(rows)
	if err != nil {
		return nil, fmt.Errorf("scan destinations: %w", err)
	}
	return out, nil
}

func (r *DestinationRepository) Create(ctx context.Context, d *domain.Destination) (*domain.Destination, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created, err := scanDestination(r.db.QueryRow(ctx,
		`INSERT INTO destinations (name, country, city, description, image_url, price)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+destinationColumns,
		d.Name, d.Country, d.City, d.Description, d.ImageURL, d.Price,
	))
	if err != nil {
		return nil, fmt.Errorf("insert destination: %w", err)
	}
	return created, nil
}

func (r *DestinationRepository) Update(ctx context.Context, d *domain.Destination) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx,
		`UPDATE destinations
		 SET name = $1, country = $2, city = $3, description = $4, image_url = $5, price = $6
		 WHERE id = $7`,
		d.Name, d.Country, d.City, d.Description, d.ImageURL, d.Price, d.ID,
	)
	if err != nil {
		return fmt.Errorf("update destination: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDestinationNotFound
	}
	return nil
}

func (r *DestinationRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM destinations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete destination: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDestinationNotFound
	}
	return nil
}
