// Package mysql is the relational PlaceStore, selected with STORE_DRIVER=mysql.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"tourist_places/internal/adapters/observability"
	"tourist_places/internal/domain"
)

const driver = "mysql"

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Open connects with the go-sql-driver and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the places table and its unique keys when missing.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createPlacesSQL)
	return err
}

func (r *Repo) InsertIfAbsent(ctx context.Context, p domain.Place) (ok bool, err error) {
	defer func(start time.Time) { observability.ObserveStore(driver, "insert", err, start) }(time.Now())

	if p.Slug == "" {
		p.Slug = domain.Slugify(p.Name)
	}
	var lat, lon *float64
	if p.Coords != nil {
		lat, lon = &p.Coords.Lat, &p.Coords.Lon
	}

	res, err := r.db.ExecContext(ctx, insertPlaceSQL,
		uuid.NewString(),
		p.Slug,
		p.Name,
		p.Location,
		p.Description,
		p.Cost,
		p.Category,
		p.Rating,
		p.Image,
		valF64(lat),
		valF64(lon),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// buildListQuery renders the listing SELECT for f. Only criteria set on f become
// predicates, all bound as parameters.
func buildListQuery(f domain.PlaceFilter) (string, []any) {
	var (
		where = []string{"1=1"}
		args  []any
	)
	if f.MaxCost != nil {
		where = append(where, "cost <= ?")
		args = append(args, *f.MaxCost)
	}
	if f.Category != nil {
		where = append(where, "category = ?")
		args = append(args, *f.Category)
	}
	if f.MinRating != nil {
		where = append(where, "rating >= ?")
		args = append(args, *f.MinRating)
	}
	return selectPlaceCols + "WHERE " + strings.Join(where, " AND ") + "\nORDER BY created_at, name", args
}

func (r *Repo) Find(ctx context.Context, f domain.PlaceFilter) (out []domain.Place, err error) {
	defer func(start time.Time) { observability.ObserveStore(driver, "find", err, start) }(time.Now())

	q, args := buildListQuery(f)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out = []domain.Place{}
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo) FindBySlug(ctx context.Context, slug string) (p domain.Place, err error) {
	defer func(start time.Time) { observability.ObserveStore(driver, "find_slug", err, start) }(time.Now())

	p, err = scanPlace(r.db.QueryRowContext(ctx, getPlaceBySlugSQL, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Place{}, domain.ErrNotFound
	}
	return p, err
}

type scanner interface{ Scan(dest ...any) error }

func scanPlace(s scanner) (domain.Place, error) {
	var (
		p        domain.Place
		lat, lon sql.NullFloat64
	)
	if err := s.Scan(
		&p.ID,
		&p.Slug,
		&p.Name,
		&p.Location,
		&p.Description,
		&p.Cost,
		&p.Category,
		&p.Rating,
		&p.Image,
		&lat, &lon,
	); err != nil {
		return domain.Place{}, err
	}
	if lat.Valid && lon.Valid {
		p.Coords = &domain.Coords{Lat: lat.Float64, Lon: lon.Float64}
	}
	return p, nil
}
