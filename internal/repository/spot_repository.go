package repository

import (
	"context"
	"database/sql"

	"trailspot/internal/model"
)

// SpotRepo persists spots. Every read joins the users table so records come
// back with the creator's email and lastname already resolved; the search
// pipeline and response projection never do their own account lookups.
type SpotRepo struct{ DB *sql.DB }

func NewSpotRepo(db *sql.DB) *SpotRepo { return &SpotRepo{DB: db} }

const spotSelect = `SELECT s.id, s.name, s.description, s.latitude, s.longitude,
	s.image_urls, s.creator_id, u.email, u.lastname
	FROM spots s
	JOIN users u ON u.id = s.creator_id`

// Create inserts a spot and fills in its new ID.
func (r *SpotRepo) Create(ctx context.Context, s *model.Spot) error {
	images, err := imagesToJSON(s.ImageURLs)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO spots (name, description, latitude, longitude, image_urls, creator_id) VALUES (?,?,?,?,?,?)",
		s.Name, s.Description, s.Latitude, s.Longitude, images, s.CreatorID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID fetches one spot with its creator resolved.
func (r *SpotRepo) GetByID(ctx context.Context, id uint64) (model.Spot, error) {
	row := r.DB.QueryRowContext(ctx, spotSelect+" WHERE s.id = ? LIMIT 1", id)
	return scanSpot(row)
}

// ListAll returns the full spots table as an in-memory snapshot. The search
// engine receives this slice per call; no caching or staleness tracking
// happens here.
func (r *SpotRepo) ListAll(ctx context.Context) ([]model.Spot, error) {
	rows, err := r.DB.QueryContext(ctx, spotSelect+" ORDER BY s.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Spot, 0, 64)
	for rows.Next() {
		s, err := scanSpot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListByCreator returns the spots owned by one account.
func (r *SpotRepo) ListByCreator(ctx context.Context, creatorID uint64) ([]model.Spot, error) {
	rows, err := r.DB.QueryContext(ctx, spotSelect+" WHERE s.creator_id = ? ORDER BY s.id", creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Spot, 0, 8)
	for rows.Next() {
		s, err := scanSpot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update rewrites the mutable fields of a spot.
func (r *SpotRepo) Update(ctx context.Context, s *model.Spot) error {
	images, err := imagesToJSON(s.ImageURLs)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE spots SET name=?, description=?, latitude=?, longitude=?, image_urls=? WHERE id=?",
		s.Name, s.Description, s.Latitude, s.Longitude, images, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// distinguish "gone" from "unchanged"
		if _, err := r.GetByID(ctx, s.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a spot by id.
func (r *SpotRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM spots WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSpot(row rowScanner) (model.Spot, error) {
	var (
		s      model.Spot
		images sql.NullString
	)
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Latitude, &s.Longitude,
		&images, &s.CreatorID, &s.CreatorEmail, &s.CreatorName)
	if err == sql.ErrNoRows {
		return s, ErrNotFound
	}
	if err != nil {
		return s, err
	}
	s.ImageURLs = imagesFromJSON(images)
	return s, nil
}
