package repository

import (
	"context"
	"database/sql"

	"trailspot/internal/model"
)

// HikingSpotRepo persists hiking spots, reads resolving the creator the same
// way SpotRepo does.
type HikingSpotRepo struct{ DB *sql.DB }

func NewHikingSpotRepo(db *sql.DB) *HikingSpotRepo { return &HikingSpotRepo{DB: db} }

const hikingSelect = `SELECT h.id, h.name, h.description, h.region, h.distance_km,
	h.difficulty_level, h.start_latitude, h.start_longitude, h.end_latitude,
	h.end_longitude, h.image_urls, h.creator_id, u.email, u.lastname
	FROM hiking_spots h
	JOIN users u ON u.id = h.creator_id`

// Create inserts a hiking spot and fills in its new ID.
func (r *HikingSpotRepo) Create(ctx context.Context, h *model.HikingSpot) error {
	images, err := imagesToJSON(h.ImageURLs)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO hiking_spots (name, description, region, distance_km, difficulty_level,
			start_latitude, start_longitude, end_latitude, end_longitude, image_urls, creator_id)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		h.Name, h.Description, h.Region, h.Distance, h.DifficultyLevel,
		h.StartLatitude, h.StartLongitude, h.EndLatitude, h.EndLongitude, images, h.CreatorID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

// GetByID fetches one hiking spot with its creator resolved.
func (r *HikingSpotRepo) GetByID(ctx context.Context, id uint64) (model.HikingSpot, error) {
	row := r.DB.QueryRowContext(ctx, hikingSelect+" WHERE h.id = ? LIMIT 1", id)
	return scanHikingSpot(row)
}

// ListAll returns the full hiking_spots table as an in-memory snapshot for
// the search engine.
func (r *HikingSpotRepo) ListAll(ctx context.Context) ([]model.HikingSpot, error) {
	rows, err := r.DB.QueryContext(ctx, hikingSelect+" ORDER BY h.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.HikingSpot, 0, 64)
	for rows.Next() {
		h, err := scanHikingSpot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// ListByCreator returns the hiking spots owned by one account.
func (r *HikingSpotRepo) ListByCreator(ctx context.Context, creatorID uint64) ([]model.HikingSpot, error) {
	rows, err := r.DB.QueryContext(ctx, hikingSelect+" WHERE h.creator_id = ? ORDER BY h.id", creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.HikingSpot, 0, 8)
	for rows.Next() {
		h, err := scanHikingSpot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Update rewrites the mutable fields of a hiking spot.
func (r *HikingSpotRepo) Update(ctx context.Context, h *model.HikingSpot) error {
	images, err := imagesToJSON(h.ImageURLs)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE hiking_spots SET name=?, description=?, region=?, distance_km=?, difficulty_level=?,
			start_latitude=?, start_longitude=?, end_latitude=?, end_longitude=?, image_urls=?
		 WHERE id=?`,
		h.Name, h.Description, h.Region, h.Distance, h.DifficultyLevel,
		h.StartLatitude, h.StartLongitude, h.EndLatitude, h.EndLongitude, images, h.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, h.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a hiking spot by id.
func (r *HikingSpotRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM hiking_spots WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanHikingSpot(row rowScanner) (model.HikingSpot, error) {
	var (
		h      model.HikingSpot
		images sql.NullString
	)
	err := row.Scan(&h.ID, &h.Name, &h.Description, &h.Region, &h.Distance,
		&h.DifficultyLevel, &h.StartLatitude, &h.StartLongitude, &h.EndLatitude,
		&h.EndLongitude, &images, &h.CreatorID, &h.CreatorEmail, &h.CreatorName)
	if err == sql.ErrNoRows {
		return h, ErrNotFound
	}
	if err != nil {
		return h, err
	}
	h.ImageURLs = imagesFromJSON(images)
	return h, nil
}
