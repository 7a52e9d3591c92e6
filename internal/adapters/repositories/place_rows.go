package repositories

import (
	"database/sql"
	"fmt"
	"trip-course-service/internal/domain"
)

// Shared projection for both SQL dialects. Rating is the review average
// (DefaultRating when unreviewed); concentration is the most recent rate.
const catalogSelect = `
SELECT place_id, name, address, lat, lon, category, city_id, rating, concentration
FROM (
	SELECT
		p.place_id,
		p.name,
		p.address,
		p.lat,
		p.lon,
		p.category,
		p.city_id,
		COALESCE(
			(SELECT AVG(r.rating) FROM reviews r WHERE r.place_id = p.place_id),
			3.0
		) AS rating,
		(
			SELECT c.rate
			FROM concentration_rates c
			WHERE c.place_id = p.place_id
			ORDER BY c.base_date DESC
			LIMIT 1
		) AS concentration
	FROM places p
) AS catalog
`

// Bounds check applied by alternative lookups so LIMIT only counts usable rows.
const validCoordinatesClause = `lat IS NOT NULL AND lon IS NOT NULL
	AND lat BETWEEN -90 AND 90 AND lon BETWEEN -180 AND 180`

func scanPlaces(rows *sql.Rows, op string) ([]domain.Place, error) {
	defer rows.Close()

	out := make([]domain.Place, 0, 64)
	for rows.Next() {
		var (
			p             domain.Place
			lat, lon      sql.NullFloat64
			concentration sql.NullFloat64
		)
		err := rows.Scan(
			&p.PlaceID,
			&p.Name,
			&p.Address,
			&lat,
			&lon,
			&p.Category,
			&p.CityID,
			&p.Rating,
			&concentration,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}

		p.Location = domain.NoCoordinates
		if lat.Valid && lon.Valid {
			p.Location = domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
		}
		if concentration.Valid {
			c := concentration.Float64
			p.Concentration = &c
		}
		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: row iteration: %w", op, err)
	}

	return out, nil
}

func indexByID(places []domain.Place) map[int]domain.Place {
	out := make(map[int]domain.Place, len(places))
	for _, p := range places {
		out[p.PlaceID] = p
	}
	return out
}

func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
