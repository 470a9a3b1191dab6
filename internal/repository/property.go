package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/homeauctiondeals/gateway/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// LocationSuggestionLimit caps the number of autocomplete rows.
const LocationSuggestionLimit = 7

// Querier is the subset of pgxpool.Pool used by repositories.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PropertyRepository struct {
	db Querier
}

func NewPropertyRepository(db Querier) *PropertyRepository {
	return &PropertyRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns keyword into an ILIKE pattern matching it anywhere.
// Wildcards typed by the user are matched literally.
func containsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}

// A city can span several states and zips; one representative of each is
// returned, not every combination.
var searchLocationsSQL = fmt.Sprintf(`
SELECT property_city,
       MIN(property_state) AS property_state,
       MIN(property_zip) AS property_zip,
       COUNT(*) AS match_count
FROM property
WHERE property_zip ILIKE $1 ESCAPE '\'
   OR property_city ILIKE $1 ESCAPE '\'
GROUP BY property_city
ORDER BY match_count DESC, property_city
LIMIT %d`, LocationSuggestionLimit)

// SearchLocations returns up to LocationSuggestionLimit cities whose name or
// zip contains keyword, most matching properties first.
func (r *PropertyRepository) SearchLocations(ctx context.Context, keyword string) ([]model.LocationSuggestion, error) {
	rows, err := r.db.Query(ctx, searchLocationsSQL, containsPattern(keyword))
	if err != nil {
		return nil, errors.Wrap(err, "querying location suggestions")
	}

	suggestions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.LocationSuggestion, error) {
		var s model.LocationSuggestion
		err := row.Scan(&s.City, &s.State, &s.Zip, &s.Count)
		return s, err
	})
	if err != nil {
		return nil, errors.Wrap(err, "scanning location suggestions")
	}

	return suggestions, nil
}

// boundingBoxQuery builds the aggregate over the rows matching q. Every
// set field becomes a case-insensitive equality joined by AND.
func boundingBoxQuery(q model.PropertyQuery) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("lower(%s) = lower($%d)", column, len(args)))
	}

	add("property_city", q.City)
	add("property_state", q.State)
	add("property_zip", q.Zip)

	sql := "SELECT MAX(lat), MAX(lng), MIN(lat), MIN(lng) FROM property"
	if len(conditions) > 0 {
		sql += " WHERE " + strings.Join(conditions, " AND ")
	}
	return sql, args
}

// BoundingBox returns the box spanned by the matching properties, or nil
// when nothing matches or the matches carry no coordinates.
func (r *PropertyRepository) BoundingBox(ctx context.Context, q model.PropertyQuery) (*model.BoundingBox, error) {
	if q.IsEmpty() {
		return nil, errors.New("bounding box query needs at least one filter")
	}

	sql, args := boundingBoxQuery(q)

	var maxLat, maxLng, minLat, minLng *float64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&maxLat, &maxLng, &minLat, &minLng); err != nil {
		return nil, errors.Wrap(err, "querying bounding box")
	}

	if maxLat == nil || maxLng == nil || minLat == nil || minLng == nil {
		return nil, nil
	}

	return &model.BoundingBox{
		NELatitude:  *maxLat,
		NELongitude: *maxLng,
		SWLatitude:  *minLat,
		SWLongitude: *minLng,
	}, nil
}
