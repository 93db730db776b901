package repository

import (
	"context"
	"database/sql"

	"github.com/odelyak/campboard/internal/model"
)

// CatalogRepo reads the scheduling catalogs: divisions with their bunks,
// subdivisions with their division assignments and editor, and resource
// capacity rules.  These tables are administered by the camp office app;
// this service loads them once at startup to build the ownership registry.
type CatalogRepo struct {
	db *sql.DB
}

// NewCatalogRepo constructs a CatalogRepo with the provided DB handle.
func NewCatalogRepo(db *sql.DB) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// ListDivisions returns every division with its bunks in catalog order.
// The LEFT JOIN keeps divisions that have no bunks yet; their Bunks slice
// stays empty.
func (r *CatalogRepo) ListDivisions(ctx context.Context) ([]model.Division, error) {
	const q = `SELECT d.name, d.start_time, d.end_time, b.name
	           FROM divisions d
	           LEFT JOIN bunks b ON b.division_id = d.id
	           ORDER BY d.id, b.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Division
	index := make(map[string]int)
	for rows.Next() {
		var (
			name, start, end string
			bunk             sql.NullString
		)
		if err := rows.Scan(&name, &start, &end, &bunk); err != nil {
			return nil, err
		}
		i, ok := index[name]
		if !ok {
			out = append(out, model.Division{Name: name, StartTime: start, EndTime: end})
			i = len(out) - 1
			index[name] = i
		}
		if bunk.Valid {
			out[i].Bunks = append(out[i].Bunks, bunk.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSubdivisions returns every subdivision with its assigned divisions
// and editor in catalog order.
func (r *CatalogRepo) ListSubdivisions(ctx context.Context) ([]model.Subdivision, error) {
	const q = `SELECT s.id, s.name, s.editor_id, d.name
	           FROM subdivisions s
	           LEFT JOIN subdivision_divisions sd ON sd.subdivision_id = s.id
	           LEFT JOIN divisions d ON d.id = sd.division_id
	           ORDER BY s.id, d.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Subdivision
	index := make(map[string]int)
	for rows.Next() {
		var (
			id, name string
			editorID uint64
			division sql.NullString
		)
		if err := rows.Scan(&id, &name, &editorID, &division); err != nil {
			return nil, err
		}
		i, ok := index[id]
		if !ok {
			out = append(out, model.Subdivision{ID: id, Name: name, EditorID: editorID})
			i = len(out) - 1
			index[id] = i
		}
		if division.Valid {
			out[i].Divisions = append(out[i].Divisions, division.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListResourceRules returns the capacity rules for every shared resource.
// max_capacity is nullable; NULL means "use the shareable/exclusive
// default" and scans to a nil pointer.
func (r *CatalogRepo) ListResourceRules(ctx context.Context) ([]model.ResourceRule, error) {
	const q = `SELECT name, shareable, max_capacity FROM resources ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ResourceRule
	for rows.Next() {
		var (
			rule   model.ResourceRule
			maxCap sql.NullInt64
		)
		if err := rows.Scan(&rule.Name, &rule.Shareable, &maxCap); err != nil {
			return nil, err
		}
		if maxCap.Valid {
			v := int(maxCap.Int64)
			rule.MaxCapacity = &v
		}
		out = append(out, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
