package postgres

import (
	"context"
	"database/sql"

	"dietlog/internal/domain"

	sq "github.com/Masterminds/squirrel"
)

var productColumns = []string{"id", "name", "brand", "calories", "protein", "fat", "carbs", "created_by", "created_at", "updated_at"}

type productRow struct {
	p         domain.Product
	createdBy sql.NullInt64
}

func (r *productRow) dest() []any {
	return []any{&r.p.ID, &r.p.Name, &r.p.Brand,
		&r.p.Per100.Calories, &r.p.Per100.Protein, &r.p.Per100.Fat, &r.p.Per100.Carbs,
		&r.createdBy, &r.p.CreatedAt, &r.p.UpdatedAt}
}

func (r *productRow) product() domain.Product {
	r.p.CreatedBy = r.createdBy.Int64
	return r.p
}

// CreateProduct adds a product to the catalog.
func (d *DB) CreateProduct(ctx context.Context, p domain.Product) (int64, error) {
	var createdBy *int64
	if p.CreatedBy != 0 {
		createdBy = &p.CreatedBy
	}
	var id int64
	_, err := d.scanOne(ctx, d.sb.Insert("products").
		Columns("name", "brand", "calories", "protein", "fat", "carbs", "created_by", "created_at", "updated_at").
		Values(p.Name, p.Brand, p.Per100.Calories, p.Per100.Protein, p.Per100.Fat, p.Per100.Carbs,
			createdBy, p.CreatedAt.UTC(), p.UpdatedAt.UTC()).
		Suffix("RETURNING id"), &id)
	return id, err
}

// UpdateProduct replaces the editable fields of a product.
func (d *DB) UpdateProduct(ctx context.Context, p domain.Product) (bool, error) {
	n, err := d.exec(ctx, d.sb.Update("products").
		Set("name", p.Name).
		Set("brand", p.Brand).
		Set("calories", p.Per100.Calories).
		Set("protein", p.Per100.Protein).
		Set("fat", p.Per100.Fat).
		Set("carbs", p.Per100.Carbs).
		Set("updated_at", p.UpdatedAt.UTC()).
		Where(sq.Eq{"id": p.ID}))
	return n > 0, err
}

// DeleteProduct removes a product; references are set to NULL.
func (d *DB) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	n, err := d.exec(ctx, d.sb.Delete("products").Where(sq.Eq{"id": id}))
	return n > 0, err
}

// GetProduct returns a product by ID.
func (d *DB) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var r productRow
	ok, err := d.scanOne(ctx, d.sb.Select(productColumns...).From("products").Where(sq.Eq{"id": id}), r.dest()...)
	if err != nil || !ok {
		return nil, err
	}
	p := r.product()
	return &p, nil
}

// SearchProducts returns up to limit products whose name or brand contains
// query, case-insensitively, ordered by name.
func (d *DB) SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	q := d.sb.Select(productColumns...).From("products").OrderBy("name", "id").Limit(uint64(limit))
	if query != "" {
		pattern := "%" + escapeLike(query) + "%"
		q = q.Where(sq.Or{sq.ILike{"name": pattern}, sq.ILike{"brand": pattern}})
	}

	rows, err := d.query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Product, 0)
	for rows.Next() {
		var r productRow
		if err := rows.Scan(r.dest()...); err != nil {
			return nil, err
		}
		out = append(out, r.product())
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, c := range s {
		if c == '%' || c == '_' || c == '\\' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	return string(out)
}
