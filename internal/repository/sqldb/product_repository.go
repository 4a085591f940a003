package sqldb

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"
)

const productColumns = `id, name, type, sku, image_url, description, quantity, price, created_at`

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) repository.ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (int64, error) {
	p.CreatedAt = time.Now().UTC()

	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`
INSERT INTO products (name, type, sku, image_url, description, quantity, price, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id`),
		p.Name,
		p.Type,
		p.SKU,
		p.ImageURL,
		p.Description,
		p.Quantity,
		p.Price,
		p.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "repo: insert product")
	}

	p.ID = id
	return id, nil
}

// List orders by creation time; id breaks ties between rows created in
// the same instant so pages never overlap.
func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	products := make([]domain.Product, 0, limit)
	err := r.db.SelectContext(ctx, &products, r.db.Rebind(`
SELECT `+productColumns+`
FROM products
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?`),
		limit,
		offset,
	)
	if err != nil {
		return nil, errors.Wrap(err, "repo: list products")
	}
	return products, nil
}

// UpdateQuantity changes the stock count and reads the row back in the
// same transaction.
func (r *ProductRepository) UpdateQuantity(ctx context.Context, id, quantity int64) (*domain.Product, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "repo: begin update quantity")
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE products SET quantity = ? WHERE id = ?`), quantity, id)
	if err != nil {
		return nil, errors.Wrap(err, "repo: update quantity")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "repo: update quantity rows affected")
	}
	if affected == 0 {
		return nil, domain.NotFound("Product not found")
	}

	var p domain.Product
	if err := tx.GetContext(ctx, &p, tx.Rebind(`SELECT `+productColumns+` FROM products WHERE id = ?`), id); err != nil {
		return nil, errors.Wrap(err, "repo: reload product")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "repo: commit update quantity")
	}
	return &p, nil
}
