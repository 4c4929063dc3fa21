package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/medirep/sfa-backend-go/internal/domain/master/product"
	"github.com/medirep/sfa-backend-go/internal/pkg/database"
)

type productRepositoryImpl struct {
	db *database.DB
}

func NewProductRepository(db *database.DB) product.ProductRepository {
	return &productRepositoryImpl{db: db}
}

func (r *productRepositoryImpl) CreateCategory(ctx context.Context, c product.Category) (product.Category, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO product_categories (id, name, created_at)
		VALUES (uuidv7(), $1, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, c.Name).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return product.Category{}, product.ErrCategoryExists
		}
		return product.Category{}, err
	}
	return c, nil
}

func (r *productRepositoryImpl) ListCategories(ctx context.Context) ([]product.Category, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, created_at FROM product_categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []product.Category
	for rows.Next() {
		var c product.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *productRepositoryImpl) DeleteCategory(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM product_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return product.ErrCategoryNotFound
	}
	return nil
}

func (r *productRepositoryImpl) CreateProduct(ctx context.Context, p product.Product) (product.Product, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO products (id, category_id, name, created_at)
		VALUES (uuidv7(), $1, $2, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, p.CategoryID, p.Name).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return product.Product{}, product.ErrCategoryNotFound
		}
		return product.Product{}, err
	}
	return p, nil
}

func (r *productRepositoryImpl) ListProducts(ctx context.Context) ([]product.Product, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.category_id, p.name, p.created_at, c.name
		FROM products p
		JOIN product_categories c ON c.id = p.category_id
		ORDER BY c.name, p.name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.CreatedAt, &p.CategoryName); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepositoryImpl) DeleteProduct(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}
	return nil
}
