package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/artisan-market/internal/domain/catalog"
	"go.uber.org/zap"
)

// PostgresProductStore implements catalog.Store on PostgreSQL.
type PostgresProductStore struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresProductStore(db *sql.DB, logger *zap.Logger) *PostgresProductStore {
	return &PostgresProductStore{
		db:     db,
		logger: logger.With(zap.String("component", "product_store")),
	}
}

const productColumns = `id, artisan_id, title, description, category, price, currency,
	stock, sold, status, images, materials, tags, created_at, updated_at`

func (s *PostgresProductStore) Insert(ctx context.Context, p *catalog.Product) error {
	images, materials, tags := marshalLists(p)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, p.ID, p.ArtisanID, p.Title, p.Description, p.Category, p.Price, p.Currency,
		p.Stock, p.Sold, p.Status, images, materials, tags, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *PostgresProductStore) Get(ctx context.Context, id string) (*catalog.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+productColumns+` FROM products WHERE id = $1
	`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, catalog.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (s *PostgresProductStore) Update(ctx context.Context, p *catalog.Product) error {
	images, materials, tags := marshalLists(p)
	res, err := s.db.ExecContext(ctx, `
		UPDATE products SET
			title = $2, description = $3, category = $4, price = $5,
			stock = $6, sold = $7, status = $8,
			images = $9, materials = $10, tags = $11, updated_at = $12
		WHERE id = $1
	`, p.ID, p.Title, p.Description, p.Category, p.Price,
		p.Stock, p.Sold, p.Status, images, materials, tags, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

func (s *PostgresProductStore) List(ctx context.Context, f catalog.Filter) ([]*catalog.Product, int, error) {
	var (
		conditions []string
		args       []any
	)
	add := func(cond string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	add("status = $%d", f.Status)
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.ArtisanID != "" {
		add("artisan_id = $%d", f.ArtisanID)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conditions = append(conditions,
			fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d OR tags::text ILIKE $%d)", n, n, n))
	}
	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM products "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	query := fmt.Sprintf(`
		SELECT %s FROM products %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, productColumns, where, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			s.logger.Error("failed to scan product row", zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*catalog.Product, error) {
	var (
		p                       catalog.Product
		images, materials, tags []byte
	)
	err := row.Scan(&p.ID, &p.ArtisanID, &p.Title, &p.Description, &p.Category,
		&p.Price, &p.Currency, &p.Stock, &p.Sold, &p.Status,
		&images, &materials, &tags, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	json.Unmarshal(images, &p.Images)
	json.Unmarshal(materials, &p.Materials)
	json.Unmarshal(tags, &p.Tags)
	return &p, nil
}

func marshalLists(p *catalog.Product) ([]byte, []byte, []byte) {
	images, _ := json.Marshal(emptyIfNil(p.Images))
	materials, _ := json.Marshal(emptyIfNil(p.Materials))
	tags, _ := json.Marshal(emptyIfNil(p.Tags))
	return images, materials, tags
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
