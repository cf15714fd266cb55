package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/almeidarc/affiliate-catalog/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	query := `SELECT * FROM products ORDER BY created_at DESC`
	if err := r.DB.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("find all products: %w", err)
	}
	return products, nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, name, description, price, original_price, discount,
            commission, image_url, affiliate_link, store, created_at, updated_at
        )
        VALUES (
            :id, :name, :description, :price, :original_price, :discount,
            :commission, :image_url, :affiliate_link, :store, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) BulkUpsert(ctx context.Context, ps []model.Product) (out []model.Product, upsertErr error) {
	if len(ps) == 0 {
		return []model.Product{}, nil
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("bulk upsert: begin tx: %w", err)
	}
	defer func() {
		if upsertErr == nil {
			if err := tx.Commit(); err != nil {
				out, upsertErr = nil, fmt.Errorf("bulk upsert: commit: %w", err)
			}
			return
		}
		_ = tx.Rollback()
	}()

	query := `
        INSERT INTO products (
            id, name, description, price, original_price, discount,
            commission, image_url, affiliate_link, store, created_at, updated_at
        )
        VALUES (
            :id, :name, :description, :price, :original_price, :discount,
            :commission, :image_url, :affiliate_link, :store, :created_at, :updated_at
        )
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            description = EXCLUDED.description,
            price = EXCLUDED.price,
            original_price = EXCLUDED.original_price,
            discount = EXCLUDED.discount,
            commission = EXCLUDED.commission,
            image_url = EXCLUDED.image_url,
            affiliate_link = EXCLUDED.affiliate_link,
            store = EXCLUDED.store,
            updated_at = EXCLUDED.updated_at
        RETURNING *
    `
	stmt, err := tx.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("bulk upsert: prepare: %w", err)
	}
	defer stmt.Close()

	out = make([]model.Product, 0, len(ps))
	for _, p := range ps {
		var saved model.Product
		if err := stmt.QueryRowxContext(ctx, p).StructScan(&saved); err != nil {
			return nil, fmt.Errorf("bulk upsert product %s: %w", p.ID, err)
		}
		out = append(out, saved)
	}

	return out, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET name = :name,
            description = :description,
            price = :price,
            original_price = :original_price,
            discount = :discount,
            commission = :commission,
            image_url = :image_url,
            affiliate_link = :affiliate_link,
            store = :store,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}
