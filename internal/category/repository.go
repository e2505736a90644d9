package category

import (
	"context"
	"database/sql"
	"greenplace-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetCategories(ctx context.Context) ([]Category, error)
	GetConditions(ctx context.Context) ([]Condition, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCategories(ctx context.Context) ([]Category, error) {
	log := logger.FromCtx(ctx).With(zap.String("table", "categorias"))

	query := `SELECT id, name FROM categorias ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("DB query failed GetCategories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}

func (r *repository) GetConditions(ctx context.Context) ([]Condition, error) {
	log := logger.FromCtx(ctx).With(zap.String("table", "condicion"))

	query := `SELECT id, name FROM condicion ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("DB query failed GetConditions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	conditions := []Condition{}
	for rows.Next() {
		var c Condition
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		conditions = append(conditions, c)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return conditions, nil
}
