package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"greenplace-be/internal/logger"
	"greenplace-be/internal/product"
	"strings"

	"go.uber.org/zap"
)

// Query narrows a read against one source collection. Zero value reads everything.
type Query struct {
	// Search is matched as a case-insensitive substring over the source's text columns.
	Search string
	// SourceID selects a single row by its store id.
	SourceID string
}

type Repository interface {
	Fetch(ctx context.Context, kind product.Type, q Query) ([]product.RawRow, error)
}

type source struct {
	table         string
	extraColumns  []string
	searchColumns []string
}

var sources = map[product.Type]source{
	product.TypeNew: {
		table:         "iphones_nuevos",
		extraColumns:  []string{"p.capacidad"},
		searchColumns: []string{"p.modelo", "p.capacidad"},
	},
	product.TypeUsed: {
		table: "iphones_usados",
		extraColumns: []string{
			"p.capacidad", "p.bateria", "p.codigo",
			"p.cuotas_3", "p.cuotas_6", "p.cuotas_9", "p.cuotas_12",
		},
		searchColumns: []string{"p.modelo", "p.capacidad", "p.codigo"},
	},
	product.TypeOther: {
		table:         "productos_varios",
		extraColumns:  []string{"p.info"},
		searchColumns: []string{"p.modelo", "p.info"},
	},
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func buildQuery(kind product.Type, q Query) (string, []interface{}, error) {
	src, ok := sources[kind]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", product.ErrUnknownType, kind)
	}

	columns := append([]string{
		"p.id", "p.categoria_id", "c.name", "p.modelo", "p.color", "p.precio_usd", "p.precio_ars",
	}, src.extraColumns...)

	query := "SELECT " + strings.Join(columns, ", ") +
		" FROM " + src.table + " p" +
		" LEFT JOIN categorias c ON c.id = p.categoria_id"

	where := []string{}
	args := []interface{}{}

	if q.SourceID != "" {
		args = append(args, q.SourceID)
		where = append(where, fmt.Sprintf("p.id::text = $%d", len(args)))
	}

	if q.Search != "" {
		args = append(args, "%"+likeEscaper.Replace(q.Search)+"%")
		ors := make([]string, 0, len(src.searchColumns))
		for _, col := range src.searchColumns {
			ors = append(ors, fmt.Sprintf("%s ILIKE $%d", col, len(args)))
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	query += " ORDER BY p.precio_usd ASC"

	return query, args, nil
}

func scanTargets(kind product.Type, row *product.RawRow) []interface{} {
	targets := []interface{}{
		&row.ID, &row.CategoryID, &row.CategoryName, &row.Model, &row.Color, &row.PriceUSD, &row.PriceARS,
	}

	switch kind {
	case product.TypeNew:
		targets = append(targets, &row.Capacity)
	case product.TypeUsed:
		targets = append(targets,
			&row.Capacity, &row.Battery, &row.Code,
			&row.Cuotas3, &row.Cuotas6, &row.Cuotas9, &row.Cuotas12,
		)
	case product.TypeOther:
		targets = append(targets, &row.Info)
	}

	return targets
}

func (r *repository) Fetch(ctx context.Context, kind product.Type, q Query) ([]product.RawRow, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("source", string(kind)),
	)

	query, args, err := buildQuery(kind, q)
	if err != nil {
		return nil, err
	}

	log.Debug("Executing catalog query",
		zap.String("query", query),
		zap.Any("args", args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed Fetch", zap.Error(err))
		return nil, fmt.Errorf("query %s: %w", sources[kind].table, err)
	}
	defer rows.Close()

	result := []product.RawRow{}
	for rows.Next() {
		var row product.RawRow
		if err := rows.Scan(scanTargets(kind, &row)...); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, fmt.Errorf("scan %s: %w", sources[kind].table, err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, fmt.Errorf("iterate %s: %w", sources[kind].table, err)
	}

	return result, nil
}
