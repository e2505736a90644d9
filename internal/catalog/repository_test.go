package catalog

import (
	"context"
	"errors"
	"greenplace-be/internal/product"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseColumns = []string{"id", "categoria_id", "name", "modelo", "color", "precio_usd", "precio_ars"}

func columns(extra ...string) []string {
	return append(append([]string{}, baseColumns...), extra...)
}

func TestBuildQuery(t *testing.T) {
	t.Run("All", func(t *testing.T) {
		query, args, err := buildQuery(product.TypeNew, Query{})
		require.NoError(t, err)
		assert.Equal(t,
			"SELECT p.id, p.categoria_id, c.name, p.modelo, p.color, p.precio_usd, p.precio_ars, p.capacidad"+
				" FROM iphones_nuevos p LEFT JOIN categorias c ON c.id = p.categoria_id ORDER BY p.precio_usd ASC",
			query)
		assert.Empty(t, args)
	})

	t.Run("Search", func(t *testing.T) {
		query, args, err := buildQuery(product.TypeUsed, Query{Search: "13 pro"})
		require.NoError(t, err)
		assert.Contains(t, query, "FROM iphones_usados p")
		assert.Contains(t, query, "WHERE (p.modelo ILIKE $1 OR p.capacidad ILIKE $1 OR p.codigo ILIKE $1)")
		assert.Equal(t, []interface{}{"%13 pro%"}, args)
	})

	t.Run("Search escapes wildcards", func(t *testing.T) {
		_, args, err := buildQuery(product.TypeOther, Query{Search: "100%_"})
		require.NoError(t, err)
		assert.Equal(t, []interface{}{`%100\%\_%`}, args)
	})

	t.Run("SourceID and search", func(t *testing.T) {
		query, args, err := buildQuery(product.TypeOther, Query{SourceID: "7", Search: "funda"})
		require.NoError(t, err)
		assert.Contains(t, query, "WHERE p.id::text = $1 AND (p.modelo ILIKE $2 OR p.info ILIKE $2)")
		assert.Equal(t, []interface{}{"7", "%funda%"}, args)
	})

	t.Run("Unknown type", func(t *testing.T) {
		_, _, err := buildQuery(product.Type("refurbished"), Query{})
		assert.ErrorIs(t, err, product.ErrUnknownType)
	})
}

func TestRepository_Fetch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("New", func(t *testing.T) {
		rows := sqlmock.NewRows(columns("capacidad")).
			AddRow(1, 1, "iPhone", "iPhone 15", "Negro", "999.00", "1198800", "128GB").
			AddRow(2, 1, nil, "iPhone 15 Pro", nil, "1299.00", nil, nil)

		mock.ExpectQuery(regexp.QuoteMeta("FROM iphones_nuevos p LEFT JOIN categorias c")).
			WillReturnRows(rows)

		res, err := repo.Fetch(ctx, product.TypeNew, Query{})
		require.NoError(t, err)
		require.Len(t, res, 2)

		assert.Equal(t, "1", res[0].ID)
		assert.Equal(t, "iPhone", *res[0].CategoryName)
		assert.Equal(t, "128GB", *res[0].Capacity)
		assert.True(t, decimal.NewFromInt(999).Equal(res[0].PriceUSD))
		assert.True(t, res[0].PriceARS.Valid)

		assert.Nil(t, res[1].CategoryName)
		assert.Nil(t, res[1].Color)
		assert.False(t, res[1].PriceARS.Valid)
	})

	t.Run("Used", func(t *testing.T) {
		rows := sqlmock.NewRows(columns("capacidad", "bateria", "codigo", "cuotas_3", "cuotas_6", "cuotas_9", "cuotas_12")).
			AddRow(12, 1, "iPhone", "iPhone 13", "Azul", "500", nil, "256GB", 87, "U-12", "200000", nil, "70000", "55000")

		mock.ExpectQuery(regexp.QuoteMeta("FROM iphones_usados p")).
			WithArgs("%13%").
			WillReturnRows(rows)

		res, err := repo.Fetch(ctx, product.TypeUsed, Query{Search: "13"})
		require.NoError(t, err)
		require.Len(t, res, 1)

		row := res[0]
		assert.Equal(t, 87, *row.Battery)
		assert.Equal(t, "U-12", *row.Code)
		assert.True(t, row.Cuotas3.Valid)
		assert.False(t, row.Cuotas6.Valid)
		assert.True(t, decimal.NewFromInt(55000).Equal(row.Cuotas12.Decimal))
	})

	t.Run("Other by id", func(t *testing.T) {
		rows := sqlmock.NewRows(columns("info")).
			AddRow(3, 6, "Otros", "Cargador 20W", "Blanco", "25", nil, "USB-C")

		mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id::text = $1")).
			WithArgs("3").
			WillReturnRows(rows)

		res, err := repo.Fetch(ctx, product.TypeOther, Query{SourceID: "3"})
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "USB-C", *res[0].Info)
	})

	t.Run("Empty", func(t *testing.T) {
		mock.ExpectQuery("FROM productos_varios").
			WillReturnRows(sqlmock.NewRows(columns("info")))

		res, err := repo.Fetch(ctx, product.TypeOther, Query{})
		require.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("FROM iphones_nuevos").
			WillReturnError(errors.New("connection refused"))

		_, err := repo.Fetch(ctx, product.TypeNew, Query{})
		assert.Error(t, err)
	})

	t.Run("Scan error", func(t *testing.T) {
		mock.ExpectQuery("FROM iphones_nuevos").
			WillReturnRows(sqlmock.NewRows(columns("capacidad")).
				AddRow(1, "not-a-number", "iPhone", "iPhone 15", nil, "1", nil, nil))

		_, err := repo.Fetch(ctx, product.TypeNew, Query{})
		assert.Error(t, err)
	})

	t.Run("Unknown type", func(t *testing.T) {
		_, err := repo.Fetch(ctx, product.Type("refurbished"), Query{})
		assert.ErrorIs(t, err, product.ErrUnknownType)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
