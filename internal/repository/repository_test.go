package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_shop.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func insertProduct(t *testing.T, pool *pgxpool.Pool, price decimal.Decimal, quantity int32) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(t.Context(),
		`INSERT INTO products (name, price, quantity) VALUES ($1, $2, $3) RETURNING product_id`,
		gofakeit.ProductName(), price, quantity,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func insertSpell(t *testing.T, pool *pgxpool.Pool, name string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(t.Context(),
		`INSERT INTO spells (name) VALUES ($1) RETURNING spell_id`, name,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func productQuantity(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) int32 {
	t.Helper()

	var quantity int32
	err := pool.QueryRow(t.Context(),
		`SELECT quantity FROM products WHERE product_id = $1`, id,
	).Scan(&quantity)
	require.NoError(t, err)

	return quantity
}

func productName(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) string {
	t.Helper()

	var name string
	err := pool.QueryRow(t.Context(),
		`SELECT name FROM products WHERE product_id = $1`, id,
	).Scan(&name)
	require.NoError(t, err)

	return name
}

func randomPrice() decimal.Decimal {
	return decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2)
}

var decimalComparer = cmp.Comparer(func(x, y decimal.Decimal) bool {
	return x.Equal(y)
})
