package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/ecommerce_backend/internal/config"
	"github.com/Skotchmaster/ecommerce_backend/internal/store/gormstore"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{StoreDriver: config.DriverSQLite, DatabaseURL: ":memory:"}

	st, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	_, ok := st.(*gormstore.GormRepo)
	assert.True(t, ok)
	require.NoError(t, st.Ping(context.Background()))

	items, err := st.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StoreDriver: "redis"})
	require.Error(t, err)

	_, err = OpenGorm(context.Background(), config.DriverSQLite, "")
	require.Error(t, err)

	_, err = OpenGorm(context.Background(), "mysql", "dsn")
	require.Error(t, err)
}
