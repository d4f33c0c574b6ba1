package service

import (
	"context"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/ecommerce_backend/internal/hash"
	"github.com/Skotchmaster/ecommerce_backend/internal/models"
	"github.com/Skotchmaster/ecommerce_backend/internal/store/gormstore"
)

func init() {
	hash.Cost = bcrypt.MinCost
}

func newTestRepo(t *testing.T) *gormstore.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	r := gormstore.New(db)
	require.NoError(t, r.Migrate(context.Background()))
	return r
}

type event struct {
	Topic string
	Key   string
	Body  map[string]any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, e any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	body, _ := e.(map[string]any)
	p.events = append(p.events, event{Topic: topic, Key: key, Body: body})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Body["type"].(string))
	}
	return out
}

type fakeIndex struct {
	indexed []int
	deleted []int
	query   string
	from    int
	size    int
}

func (f *fakeIndex) IndexProduct(_ context.Context, p models.Product) error {
	f.indexed = append(f.indexed, p.ProductID)
	return nil
}

func (f *fakeIndex) DeleteProduct(_ context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, q string, from, size int) (int64, []models.Product, error) {
	f.query, f.from, f.size = q, from, size
	return 1, []models.Product{{ProductID: 1, Name: q}}, nil
}
