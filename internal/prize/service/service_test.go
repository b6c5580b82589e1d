package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unitycompany/fidelidade-fast/internal/clock"
	"github.com/unitycompany/fidelidade-fast/internal/prize/domain"
	"github.com/unitycompany/fidelidade-fast/internal/prize/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Prize{}))
	return db
}

func newPrizeService(t *testing.T, db *gorm.DB) domain.Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)),
		Repo:  repository.Provide(),
	})
}

func createPrize(t *testing.T, svc domain.Service, req domain.CreateRequest) *domain.Response {
	t.Helper()
	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	return resp
}

func bonePrize() domain.CreateRequest {
	return domain.CreateRequest{
		Name:           "Boné Fast",
		Description:    "Boné com logo Fast Sistemas",
		Category:       domain.CategoryGiveaway,
		PointsRequired: 800,
		EstimatedValue: 40,
		StockAvailable: 60,
	}
}

func TestCreateAndGetPrize(t *testing.T) {
	svc := newPrizeService(t, newTestDB(t))

	created := createPrize(t, svc, bonePrize())
	assert.True(t, created.Active)
	assert.Equal(t, 800, created.PointsRequired)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Boné Fast", got.Name)
	assert.Equal(t, 60, got.StockAvailable)
}

func TestCreatePrizeValidation(t *testing.T) {
	svc := newPrizeService(t, newTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{Name: " ", PointsRequired: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "X", PointsRequired: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidPoints)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "X", PointsRequired: 100, StockAvailable: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidStock)
}

func TestCreatePrizeDuplicateName(t *testing.T) {
	svc := newPrizeService(t, newTestDB(t))
	createPrize(t, svc, bonePrize())

	_, err := svc.Create(context.Background(), bonePrize())
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestUpdatePrize(t *testing.T) {
	svc := newPrizeService(t, newTestDB(t))
	ctx := context.Background()
	created := createPrize(t, svc, bonePrize())

	points := 900
	featured := true
	updated, err := svc.Update(ctx, domain.UpdateRequest{
		ID:             created.ID,
		PointsRequired: &points,
		Featured:       &featured,
	})
	require.NoError(t, err)
	assert.Equal(t, 900, updated.PointsRequired)
	assert.True(t, updated.Featured)

	badPoints := 0
	_, err = svc.Update(ctx, domain.UpdateRequest{ID: created.ID, PointsRequired: &badPoints})
	assert.ErrorIs(t, err, domain.ErrInvalidPoints)
}

func TestUpdatePrizeRenameToExistingName(t *testing.T) {
	svc := newPrizeService(t, newTestDB(t))
	ctx := context.Background()
	createPrize(t, svc, bonePrize())

	other := createPrize(t, svc, domain.CreateRequest{
		Name:           "Camiseta personalizada Fast",
		Category:       domain.CategoryGiveaway,
		PointsRequired: 1000,
		StockAvailable: 50,
	})

	taken := "Boné Fast"
	_, err := svc.Update(ctx, domain.UpdateRequest{ID: other.ID, Name: &taken})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestAdjustStock(t *testing.T) {
	svc := newPrizeService(t, newTestDB(t))
	ctx := context.Background()
	created := createPrize(t, svc, bonePrize())

	resp, err := svc.AdjustStock(ctx, created.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, 50, resp.StockAvailable)

	resp, err = svc.AdjustStock(ctx, created.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 55, resp.StockAvailable)

	_, err = svc.AdjustStock(ctx, created.ID, -56)
	assert.ErrorIs(t, err, domain.ErrInvalidStock)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 55, got.StockAvailable)
}

func TestListPrizeFilters(t *testing.T) {
	svc := newPrizeService(t, newTestDB(t))
	ctx := context.Background()

	bone := createPrize(t, svc, bonePrize())
	createPrize(t, svc, domain.CreateRequest{
		Name:           "Nível Laser",
		Category:       domain.CategoryTools,
		PointsRequired: 10000,
		StockAvailable: 5,
		Featured:       true,
	})
	_, err := svc.Deactivate(ctx, bone.ID)
	require.NoError(t, err)

	all, err := svc.List(ctx, domain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active := true
	onlyActive, err := svc.List(ctx, domain.ListRequest{Active: &active})
	require.NoError(t, err)
	require.Len(t, onlyActive, 1)
	assert.Equal(t, "Nível Laser", onlyActive[0].Name)

	featured := true
	onlyFeatured, err := svc.List(ctx, domain.ListRequest{Featured: &featured})
	require.NoError(t, err)
	require.Len(t, onlyFeatured, 1)
	assert.Equal(t, "Nível Laser", onlyFeatured[0].Name)

	brindes, err := svc.List(ctx, domain.ListRequest{Category: domain.CategoryGiveaway})
	require.NoError(t, err)
	require.Len(t, brindes, 1)
	assert.Equal(t, "Boné Fast", brindes[0].Name)
}

func TestListPrizeOrdering(t *testing.T) {
	svc := newPrizeService(t, newTestDB(t))
	ctx := context.Background()

	createPrize(t, svc, domain.CreateRequest{Name: "Segundo", PointsRequired: 500, DisplayOrder: 2})
	createPrize(t, svc, domain.CreateRequest{Name: "Primeiro", PointsRequired: 900, DisplayOrder: 1})

	all, err := svc.List(ctx, domain.ListRequest{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Primeiro", all[0].Name)
	assert.Equal(t, "Segundo", all[1].Name)
}

func TestDeletePrize(t *testing.T) {
	svc := newPrizeService(t, newTestDB(t))
	ctx := context.Background()
	created := createPrize(t, svc, bonePrize())

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err := svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDefaultPrizesCatalog(t *testing.T) {
	prizes := domain.DefaultPrizes()
	require.Len(t, prizes, 7)

	byName := map[string]domain.Prize{}
	featured := 0
	for _, p := range prizes {
		byName[p.Name] = p
		if p.Featured {
			featured++
		}
	}

	assert.Equal(t, 10000, byName["Nível Laser"].PointsRequired)
	assert.Equal(t, 800, byName["Boné Fast"].PointsRequired)
	assert.True(t, byName["Vale-compras em produtos Fast"].StockUnlimited)
	assert.Equal(t, 4, featured)
}
