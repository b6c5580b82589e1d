package seed

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogdomain "github.com/unitycompany/fidelidade-fast/internal/catalog/domain"
	prizedomain "github.com/unitycompany/fidelidade-fast/internal/prize/domain"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalogdomain.EligibleProduct{}, &prizedomain.Prize{}))
	return db
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

func TestEnsureDefaultProducts(t *testing.T) {
	db := newTestDB(t)
	node := mustNode(t)

	require.NoError(t, EnsureDefaultProducts(db, node))

	var count int64
	require.NoError(t, db.Model(&catalogdomain.EligibleProduct{}).Count(&count).Error)
	assert.EqualValues(t, len(catalogdomain.DefaultProducts()), count)

	var placa catalogdomain.EligibleProduct
	require.NoError(t, db.First(&placa, "codigo = ?", "PLACA_ST").Error)
	assert.Equal(t, 0.5, placa.PointsPerReal)
	assert.True(t, placa.Active)
	assert.NotZero(t, placa.ID)
}

func TestEnsureDefaultProductsIdempotent(t *testing.T) {
	db := newTestDB(t)
	node := mustNode(t)

	require.NoError(t, EnsureDefaultProducts(db, node))
	require.NoError(t, EnsureDefaultProducts(db, node))

	var count int64
	require.NoError(t, db.Model(&catalogdomain.EligibleProduct{}).Count(&count).Error)
	assert.EqualValues(t, len(catalogdomain.DefaultProducts()), count)
}

func TestEnsureDefaultProductsKeepsEdits(t *testing.T) {
	db := newTestDB(t)
	node := mustNode(t)

	require.NoError(t, EnsureDefaultProducts(db, node))
	require.NoError(t, db.Model(&catalogdomain.EligibleProduct{}).
		Where("codigo = ?", "PLACA_ST").
		Update("pontos_por_real", 0.75).Error)

	require.NoError(t, EnsureDefaultProducts(db, node))

	var placa catalogdomain.EligibleProduct
	require.NoError(t, db.First(&placa, "codigo = ?", "PLACA_ST").Error)
	assert.Equal(t, 0.75, placa.PointsPerReal)
}

func TestEnsureDefaultPrizes(t *testing.T) {
	db := newTestDB(t)
	node := mustNode(t)

	require.NoError(t, EnsureDefaultPrizes(db, node))

	var count int64
	require.NoError(t, db.Model(&prizedomain.Prize{}).Count(&count).Error)
	assert.EqualValues(t, 7, count)

	var vale prizedomain.Prize
	require.NoError(t, db.First(&vale, "nome = ?", "Vale-compras em produtos Fast").Error)
	assert.True(t, vale.StockUnlimited)
	assert.True(t, vale.Active)

	require.NoError(t, EnsureDefaultPrizes(db, node))
	require.NoError(t, db.Model(&prizedomain.Prize{}).Count(&count).Error)
	assert.EqualValues(t, 7, count)
}

func TestEnsureDefaultsRequireDB(t *testing.T) {
	node := mustNode(t)
	assert.Error(t, EnsureDefaultProducts(nil, node))
	assert.Error(t, EnsureDefaultPrizes(nil, node))
}
