package shipping

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sellerboard/sellerboard-backend/pkg/db/models"
	"github.com/sellerboard/sellerboard-backend/pkg/enums"
)

func setupShippingTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, gdb.Exec(`DROP TABLE IF EXISTS shipping_rates`).Error)
	require.NoError(t, gdb.Exec(`
		CREATE TABLE shipping_rates (
			id TEXT PRIMARY KEY,
			marketplace TEXT NOT NULL,
			store_id TEXT,
			rate_type TEXT NOT NULL,
			min_value NUMERIC NOT NULL,
			max_value NUMERIC NOT NULL,
			cost NUMERIC NOT NULL,
			vat_included BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME,
			updated_at DATETIME
		)
	`).Error)

	return gdb
}

func seedRate(t *testing.T, gdb *gorm.DB, row models.ShippingRate) models.ShippingRate {
	t.Helper()
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	require.NoError(t, gdb.Create(&row).Error)
	return row
}

func TestRepositoryListDefaultsExcludesOverrides(t *testing.T) {
	gdb := setupShippingTestDB(t)
	repo := NewRepository(gdb)
	storeID := uuid.New()

	seedRate(t, gdb, rateRow(nil, enums.RateTypeDesi, "1", "2", "40"))
	seedRate(t, gdb, rateRow(nil, enums.RateTypeDesi, "0", "1", "30"))
	seedRate(t, gdb, rateRow(&storeID, enums.RateTypeDesi, "0", "1", "22"))

	defaults, err := repo.ListDefaults(context.Background(), enums.MarketplaceTrendyol)
	require.NoError(t, err)
	require.Len(t, defaults, 2)
	require.Nil(t, defaults[0].StoreID)
	require.True(t, defaults[0].MinValue.LessThan(defaults[1].MinValue))
}

func TestRepositoryListOverridesScopedToStore(t *testing.T) {
	gdb := setupShippingTestDB(t)
	repo := NewRepository(gdb)
	storeID := uuid.New()
	otherStore := uuid.New()

	seedRate(t, gdb, rateRow(&storeID, enums.RateTypeDesi, "0", "1", "22"))
	seedRate(t, gdb, rateRow(&otherStore, enums.RateTypeDesi, "0", "1", "28"))

	overrides, err := repo.ListOverrides(context.Background(), enums.MarketplaceTrendyol, storeID)
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	require.Equal(t, storeID, *overrides[0].StoreID)
}

func TestRepositoryCreateFindUpdate(t *testing.T) {
	gdb := setupShippingTestDB(t)
	repo := NewRepository(gdb)
	storeID := uuid.New()

	row := rateRow(&storeID, enums.RateTypePrice, "0", "150", "19.90")
	created, err := repo.CreateOverride(context.Background(), &row)
	require.NoError(t, err)

	found, err := repo.FindOverride(context.Background(), created.ID, storeID)
	require.NoError(t, err)
	require.True(t, found.Cost.Equal(dec("19.90")))

	found.Cost = dec("24.90")
	updated, err := repo.UpdateOverride(context.Background(), found)
	require.NoError(t, err)

	again, err := repo.FindOverride(context.Background(), updated.ID, storeID)
	require.NoError(t, err)
	require.True(t, again.Cost.Equal(dec("24.90")))
}

func TestRepositoryFindOverrideWrongStore(t *testing.T) {
	gdb := setupShippingTestDB(t)
	repo := NewRepository(gdb)
	storeID := uuid.New()

	row := seedRate(t, gdb, rateRow(&storeID, enums.RateTypeDesi, "0", "1", "22"))

	_, err := repo.FindOverride(context.Background(), row.ID, uuid.New())
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepositoryDeleteOverride(t *testing.T) {
	gdb := setupShippingTestDB(t)
	repo := NewRepository(gdb)
	storeID := uuid.New()

	row := seedRate(t, gdb, rateRow(&storeID, enums.RateTypeDesi, "0", "1", "22"))

	require.NoError(t, repo.DeleteOverride(context.Background(), row.ID, storeID))

	err := repo.DeleteOverride(context.Background(), row.ID, storeID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepositoryDeleteOverridesLeavesDefaults(t *testing.T) {
	gdb := setupShippingTestDB(t)
	repo := NewRepository(gdb)
	storeID := uuid.New()

	seedRate(t, gdb, rateRow(nil, enums.RateTypeDesi, "0", "1", "30"))
	seedRate(t, gdb, rateRow(&storeID, enums.RateTypeDesi, "0", "1", "22"))
	seedRate(t, gdb, rateRow(&storeID, enums.RateTypePrice, "0", "100", "15"))

	require.NoError(t, repo.DeleteOverrides(context.Background(), enums.MarketplaceTrendyol, storeID))

	overrides, err := repo.ListOverrides(context.Background(), enums.MarketplaceTrendyol, storeID)
	require.NoError(t, err)
	require.Empty(t, overrides)

	defaults, err := repo.ListDefaults(context.Background(), enums.MarketplaceTrendyol)
	require.NoError(t, err)
	require.Len(t, defaults, 1)
}
