package repository

import (
	"testing"
	"time"

	"github.com/marketloop/marketloop-backend/internal/app/model"
	"github.com/marketloop/marketloop-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartRepositoryTest(t *testing.T) (CartRepository, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	repo := NewCartRepository(testDB)

	user := &model.User{
		Email:        "buyer@example.com",
		Username:     "buyer",
		PasswordHash: "hash",
	}
	testDB.Create(user)

	product := &model.Product{
		OwnerID:    user.ID,
		Title:      "Test Listing",
		PriceCents: 1000,
		Condition:  "good",
		Status:     model.ProductStatusActive,
	}
	testDB.Create(product)

	return repo, user, product, testDB
}

func TestCartRepository_GetOrCreate(t *testing.T) {
	repo, user, _, _ := setupCartRepositoryTest(t)

	cart, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)
	assert.NotZero(t, cart.ID)

	// Second call returns the same cart
	again, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}

func TestCartRepository_FindByUserID_NotFound(t *testing.T) {
	repo, user, _, _ := setupCartRepositoryTest(t)

	_, err := repo.FindByUserID(user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartRepository_AddItem_InsertThenIncrement(t *testing.T) {
	repo, user, product, _ := setupCartRepositoryTest(t)

	cart, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)

	require.NoError(t, repo.AddItem(cart.ID, product.ID, 2))
	require.NoError(t, repo.AddItem(cart.ID, product.ID, 3))

	item, err := repo.FindItem(cart.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	// Still a single line for the product
	items, err := repo.FindItems(cart.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCartRepository_FindItems_PreloadsProduct(t *testing.T) {
	repo, user, product, _ := setupCartRepositoryTest(t)

	cart, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)
	require.NoError(t, repo.AddItem(cart.ID, product.ID, 1))

	items, err := repo.FindItems(cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, product.Title, items[0].Product.Title)
	assert.Equal(t, int64(1000), items[0].Product.PriceCents)
}

func TestCartRepository_UpdateItemQuantity(t *testing.T) {
	repo, user, product, _ := setupCartRepositoryTest(t)

	cart, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)
	require.NoError(t, repo.AddItem(cart.ID, product.ID, 1))

	require.NoError(t, repo.UpdateItemQuantity(cart.ID, product.ID, 7))

	item, err := repo.FindItem(cart.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, item.Quantity)
}

func TestCartRepository_UpdateItemQuantity_MissingRow(t *testing.T) {
	repo, user, _, _ := setupCartRepositoryTest(t)

	cart, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)

	err = repo.UpdateItemQuantity(cart.ID, 9999, 3)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartRepository_DeleteItem(t *testing.T) {
	repo, user, product, _ := setupCartRepositoryTest(t)

	cart, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)
	require.NoError(t, repo.AddItem(cart.ID, product.ID, 1))

	require.NoError(t, repo.DeleteItem(cart.ID, product.ID))

	_, err = repo.FindItem(cart.ID, product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Deleting again reports the missing row
	err = repo.DeleteItem(cart.ID, product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartRepository_DeleteItemsByProductID(t *testing.T) {
	repo, user, product, testDB := setupCartRepositoryTest(t)

	other := &model.User{
		Email:        "other@example.com",
		Username:     "other",
		PasswordHash: "hash",
	}
	testDB.Create(other)

	cart1, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)
	cart2, err := repo.GetOrCreate(other.ID)
	require.NoError(t, err)

	require.NoError(t, repo.AddItem(cart1.ID, product.ID, 1))
	require.NoError(t, repo.AddItem(cart2.ID, product.ID, 2))

	require.NoError(t, repo.DeleteItemsByProductID(product.ID))

	items1, _ := repo.FindItems(cart1.ID)
	items2, _ := repo.FindItems(cart2.ID)
	assert.Len(t, items1, 0)
	assert.Len(t, items2, 0)
}

func TestCartRepository_DeleteStaleItems(t *testing.T) {
	repo, user, product, testDB := setupCartRepositoryTest(t)

	cart, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)
	require.NoError(t, repo.AddItem(cart.ID, product.ID, 1))

	fresh := &model.Product{
		OwnerID:    user.ID,
		Title:      "Fresh Listing",
		PriceCents: 500,
		Condition:  "good",
		Status:     model.ProductStatusActive,
	}
	testDB.Create(fresh)
	require.NoError(t, repo.AddItem(cart.ID, fresh.ID, 1))

	// Age the first line past the cutoff
	old := time.Now().Add(-48 * time.Hour)
	testDB.Model(&model.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).
		Update("updated_at", old)

	deleted, err := repo.DeleteStaleItems(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	items, err := repo.FindItems(cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, fresh.ID, items[0].ProductID)
}
