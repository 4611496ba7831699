package repository

import (
	"testing"

	"github.com/marketloop/marketloop-backend/internal/app/model"
	"github.com/marketloop/marketloop-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) (OrderRepository, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	repo := NewOrderRepository(testDB)

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

func TestOrderRepository_CreateAndFindByID(t *testing.T) {
	repo, user, product, testDB := setupOrderRepositoryTest(t)

	order := &model.Order{
		UserID:     user.ID,
		TotalCents: 2000,
		Status:     model.OrderStatusCompleted,
		OrderItems: []model.OrderItem{
			{ProductID: product.ID, Quantity: 2, PriceCents: 1000},
		},
	}
	require.NoError(t, repo.Create(testDB, order))
	assert.NotZero(t, order.ID)

	found, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), found.TotalCents)
	require.Len(t, found.OrderItems, 1)
	assert.Equal(t, int64(1000), found.OrderItems[0].PriceCents)
	assert.Equal(t, product.Title, found.OrderItems[0].Product.Title)
}

func TestOrderRepository_FindByID_NotFound(t *testing.T) {
	repo, _, _, _ := setupOrderRepositoryTest(t)

	_, err := repo.FindByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOrderRepository_FindByUserID_NewestFirst(t *testing.T) {
	repo, user, product, testDB := setupOrderRepositoryTest(t)

	first := &model.Order{
		UserID:     user.ID,
		TotalCents: 1000,
		Status:     model.OrderStatusCompleted,
		OrderItems: []model.OrderItem{{ProductID: product.ID, Quantity: 1, PriceCents: 1000}},
	}
	require.NoError(t, repo.Create(testDB, first))

	second := &model.Order{
		UserID:     user.ID,
		TotalCents: 3000,
		Status:     model.OrderStatusCompleted,
		OrderItems: []model.OrderItem{{ProductID: product.ID, Quantity: 3, PriceCents: 1000}},
	}
	require.NoError(t, repo.Create(testDB, second))

	orders, err := repo.FindByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
}

func TestOrderRepository_FindByUserID_OnlyOwnOrders(t *testing.T) {
	repo, user, product, testDB := setupOrderRepositoryTest(t)

	other := &model.User{
		Email:        "other@example.com",
		Username:     "other",
		PasswordHash: "hash",
	}
	testDB.Create(other)

	mine := &model.Order{
		UserID:     user.ID,
		TotalCents: 1000,
		Status:     model.OrderStatusCompleted,
		OrderItems: []model.OrderItem{{ProductID: product.ID, Quantity: 1, PriceCents: 1000}},
	}
	require.NoError(t, repo.Create(testDB, mine))

	theirs := &model.Order{
		UserID:     other.ID,
		TotalCents: 2000,
		Status:     model.OrderStatusCompleted,
		OrderItems: []model.OrderItem{{ProductID: product.ID, Quantity: 2, PriceCents: 1000}},
	}
	require.NoError(t, repo.Create(testDB, theirs))

	orders, err := repo.FindByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, mine.ID, orders[0].ID)
}
