package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/marketloop/marketloop-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteProductsXLSX(t *testing.T) {
	category := &model.Category{Name: "Electronics", Slug: "electronics"}
	products := []model.Product{
		{
			ID:         1,
			Title:      "Vintage Camera",
			Category:   category,
			PriceCents: 15050,
			Condition:  "good",
			Location:   "Portland, OR",
			Status:     model.ProductStatusActive,
			CreatedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:         2,
			Title:      "Desk Lamp",
			PriceCents: 2000,
			Condition:  "fair",
			Status:     model.ProductStatusSold,
			CreatedAt:  time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteProductsXLSX(&buf, products))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Listings")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Title", rows[0][1])
	assert.Equal(t, "Vintage Camera", rows[1][1])
	assert.Equal(t, "Electronics", rows[1][2])
	assert.Equal(t, "150.50", rows[1][3])
	assert.Equal(t, "sold", rows[2][6])
	// No category resolves to an empty cell value
	assert.Equal(t, "Desk Lamp", rows[2][1])
}

func TestWriteProductsXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProductsXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Listings")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
