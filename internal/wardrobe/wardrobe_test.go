package wardrobe_test

import (
	"testing"

	"github.com/serroba/wardrobe-go/internal/wardrobe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostPerWear(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(2500), wardrobe.CostPerWear(10000, 4))
	assert.Equal(t, int64(10000), wardrobe.CostPerWear(10000, 0), "unworn items cost their full price")
	assert.Equal(t, int64(3333), wardrobe.CostPerWear(10000, 3))
}

func TestComputeAnalytics(t *testing.T) {
	t.Run("empty wardrobe", func(t *testing.T) {
		a := wardrobe.ComputeAnalytics(nil, 5)

		assert.Equal(t, 0, a.TotalItems)
		assert.Empty(t, a.MostWorn)
		assert.NotNil(t, a.MostWorn)
		assert.Empty(t, a.ColorDistribution)
	})

	t.Run("aggregates totals and rankings", func(t *testing.T) {
		items := []wardrobe.Item{
			{ID: "1", Name: "Jeans", Color: "Blue", Price: 8000, WearCount: 40},
			{ID: "2", Name: "Blazer", Color: "black", Price: 20000, WearCount: 2},
			{ID: "3", Name: "Tee", Color: "blue ", Price: 1500, WearCount: 30},
			{ID: "4", Name: "Gown", Color: "red", Price: 50000, WearCount: 0},
		}

		a := wardrobe.ComputeAnalytics(items, 2)

		assert.Equal(t, 4, a.TotalItems)
		assert.Equal(t, int64(79500), a.TotalValue)
		assert.Equal(t, int64(72), a.TotalWears)
		assert.Equal(t, int64(79500/72), a.CostPerWear)

		require.Len(t, a.MostWorn, 2)
		assert.Equal(t, "Jeans", a.MostWorn[0].Name)
		assert.Equal(t, "Tee", a.MostWorn[1].Name)

		require.Len(t, a.WorstCostPerWear, 2)
		assert.Equal(t, "Gown", a.WorstCostPerWear[0].Name)
		assert.Equal(t, int64(50000), a.WorstCostPerWear[0].CostPerWear)
		assert.Equal(t, "Blazer", a.WorstCostPerWear[1].Name)

		require.Len(t, a.ColorDistribution, 3)
		assert.Equal(t, wardrobe.ColorShare{Color: "blue", Count: 2, Share: 0.5}, a.ColorDistribution[0])
		assert.Equal(t, "black", a.ColorDistribution[1].Color)
		assert.Equal(t, "red", a.ColorDistribution[2].Color)
	})

	t.Run("defaults top n", func(t *testing.T) {
		items := make([]wardrobe.Item, 8)
		for i := range items {
			items[i] = wardrobe.Item{ID: string(rune('a' + i)), Name: string(rune('a' + i)), Color: "green"}
		}

		a := wardrobe.ComputeAnalytics(items, 0)

		assert.Len(t, a.MostWorn, wardrobe.DefaultTopN)
		assert.Len(t, a.WorstCostPerWear, wardrobe.DefaultTopN)
	})
}

func TestCatalogQuery_Normalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   wardrobe.CatalogQuery
		want wardrobe.CatalogQuery
	}{
		{
			name: "applies defaults",
			in:   wardrobe.CatalogQuery{},
			want: wardrobe.CatalogQuery{Limit: 50},
		},
		{
			name: "trims and lowercases",
			in:   wardrobe.CatalogQuery{Query: "  Linen Shirt ", Filter: "Tops", Limit: 10, Offset: 20},
			want: wardrobe.CatalogQuery{Query: "linen shirt", Filter: "tops", Limit: 10, Offset: 20},
		},
		{
			name: "caps limit and clamps offset",
			in:   wardrobe.CatalogQuery{Limit: 1000, Offset: -3},
			want: wardrobe.CatalogQuery{Limit: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestCatalogQuery_Matches(t *testing.T) {
	t.Parallel()

	p := wardrobe.Product{Name: "Linen Shirt", Brand: "Acme", Category: "tops", Color: "White"}

	assert.True(t, wardrobe.CatalogQuery{}.Normalize().Matches(p))
	assert.True(t, wardrobe.CatalogQuery{Query: "LINEN"}.Normalize().Matches(p))
	assert.True(t, wardrobe.CatalogQuery{Query: "white", Filter: "Tops"}.Normalize().Matches(p))
	assert.False(t, wardrobe.CatalogQuery{Filter: "shoes"}.Normalize().Matches(p))
	assert.False(t, wardrobe.CatalogQuery{Query: "wool"}.Normalize().Matches(p))
}
