package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/RoyceAzure/lab/storefront/internal/fixture"
	"github.com/stretchr/testify/require"
)

const testFixtureJSON = `{
  "products": [
    {
      "title": "Essence Mascara Lash Princess",
      "description": "Popular mascara known for its volumizing and lengthening effects.",
      "category": "beauty",
      "price": 9.99,
      "discountPercentage": 7.17,
      "rating": 4.94,
      "stock": 5,
      "thumbnail": "https://cdn.example.com/mascara/thumbnail.png",
      "images": ["https://cdn.example.com/mascara/1.png"],
      "reviews": [{"rating": 5, "comment": "ok"}],
      "meta": {"createdAt": "2024-05-23T08:56:21.618Z", "updatedAt": "2024-05-23T08:56:21.618Z"}
    },
    {
      "title": "Samsung Galaxy S10",
      "description": "Smartphone with a stunning display.",
      "category": "smartphones",
      "price": 699.99,
      "discountPercentage": 12.3,
      "rating": 2.93,
      "stock": 83,
      "thumbnail": "https://cdn.example.com/s10/thumbnail.png",
      "images": ["https://cdn.example.com/s10/1.png"],
      "reviews": [],
      "meta": {"createdAt": "2024-05-23T08:56:21.618Z", "updatedAt": "2024-05-23T08:56:21.618Z"}
    }
  ]
}`

func loadTestFallback(t *testing.T) *fixture.Fallback {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(testFixtureJSON), 0o644))

	fallback, err := fixture.Load(path)
	require.NoError(t, err)
	return fallback
}
