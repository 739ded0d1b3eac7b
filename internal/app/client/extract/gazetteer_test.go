package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGazetteer(t *testing.T) {
	g := DefaultGazetteer()

	assert.NotEmpty(t, g.Version)
	assert.Contains(t, g.BeverageKeywords, "beer")
	assert.Contains(t, g.Breweries, "Heineken")
	assert.Equal(t, "Classic", g.Descriptors[0])

	// многословные стили должны идти раньше своих хвостов
	idx := func(s string) int {
		for i, v := range g.Styles {
			if v == s {
				return i
			}
		}
		return -1
	}
	assert.Less(t, idx("Pale Ale"), idx("Ale"))
	assert.Less(t, idx("Brown Ale"), idx("Ale"))
}

func TestLoadGazetteer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gazetteer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: "v2"
beverage_keywords:
  - beer
  - "  "
breweries:
  - Zeta
  - Alpha
descriptors: []
`), 0o600))

	g, err := LoadGazetteer(path)
	require.NoError(t, err)

	assert.Equal(t, "v2", g.Version)
	assert.Equal(t, []string{"beer"}, g.BeverageKeywords)
	assert.Equal(t, []string{"Zeta", "Alpha"}, g.Breweries, "file order is kept")
	assert.Empty(t, g.Descriptors)
	assert.Empty(t, g.Styles)
}

func TestLoadGazetteer_Errors(t *testing.T) {
	_, err := LoadGazetteer(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ParseGazetteer(strings.NewReader("breweries: [unclosed"))
	assert.Error(t, err)
}

func TestDraft_Record(t *testing.T) {
	d := Draft{}.
		WithBrewery("Carlsberg").
		WithName("Classic").
		WithABV("5.0").
		WithVolume("50", "cl").
		WithQuantity(2)

	rec := d.Record("anna@example.com")

	assert.Equal(t, 0, rec.ID)
	assert.Equal(t, "anna@example.com", rec.Owner)
	assert.Equal(t, "Carlsberg", rec.Brewery)
	assert.Equal(t, "Classic", rec.Name)
	assert.Equal(t, "", rec.Style)
	assert.Equal(t, 5.0, rec.ABV)
	assert.Equal(t, 50.0, rec.Volume)
	assert.Equal(t, 2, rec.Quantity)

	bad := Draft{}.WithABV("n/a").Record("x")
	assert.Equal(t, 0.0, bad.ABV)
}

func TestDraft_UnsetDiffersFromEmpty(t *testing.T) {
	empty := Draft{}.WithName("")

	assert.True(t, empty.Name.Set)
	assert.False(t, Draft{}.Name.Set)
	assert.False(t, empty.IsEmpty())
	assert.Equal(t, "fallback", Draft{}.Name.Or("fallback"))
	assert.Equal(t, "", empty.Name.Or("fallback"))
}
