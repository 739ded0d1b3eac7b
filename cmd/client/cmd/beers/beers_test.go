package beers

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beerbasement/cmd/client/cmd/output"
	"beerbasement/internal/app/client/extract"
	"beerbasement/internal/app/client/vision"
	"beerbasement/internal/domain/beer"
)

type stubScanner struct {
	draft extract.Draft
	err   error
}

func (s stubScanner) ScanFile(context.Context, string) (extract.Draft, error) {
	return s.draft, s.err
}

func TestRecordFlags_ApplyOnlyChanged(t *testing.T) {
	var f recordFlags
	fs := pflag.NewFlagSet("update", pflag.ContinueOnError)
	f.register(fs)

	require.NoError(t, fs.Parse([]string{"--abv", "4.8", "--name", "Classic", "--quantity", "0"}))

	current := beer.Record{ID: 1, Owner: "anna", Brewery: "Carlsberg", Name: "Pilsner", ABV: 5, Quantity: 3}
	got := f.apply(fs, current)

	assert.Equal(t, beer.Record{ID: 1, Owner: "anna", Brewery: "Carlsberg", Name: "Classic", ABV: 4.8}, got)
}

func TestParseID(t *testing.T) {
	id, err := parseID("12")
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	for _, bad := range []string{"", "0", "-3", "abc"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestFind(t *testing.T) {
	beers := []beer.Record{{ID: 1}, {ID: 4, Name: "Green"}}

	b, ok := find(beers, 4)
	assert.True(t, ok)
	assert.Equal(t, "Green", b.Name)

	_, ok = find(beers, 9)
	assert.False(t, ok)
}

func TestScanDraft_RecognitionFailureFallsBackToFlags(t *testing.T) {
	color.NoColor = true
	var stdout, stderr bytes.Buffer
	out := output.NewWriter(&stdout, &stderr, false)

	scanner := stubScanner{err: &vision.RecognitionError{Kind: vision.KindQuota, Status: 429, Message: "quota exceeded"}}
	draft, err := scanDraft(context.Background(), scanner, out, "label.jpg")
	require.NoError(t, err)
	assert.Equal(t, extract.Draft{}, draft)
	assert.Contains(t, stderr.String(), "quota exceeded")
	assert.Empty(t, stdout.String())

	// пустой черновик плюс явные флаги дают запись для Create
	var f recordFlags
	fs := pflag.NewFlagSet("add", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse([]string{"--brewery", "Carlsberg", "--name", "Classic"}))

	rec := f.apply(fs, draft.Record("anna"))
	assert.Equal(t, beer.Record{Owner: "anna", Brewery: "Carlsberg", Name: "Classic"}, rec)
	assert.NoError(t, rec.Validate())
}

func TestScanDraft(t *testing.T) {
	color.NoColor = true

	t.Run("beverage", func(t *testing.T) {
		var stderr bytes.Buffer
		want := extract.Draft{IsBeverage: true}.WithBrewery("Heineken")
		draft, err := scanDraft(context.Background(), stubScanner{draft: want},
			output.NewWriter(&bytes.Buffer{}, &stderr, false), "label.jpg")
		require.NoError(t, err)
		assert.Equal(t, want, draft)
		assert.Empty(t, stderr.String())
	})

	t.Run("not a beverage", func(t *testing.T) {
		var stderr bytes.Buffer
		draft, err := scanDraft(context.Background(), stubScanner{},
			output.NewWriter(&bytes.Buffer{}, &stderr, false), "label.jpg")
		require.NoError(t, err)
		assert.Equal(t, extract.Draft{}, draft)
		assert.Contains(t, stderr.String(), "не найден напиток")
	})

	t.Run("unreadable file", func(t *testing.T) {
		_, err := scanDraft(context.Background(), stubScanner{err: errors.New("no such file")},
			output.NewWriter(&bytes.Buffer{}, &bytes.Buffer{}, false), "missing.jpg")
		assert.Error(t, err)
	})
}
