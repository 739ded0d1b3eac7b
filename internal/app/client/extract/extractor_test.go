package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beerbasement/internal/app/client/vision"
)

func labels(texts ...string) []vision.Annotation {
	out := make([]vision.Annotation, 0, len(texts))
	for i, t := range texts {
		out = append(out, vision.Annotation{Text: t, Score: 0.9 - float64(i)*0.1})
	}
	return out
}

func beerBundle(text string, logos ...string) vision.Bundle {
	return vision.Bundle{
		Logos:     labels(logos...),
		TextLines: []string{text},
		Labels:    labels("Bottle", "Beer"),
	}
}

func TestExtract_HeinekenScenario(t *testing.T) {
	d := Extract(vision.Bundle{
		Logos:     labels("Heineken"),
		TextLines: []string{"ALK. 4.6% 33CL HEINEKEN"},
		Labels:    labels("Bottle", "Beer"),
	})

	require.True(t, d.IsBeverage)
	assert.Equal(t, Some("Heineken"), d.Brewery)
	assert.Equal(t, Some("4.6"), d.ABV)
	assert.Equal(t, Some("33"), d.Volume)
	assert.Equal(t, "cl", d.VolumeUnit)
	assert.Equal(t, Some("HEINEKEN"), d.Name)
	assert.False(t, d.Style.Set)
}

func TestExtract_BeverageGate(t *testing.T) {
	nonBeverage := [][]string{
		nil,
		{},
		{"Dog", "Tree", "Sky"},
		{"Person", "Building", "  "},
		{"Car", "Road"},
	}

	for _, ls := range nonBeverage {
		t.Run(strings.Join(ls, ","), func(t *testing.T) {
			d := Extract(vision.Bundle{
				Logos:     labels("Carlsberg"),
				TextLines: []string{"Carlsberg Classic 5,0% 50cl Pilsner"},
				Labels:    labels(ls...),
			})
			assert.True(t, d.IsEmpty())
			assert.False(t, d.IsBeverage)
			assert.Equal(t, Draft{}, d)
		})
	}
}

func TestExtract_GateIsCaseInsensitiveSubstring(t *testing.T) {
	for _, l := range []string{"  BEER GLASS ", "Beer bottle", "Tin can", "Drinkware", "Alcoholic beverage"} {
		d := Extract(vision.Bundle{Labels: labels(l)})
		assert.True(t, d.IsBeverage, l)
	}
}

func TestExtract_ABV(t *testing.T) {
	tests := []struct {
		text string
		want Opt[string]
	}{
		{text: "Classic 5.0%", want: Some("5.0")},
		{text: "Classic 5,0%", want: Some("5.0")},
		{text: "12.5% strong", want: Some("12.5")},
		{text: "only 5% here", want: Some("5")},
		{text: "ABV 7.2%", want: Some("7.2")},
		{text: "alk.4,6% vol.", want: Some("4.6")},
		{text: "4.6% VOL 33cl", want: Some("4.6")},
		{text: "first 4.5% then 6.0%", want: Some("4.5")},
		{text: "ALC12.5%", want: Some("12.5")},
		{text: "Pils4.6%", want: Some("4.6")},
		{text: "x.5%", want: Opt[string]{}},
		{text: "100% malt", want: Opt[string]{}},
		{text: "4.6 percent", want: Opt[string]{}},
		{text: "", want: Opt[string]{}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			d := Extract(beerBundle(tt.text))
			assert.Equal(t, tt.want, d.ABV)
		})
	}
}

func TestExtract_Volume(t *testing.T) {
	tests := []struct {
		text     string
		want     Opt[string]
		wantUnit string
	}{
		{text: "500ml", want: Some("500"), wantUnit: "ml"},
		{text: "50cl", want: Some("50"), wantUnit: "cl"},
		{text: "33 CL", want: Some("33"), wantUnit: "cl"},
		{text: "0,5 l", want: Some("0.5"), wantUnit: "l"},
		{text: "12oz can", want: Some("12"), wantUnit: "oz"},
		{text: "5.0% 330ml 500ml", want: Some("330"), wantUnit: "ml"},
		{text: "33 Lager", want: Opt[string]{}},
		{text: "no volume", want: Opt[string]{}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			d := Extract(beerBundle(tt.text))
			assert.Equal(t, tt.want, d.Volume)
			assert.Equal(t, tt.wantUnit, d.VolumeUnit)
		})
	}
}

func TestExtract_BreweryListOrderWins(t *testing.T) {
	b := beerBundle("", "HEINEKEN", "Carlsberg Group")
	b.Logos[0].Score = 0.99
	b.Logos[1].Score = 0.10

	d := Extract(b)
	assert.Equal(t, Some("Carlsberg"), d.Brewery, "gazetteer order beats logo score")
}

func TestExtract_BreweryUsesCanonicalSpelling(t *testing.T) {
	d := Extract(beerBundle("", "brewdog punk"))
	assert.Equal(t, Some("BrewDog"), d.Brewery)

	d = Extract(beerBundle("", "Unknown Craft Co"))
	assert.False(t, d.Brewery.Set)
}

func TestExtract_TitleAndStyle(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantName  Opt[string]
		wantStyle Opt[string]
	}{
		{
			name:     "descriptor wins over residual",
			text:     "Carlsberg Classic 5,0% 50cl",
			wantName: Some("Classic"),
		},
		{
			name:      "descriptor and style",
			text:      "BrewDog Punk IPA 5.4% 330ml",
			wantName:  Some("IPA"),
			wantStyle: Some("IPA"),
		},
		{
			name:      "residual fallback with multi word style",
			text:      "Nørrebro Bryghus\nPale   Ale 6,5% 50 cl",
			wantName:  Some("Nrrebro Bryghus Pale Ale"),
			wantStyle: Some("Pale Ale"),
		},
		{
			name:     "whole word only",
			text:     "Goldfish Brewing",
			wantName: Some("Goldfish Brewing"),
		},
		{
			name:      "style list order",
			text:      "Dark Porter Stout",
			wantName:  Some("Dark Porter Stout"),
			wantStyle: Some("Stout"),
		},
		{
			name: "only numbers leaves name unset",
			text: "4.6% 33cl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Extract(beerBundle(tt.text))
			assert.Equal(t, tt.wantName, d.Name)
			assert.Equal(t, tt.wantStyle, d.Style)
		})
	}
}

func TestExtract_SanitizesSymbols(t *testing.T) {
	d := Extract(beerBundle("***Tuborg*** Grøn (4,6%) — 33cl!"))

	assert.Equal(t, Some("4.6"), d.ABV)
	assert.Equal(t, Some("33"), d.Volume)
	assert.Equal(t, Some("Tuborg Grn"), d.Name)
}

func TestExtract_TotalAndDeterministic(t *testing.T) {
	inputs := []vision.Bundle{
		{},
		{Labels: labels("beer")},
		{Labels: labels("beer"), TextLines: []string{"%%%,,,...", "\x00\xff\xfe", "日本のビール 5%"}},
		{Labels: labels("beer"), TextLines: []string{strings.Repeat("9", 500) + "%"}},
		{Labels: labels("beer"), Logos: []vision.Annotation{{Text: ""}}, TextLines: []string{"ml cl l oz %"}},
		{Labels: labels("beer"), TextLines: []string{"5%5%5% 1l1l1l"}},
	}

	for i, in := range inputs {
		assert.NotPanics(t, func() {
			first := Extract(in)
			second := Extract(in)
			assert.Equal(t, first, second, "input %d", i)
		})
	}
}

func TestExtract_CustomGazetteer(t *testing.T) {
	g, err := ParseGazetteer(strings.NewReader(`
version: test
beverage_keywords: [cider]
breweries: [Somersby]
descriptors: [Apple]
styles: [Dry, Apple]
`))
	require.NoError(t, err)

	e := New(g)
	assert.Same(t, g, e.Gazetteer())

	d := e.Extract(vision.Bundle{
		Logos:     labels("SOMERSBY"),
		TextLines: []string{"Somersby Apple Dry 4.5% 330ml"},
		Labels:    labels("Cider"),
	})
	assert.Equal(t, Some("Somersby"), d.Brewery)
	assert.Equal(t, Some("Apple"), d.Name)
	assert.Equal(t, Some("Dry"), d.Style)

	d = e.Extract(beerBundle("Somersby"))
	assert.False(t, d.IsBeverage, "beer is not a keyword in this table")
}
