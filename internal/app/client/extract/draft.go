package extract

import (
	"strconv"

	"beerbasement/internal/domain/beer"
)

// Opt значение поля черновика. Set == false означает "ничего не найдено",
// что отличается от найденного пустого значения.
type Opt[T any] struct {
	Value T
	Set   bool
}

// Some возвращает заполненное значение
func Some[T any](v T) Opt[T] {
	return Opt[T]{Value: v, Set: true}
}

// Or возвращает значение или запасной вариант, если поле не заполнено
func (o Opt[T]) Or(fallback T) T {
	if !o.Set {
		return fallback
	}
	return o.Value
}

// Draft черновик записи, предложенный по результатам распознавания.
// ABV и Volume хранятся строками, как их редактирует форма.
type Draft struct {
	Brewery    Opt[string] `json:"brewery"`
	Name       Opt[string] `json:"name"`
	Style      Opt[string] `json:"style"`
	ABV        Opt[string] `json:"abv"`
	Volume     Opt[string] `json:"volume"`
	VolumeUnit string      `json:"volume_unit,omitempty"`
	PictureURL Opt[string] `json:"picture_url"`
	Quantity   Opt[int]    `json:"quantity"`
	IsBeverage bool        `json:"is_beverage"`
}

// IsEmpty сообщает, что ни одно поле не заполнено
func (d Draft) IsEmpty() bool {
	return !d.Brewery.Set && !d.Name.Set && !d.Style.Set && !d.ABV.Set &&
		!d.Volume.Set && !d.PictureURL.Set && !d.Quantity.Set
}

func (d Draft) WithBrewery(v string) Draft {
	d.Brewery = Some(v)
	return d
}

func (d Draft) WithName(v string) Draft {
	d.Name = Some(v)
	return d
}

func (d Draft) WithStyle(v string) Draft {
	d.Style = Some(v)
	return d
}

func (d Draft) WithABV(v string) Draft {
	d.ABV = Some(v)
	return d
}

func (d Draft) WithVolume(v, unit string) Draft {
	d.Volume = Some(v)
	d.VolumeUnit = unit
	return d
}

func (d Draft) WithPictureURL(v string) Draft {
	d.PictureURL = Some(v)
	return d
}

func (d Draft) WithQuantity(v int) Draft {
	d.Quantity = Some(v)
	return d
}

// Record превращает черновик в несохраненную запись владельца.
// Незаполненные и неразборчивые числа становятся нулями.
func (d Draft) Record(owner string) beer.Record {
	return beer.Record{
		Owner:      owner,
		Brewery:    d.Brewery.Or(""),
		Name:       d.Name.Or(""),
		Style:      d.Style.Or(""),
		ABV:        parseFloat(d.ABV),
		Volume:     parseFloat(d.Volume),
		PictureURL: d.PictureURL.Or(""),
		Quantity:   d.Quantity.Or(0),
	}
}

func parseFloat(o Opt[string]) float64 {
	if !o.Set {
		return 0
	}
	f, err := strconv.ParseFloat(o.Value, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
