package inventory

import (
	"fmt"
	"sort"
	"strings"

	"beerbasement/internal/domain/beer"
)

// SortField ключ сортировки видимого списка
type SortField string

const (
	SortNone    SortField = ""
	SortBrewery SortField = "brewery"
	SortName    SortField = "name"
	SortABV     SortField = "abv"
	SortVolume  SortField = "volume"
)

// ParseSortField разбирает имя поля сортировки
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortBrewery, SortName, SortABV, SortVolume:
		return f, nil
	}
	return SortNone, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// State снимок кэша для потребителей
type State struct {
	Visible   []beer.Record `json:"visible"`
	Original  []beer.Record `json:"original"`
	IsLoading bool          `json:"is_loading"`
	LastError string        `json:"last_error,omitempty"`
	Filter    string        `json:"filter,omitempty"`
	SortField SortField     `json:"sort_field,omitempty"`
	Ascending bool          `json:"ascending"`
}

// Cache состояние коллекции одной сессии. Не потокобезопасен,
// им владеет горутина Coordinator.
type Cache struct {
	original  []beer.Record
	visible   []beer.Record
	isLoading bool
	lastError string
	filter    string
	sortField SortField
	ascending bool
}

func NewCache() *Cache {
	return &Cache{
		original: []beer.Record{},
		visible:  []beer.Record{},
	}
}

// Replace заменяет исходный список целиком после успешной загрузки.
// Записи без ID в кэш не попадают, возвращается их количество.
func (c *Cache) Replace(beers []beer.Record) int {
	original := make([]beer.Record, 0, len(beers))
	dropped := 0
	for _, b := range beers {
		if b.IsNew() {
			dropped++
			continue
		}
		original = append(original, b)
	}

	c.original = original
	c.lastError = ""
	c.derive()
	return dropped
}

// Fail запоминает ошибку, списки не трогаются
func (c *Cache) Fail(msg string) {
	c.lastError = msg
}

func (c *Cache) SetLoading(loading bool) {
	c.isLoading = loading
}

// SortBy пересобирает видимый список с сортировкой по полю
func (c *Cache) SortBy(field SortField, ascending bool) error {
	if _, err := ParseSortField(string(field)); err != nil {
		return err
	}
	c.sortField = field
	c.ascending = ascending
	c.derive()
	return nil
}

// Filter оставляет записи, где fragment входит в name или brewery без учета регистра.
// Фильтр строится по исходному порядку, активная сортировка сбрасывается.
func (c *Cache) Filter(fragment string) {
	c.filter = fragment
	c.sortField = SortNone
	c.derive()
}

// ClearView сбрасывает фильтр и сортировку
func (c *Cache) ClearView() {
	c.Filter("")
}

// Reset очищает кэш при выходе пользователя
func (c *Cache) Reset() {
	*c = *NewCache()
}

// State возвращает копию состояния
func (c *Cache) State() State {
	return State{
		Visible:   clone(c.visible),
		Original:  clone(c.original),
		IsLoading: c.isLoading,
		LastError: c.lastError,
		Filter:    c.filter,
		SortField: c.sortField,
		Ascending: c.ascending,
	}
}

// derive пересчитывает видимый список, никогда не изменяя original
func (c *Cache) derive() {
	visible := make([]beer.Record, 0, len(c.original))
	needle := strings.ToLower(c.filter)
	for _, b := range c.original {
		if needle == "" ||
			strings.Contains(strings.ToLower(b.Name), needle) ||
			strings.Contains(strings.ToLower(b.Brewery), needle) {
			visible = append(visible, b)
		}
	}

	if less := lessFunc(c.sortField); less != nil {
		asc := c.ascending
		sort.SliceStable(visible, func(i, j int) bool {
			if asc {
				return less(visible[i], visible[j])
			}
			return less(visible[j], visible[i])
		})
	}

	c.visible = visible
}

func lessFunc(field SortField) func(a, b beer.Record) bool {
	switch field {
	case SortBrewery:
		return func(a, b beer.Record) bool { return strings.ToLower(a.Brewery) < strings.ToLower(b.Brewery) }
	case SortName:
		return func(a, b beer.Record) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortABV:
		return func(a, b beer.Record) bool { return a.ABV < b.ABV }
	case SortVolume:
		return func(a, b beer.Record) bool { return a.Volume < b.Volume }
	}
	return nil
}

func clone(beers []beer.Record) []beer.Record {
	out := make([]beer.Record, len(beers))
	copy(out, beers)
	return out
}
