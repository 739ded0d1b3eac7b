package beer

// Record - пиво в коллекции пользователя. ID назначает удаленное хранилище,
// запись с ID == 0 еще не сохранена.
type Record struct {
	ID         int     `json:"id"`
	Owner      string  `json:"user"`
	Brewery    string  `json:"brewery"`
	Name       string  `json:"name"`
	Style      string  `json:"style"`
	ABV        float64 `json:"abv"`
	Volume     float64 `json:"volume"`
	PictureURL string  `json:"pictureUrl"`
	Quantity   int     `json:"howMany"`
}

// IsNew сообщает, что запись еще не получила ID от хранилища
func (r Record) IsNew() bool {
	return r.ID == 0
}

// Validate проверяет числовые поля записи
func (r Record) Validate() error {
	if r.ABV < 0 || r.Volume < 0 || r.Quantity < 0 {
		return ErrInvalidData
	}
	return nil
}

func (r Record) WithOwner(owner string) Record {
	r.Owner = owner
	return r
}

func (r Record) WithBrewery(brewery string) Record {
	r.Brewery = brewery
	return r
}

func (r Record) WithName(name string) Record {
	r.Name = name
	return r
}

func (r Record) WithStyle(style string) Record {
	r.Style = style
	return r
}

func (r Record) WithABV(abv float64) Record {
	r.ABV = abv
	return r
}

func (r Record) WithVolume(volume float64) Record {
	r.Volume = volume
	return r
}

func (r Record) WithPictureURL(url string) Record {
	r.PictureURL = url
	return r
}

func (r Record) WithQuantity(quantity int) Record {
	r.Quantity = quantity
	return r
}

// WithoutID возвращает копию записи без ID, в таком виде она уходит в POST /beers
func (r Record) WithoutID() Record {
	r.ID = 0
	return r
}
