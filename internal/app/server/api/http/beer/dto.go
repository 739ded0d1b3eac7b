package beer

import (
	"beerbasement/internal/domain/beer"
)

type listOutput struct {
	Body []beer.Record
}

type listByOwnerInput struct {
	Username string `path:"username" example:"anna@example.com" doc:"Владелец коллекции"`
}

type createInput struct {
	Body request
}

type updateInput struct {
	ID   int `path:"id" example:"1" doc:"ID записи"`
	Body request
}

type deleteInput struct {
	ID int `path:"id" example:"1" doc:"ID записи"`
}

type output struct {
	Body beer.Record
}

// request тело записи. id необязателен: при создании игнорируется,
// при обновлении берется из пути.
type request struct {
	ID         int     `json:"id,omitempty" required:"false"`
	Owner      string  `json:"user" doc:"Владелец записи"`
	Brewery    string  `json:"brewery" required:"false"`
	Name       string  `json:"name" required:"false"`
	Style      string  `json:"style" required:"false"`
	ABV        float64 `json:"abv" required:"false" minimum:"0"`
	Volume     float64 `json:"volume" required:"false" minimum:"0"`
	PictureURL string  `json:"pictureUrl" required:"false"`
	Quantity   int     `json:"howMany" required:"false" minimum:"0"`
}

func (r request) toRecord() beer.Record {
	return beer.Record{
		ID:         r.ID,
		Owner:      r.Owner,
		Brewery:    r.Brewery,
		Name:       r.Name,
		Style:      r.Style,
		ABV:        r.ABV,
		Volume:     r.Volume,
		PictureURL: r.PictureURL,
		Quantity:   r.Quantity,
	}
}
