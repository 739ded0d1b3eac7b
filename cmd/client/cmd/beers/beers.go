package beers

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"beerbasement/internal/app/client"
	"beerbasement/internal/domain/beer"
)

// BeersCmd - родительская команда для операций с коллекцией
var BeersCmd = &cobra.Command{
	Use:   "beers",
	Short: "Управление коллекцией",
	Long:  `Просмотр, добавление, изменение и удаление записей коллекции.`,
}

func init() {
	BeersCmd.AddCommand(listCmd)
	BeersCmd.AddCommand(addCmd)
	BeersCmd.AddCommand(updateCmd)
	BeersCmd.AddCommand(deleteCmd)
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	app, ok := client.FromContext(cmd.Context())
	if !ok {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("неверный id %q", s)
	}
	return id, nil
}

// recordFlags поля записи, общие для add и update
type recordFlags struct {
	brewery    string
	name       string
	style      string
	abv        float64
	volume     float64
	pictureURL string
	quantity   int
}

func (f *recordFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.brewery, "brewery", "", "пивоварня")
	fs.StringVar(&f.name, "name", "", "название")
	fs.StringVar(&f.style, "style", "", "стиль")
	fs.Float64Var(&f.abv, "abv", 0, "крепость, %")
	fs.Float64Var(&f.volume, "volume", 0, "объем")
	fs.StringVar(&f.pictureURL, "picture-url", "", "ссылка на фото")
	fs.IntVar(&f.quantity, "quantity", 0, "количество")
}

// apply переносит в запись только явно заданные флаги
func (f *recordFlags) apply(fs *pflag.FlagSet, rec beer.Record) beer.Record {
	if fs.Changed("brewery") {
		rec = rec.WithBrewery(f.brewery)
	}
	if fs.Changed("name") {
		rec = rec.WithName(f.name)
	}
	if fs.Changed("style") {
		rec = rec.WithStyle(f.style)
	}
	if fs.Changed("abv") {
		rec = rec.WithABV(f.abv)
	}
	if fs.Changed("volume") {
		rec = rec.WithVolume(f.volume)
	}
	if fs.Changed("picture-url") {
		rec = rec.WithPictureURL(f.pictureURL)
	}
	if fs.Changed("quantity") {
		rec = rec.WithQuantity(f.quantity)
	}
	return rec
}
