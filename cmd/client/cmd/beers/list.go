package beers

import (
	"fmt"

	"github.com/spf13/cobra"

	"beerbasement/cmd/client/cmd/output"
	"beerbasement/internal/app/client/inventory"
)

var (
	sortField  string
	descending bool
	filter     string
	all        bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Список записей",
	Long: `Загружает коллекцию пользователя (или всех пользователей с --all)
и печатает ее с учетом фильтра и сортировки.

Поля сортировки: brewery, name, abv, volume.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		field := inventory.SortNone
		if sortField != "" {
			if field, err = inventory.ParseSortField(sortField); err != nil {
				return err
			}
		}

		inv := app.Inventory()
		if all {
			err = <-inv.Fetch()
		} else {
			if app.User() == "" {
				return fmt.Errorf("укажите пользователя через --user или BEER_USER, либо используйте --all")
			}
			err = <-inv.FetchByOwner(app.User())
		}
		if err != nil {
			return fmt.Errorf("ошибка получения списка записей: %w", err)
		}

		// фильтр сбрасывает сортировку, поэтому сортируем после него
		if filter != "" {
			if err := <-inv.FilterByTitle(filter); err != nil {
				return err
			}
		}
		if field != inventory.SortNone {
			if err := <-inv.SortBy(field, !descending); err != nil {
				return err
			}
		}

		return output.FromContext(cmd.Context()).Beers(inv.State().Visible)
	},
}

func init() {
	listCmd.Flags().StringVar(&sortField, "sort", "", "поле сортировки")
	listCmd.Flags().BoolVar(&descending, "desc", false, "сортировка по убыванию")
	listCmd.Flags().StringVar(&filter, "filter", "", "фрагмент названия или пивоварни")
	listCmd.Flags().BoolVar(&all, "all", false, "коллекции всех пользователей")
}
