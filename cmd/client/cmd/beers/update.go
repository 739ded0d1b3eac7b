package beers

import (
	"fmt"

	"github.com/spf13/cobra"

	"beerbasement/cmd/client/cmd/output"
	"beerbasement/internal/app/client/inventory"
	"beerbasement/internal/domain/beer"
)

var updateFlags recordFlags

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Изменить запись",
	Long:  `Меняет поля записи, заданные флагами. Остальные поля остаются прежними.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		inv := app.Inventory()
		if err := <-inv.Fetch(); err != nil {
			return fmt.Errorf("ошибка получения списка записей: %w", err)
		}

		current, ok := find(inv.State().Original, id)
		if !ok {
			return fmt.Errorf("%w: %d", inventory.ErrMissingRecord, id)
		}

		rec := updateFlags.apply(cmd.Flags(), current)
		if err := <-inv.Update(id, rec); err != nil {
			return fmt.Errorf("ошибка обновления записи: %w", err)
		}

		out := output.FromContext(cmd.Context())
		out.Success("Запись %d обновлена", id)
		if updated, ok := find(inv.State().Original, id); ok {
			return out.Beer(updated)
		}
		return nil
	},
}

func find(beers []beer.Record, id int) (beer.Record, bool) {
	for _, b := range beers {
		if b.ID == id {
			return b, true
		}
	}
	return beer.Record{}, false
}

func init() {
	updateFlags.register(updateCmd.Flags())
}
