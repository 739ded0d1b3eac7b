package beers

import (
	"fmt"

	"github.com/spf13/cobra"

	"beerbasement/cmd/client/cmd/output"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить запись",
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

		if err := <-app.Inventory().Delete(id); err != nil {
			return fmt.Errorf("ошибка удаления записи: %w", err)
		}

		output.FromContext(cmd.Context()).Success("Запись %d удалена", id)
		return nil
	},
}
