package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"beerbasement/cmd/client/cmd/output"
	"beerbasement/internal/app/client"
	"beerbasement/internal/app/client/vision"
)

var scanCmd = &cobra.Command{
	Use:   "scan <image>",
	Short: "Распознать этикетку",
	Long: `Отправляет фотографию в сервис распознавания и печатает черновик записи:
пивоварню, название, стиль, крепость и объем. Ничего не сохраняет.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := client.FromContext(cmd.Context())
		if !ok {
			return fmt.Errorf("приложение не инициализировано")
		}

		out := output.FromContext(cmd.Context())

		// при сбое сервиса печатается пустой черновик
		draft, err := app.ScanFile(cmd.Context(), args[0])
		var recErr *vision.RecognitionError
		switch {
		case errors.As(err, &recErr):
			out.Failure("Ошибка распознавания: %v", recErr)
		case err != nil:
			return fmt.Errorf("ошибка распознавания: %w", err)
		}

		return out.Draft(draft)
	},
}
