package beers

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"beerbasement/cmd/client/cmd/output"
	"beerbasement/internal/app/client/extract"
	"beerbasement/internal/app/client/vision"
)

var (
	addFlags  recordFlags
	fromImage string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Добавить запись",
	Long: `Добавляет запись в коллекцию пользователя.

С --from-image поля сначала заполняются по фотографии этикетки,
явно заданные флаги имеют приоритет.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}
		out := output.FromContext(cmd.Context())

		draft := extract.Draft{}
		if fromImage != "" {
			if draft, err = scanDraft(cmd.Context(), app, out, fromImage); err != nil {
				return err
			}
		}

		rec, err := app.NewRecord(draft)
		if err != nil {
			return err
		}
		rec = addFlags.apply(cmd.Flags(), rec)
		if !cmd.Flags().Changed("quantity") && rec.Quantity == 0 {
			rec.Quantity = 1
		}

		if err := <-app.Inventory().Create(rec); err != nil {
			return fmt.Errorf("ошибка создания записи: %w", err)
		}

		out.Success("Запись %s %s добавлена", rec.Brewery, rec.Name)
		return out.Beers(app.Inventory().State().Visible)
	},
}

type imageScanner interface {
	ScanFile(ctx context.Context, path string) (extract.Draft, error)
}

// scanDraft распознает снимок для add. Сбой распознавания не прерывает команду:
// снимок считается неаннотированным и запись строится только из флагов.
// Ошибкой остается только нечитаемый файл.
func scanDraft(ctx context.Context, s imageScanner, out *output.Printer, path string) (extract.Draft, error) {
	draft, err := s.ScanFile(ctx, path)
	var recErr *vision.RecognitionError
	switch {
	case errors.As(err, &recErr):
		out.Failure("Ошибка распознавания: %v, используются только флаги", recErr)
		return extract.Draft{}, nil
	case err != nil:
		return extract.Draft{}, fmt.Errorf("ошибка распознавания: %w", err)
	}

	if !draft.IsBeverage {
		out.Failure("На снимке не найден напиток, используются только флаги")
	}
	return draft, nil
}

func init() {
	addFlags.register(addCmd.Flags())
	addCmd.Flags().StringVar(&fromImage, "from-image", "", "заполнить поля по фотографии")
}
