// cmd/client/cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"beerbasement/cmd/client/cmd/beers"
	"beerbasement/cmd/client/cmd/output"
	"beerbasement/internal/app/client"
	"beerbasement/internal/app/client/config"
	"beerbasement/internal/utils/logger"
)

var (
	cfgFile    string
	cfg        *config.Config
	log        *slog.Logger
	app        *client.App
	debug      bool
	jsonOutput bool
	serverURL  string
	user       string
)

var rootCmd = &cobra.Command{
	Use:   "beerbasement",
	Short: "BeerBasement - учет домашней коллекции пива",
	Long: `BeerBasement распознает этикетку по фотографии, предлагает черновик записи
и синхронизирует коллекцию с удаленным хранилищем.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.New(jsonOutput).Failure("Ошибка: %v", err)
		if app != nil {
			app.Close()
		}
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}
	if user != "" {
		cfg.User = user
	}
	if debug {
		cfg.LogLevel = "debug"
	}

	// stdout занят выводом команд, логи идут в stderr
	log = logger.WithLevel(cfg.Env, cfg.LogLevel, os.Stderr)

	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	ctx := client.WithApp(cmd.Context(), app)
	ctx = output.WithPrinter(ctx, output.New(jsonOutput))
	cmd.SetContext(ctx)
	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if app != nil {
		app.Close()
	}
	return nil
}

func init() {
	// Глобальные флаги
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл (YAML)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес хранилища")
	rootCmd.PersistentFlags().StringVar(&user, "user", "", "пользователь коллекции")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(beers.BeersCmd)
}
