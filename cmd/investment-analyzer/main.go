package main

import (
	"fmt"
	"os"

	"github.com/diillson/investment-analyzer-go/internal/adapter/driven/aws"
	"github.com/diillson/investment-analyzer-go/internal/adapter/driven/config"
	"github.com/diillson/investment-analyzer-go/internal/adapter/driven/dataset"
	"github.com/diillson/investment-analyzer-go/internal/adapter/driven/export"
	"github.com/diillson/investment-analyzer-go/internal/adapter/driving/cli"
	"github.com/diillson/investment-analyzer-go/internal/application/usecase"
	"github.com/diillson/investment-analyzer-go/pkg/console"
	"github.com/diillson/investment-analyzer-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	datasetRepo := dataset.NewDatasetRepository()
	costRepo := aws.NewAWSRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	analysisUseCase := usecase.NewAnalysisUseCase(
		datasetRepo,
		costRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetAnalysisUseCase(analysisUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
