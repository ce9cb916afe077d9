package repository

import (
	"github.com/diillson/investment-analyzer-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportConcentrationToCSV(report entity.ConcentrationReport, filename string, outputDir string) (string, error)
	ExportConcentrationToJSON(report entity.ConcentrationReport, filename string, outputDir string) (string, error)
	ExportConcentrationToPDF(report entity.ConcentrationReport, filename string, outputDir string) (string, error)

	// Data overview
	ExportProfileToMarkdown(profile entity.DatasetProfile, filename string, outputDir string) (string, error)
	ExportProfileToHTML(profile entity.DatasetProfile, filename string, outputDir string) (string, error)
}
