package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/diillson/investment-analyzer-go/internal/domain/entity"
	"github.com/diillson/investment-analyzer-go/internal/domain/repository"
	"github.com/diillson/investment-analyzer-go/internal/shared/types"
	"github.com/xuri/excelize/v2"
)

// ObjectGetter is the subset of the S3 client used to download datasets.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// DatasetRepositoryImpl implementa o DatasetRepository com cache de clientes S3.
type DatasetRepositoryImpl struct {
	newClient   func(ctx context.Context, profile string) (ObjectGetter, error)
	clientCache map[string]ObjectGetter
	mu          sync.Mutex
}

// NewDatasetRepository cria uma nova implementação do DatasetRepository.
func NewDatasetRepository() repository.DatasetRepository {
	return NewDatasetRepositoryWithS3(newS3Client)
}

// NewDatasetRepositoryWithS3 permite injetar a criação do cliente S3.
func NewDatasetRepositoryWithS3(newClient func(ctx context.Context, profile string) (ObjectGetter, error)) *DatasetRepositoryImpl {
	return &DatasetRepositoryImpl{
		newClient:   newClient,
		clientCache: make(map[string]ObjectGetter),
	}
}

func newS3Client(ctx context.Context, profile string) (ObjectGetter, error) {
	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for profile %s: %w", profile, err)
	}
	return s3.NewFromConfig(cfg), nil
}

// Load lê um CSV ou XLSX de um caminho local ou de uma URL s3://bucket/key.
func (r *DatasetRepositoryImpl) Load(ctx context.Context, source string, opts repository.LoadOptions) (entity.Dataset, error) {
	if strings.TrimSpace(source) == "" {
		return entity.Dataset{}, types.ErrNoInput
	}

	if strings.HasPrefix(source, "s3://") {
		data, err := r.fetchS3(ctx, source, opts.Profile)
		if err != nil {
			return entity.Dataset{}, err
		}
		return decode(path.Base(source), bytes.NewReader(data), opts.Sheet)
	}

	file, err := os.Open(source)
	if err != nil {
		return entity.Dataset{}, fmt.Errorf("error opening dataset: %w", err)
	}
	defer file.Close()

	return decode(filepath.Base(source), file, opts.Sheet)
}

func (r *DatasetRepositoryImpl) client(ctx context.Context, profile string) (ObjectGetter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.clientCache[profile]; ok {
		return c, nil
	}
	c, err := r.newClient(ctx, profile)
	if err != nil {
		return nil, err
	}
	r.clientCache[profile] = c
	return c, nil
}

func (r *DatasetRepositoryImpl) fetchS3(ctx context.Context, url, profile string) ([]byte, error) {
	bucket, key, ok := strings.Cut(strings.TrimPrefix(url, "s3://"), "/")
	if !ok || bucket == "" || key == "" {
		return nil, fmt.Errorf("invalid S3 URL %q, expected s3://bucket/key", url)
	}

	c, err := r.client(ctx, profile)
	if err != nil {
		return nil, err
	}

	out, err := c.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("error downloading %s: %w", url, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", url, err)
	}
	return data, nil
}

// decode escolhe o parser pela extensão do arquivo.
func decode(name string, r io.Reader, sheet string) (entity.Dataset, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt", ".tsv":
		return parseCSV(name, r)
	case ".xlsx", ".xlsm":
		return parseXLSX(name, r, sheet)
	default:
		return entity.Dataset{}, fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, name)
	}
}

func parseCSV(name string, r io.Reader) (entity.Dataset, error) {
	br := bufio.NewReader(r)
	first, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return entity.Dataset{}, fmt.Errorf("read csv: %w", err)
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.Comma = sniffDelimiter(first)

	records, err := reader.ReadAll()
	if err != nil {
		return entity.Dataset{}, fmt.Errorf("read csv: %w", err)
	}
	return fromRecords(name, records)
}

// sniffDelimiter escolhe entre ',', ';' e '\t' olhando a primeira linha.
func sniffDelimiter(sample []byte) rune {
	line := string(sample)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	best, bestCount := ',', strings.Count(line, ",")
	for _, d := range []rune{';', '\t'} {
		if c := strings.Count(line, string(d)); c > bestCount {
			best, bestCount = d, c
		}
	}
	return best
}

func parseXLSX(name string, r io.Reader, sheet string) (entity.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return entity.Dataset{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return entity.Dataset{}, types.ErrEmptyInput
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return entity.Dataset{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	convertDateCells(f, sheet, rows)
	return fromRecords(name, rows)
}

// convertDateCells troca os números seriais de células com formato de data por datas ISO.
func convertDateCells(f *excelize.File, sheet string, rows [][]string) {
	dateStyles := map[int]bool{}
	for r, row := range rows {
		for c, v := range row {
			serial, err := strconv.ParseFloat(v, 64)
			if err != nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				continue
			}
			styleID, err := f.GetCellStyle(sheet, cell)
			if err != nil || styleID == 0 {
				continue
			}
			isDate, ok := dateStyles[styleID]
			if !ok {
				isDate = isDateStyle(f, styleID)
				dateStyles[styleID] = isDate
			}
			if !isDate {
				continue
			}
			t, err := excelize.ExcelDateToTime(serial, false)
			if err != nil {
				continue
			}
			row[c] = formatExcelTime(t)
		}
	}
}

func isDateStyle(f *excelize.File, styleID int) bool {
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt)
	}
	id := style.NumFmt
	return (id >= 14 && id <= 22) || (id >= 27 && id <= 36) || (id >= 45 && id <= 47) || (id >= 50 && id <= 58)
}

// isDateFormatCode ignora texto entre aspas e trechos como "[Red]".
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, ch := range strings.ToLower(code) {
		switch {
		case ch == '"':
			inQuote = !inQuote
		case inQuote:
		case ch == '[':
			inBracket = true
		case ch == ']':
			inBracket = false
		case !inBracket:
			b.WriteRune(ch)
		}
	}
	clean := b.String()
	return strings.ContainsAny(clean, "yd") || strings.Contains(clean, "h:") || strings.Contains(clean, "mmm")
}

func formatExcelTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}

// fromRecords usa a primeira linha não vazia como cabeçalho.
func fromRecords(name string, records [][]string) (entity.Dataset, error) {
	for len(records) > 0 && isBlank(records[0]) {
		records = records[1:]
	}
	if len(records) == 0 {
		return entity.Dataset{}, types.ErrEmptyInput
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		h = strings.TrimPrefix(h, "\ufeff")
		header[i] = strings.TrimSpace(h)
	}

	var rows [][]string
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		if len(rec) > len(header) {
			rec = rec[:len(header)]
		}
		rows = append(rows, rec)
	}
	return entity.NewDataset(name, header, rows), nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
