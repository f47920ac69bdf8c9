package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"metalmarket-storefront/internal/upstream"
)

// ProductWriter is the slice of the upstream admin API the importer needs.
type ProductWriter interface {
	CreateProduct(ctx context.Context, token string, in upstream.ProductInput) error
}

// CSVImporter reads a catalog CSV export and creates products through the
// upstream admin API. Expected columns: name, category, description,
// imageUrl, price, stock. Price is in rupees.
type CSVImporter struct {
	reader *csv.Reader
	api    ProductWriter
	token  string
}

func NewCSVImporter(r io.Reader, api ProductWriter, token string) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader: csvr,
		api:    api,
		token:  token,
	}
}

// Run parses CSV rows and creates one product per row. It stops on the first
// invalid row or upstream failure, returning the count created so far.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var imported int
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		input, err := parseRow(record, index)
		if err != nil {
			return imported, err
		}
		if input == nil {
			continue
		}

		if err := i.api.CreateProduct(ctx, i.token, *input); err != nil {
			return imported, fmt.Errorf("create product %q: %w", input.Name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (*upstream.ProductInput, error) {
	name := pick(record, index, "name")
	if name == "" {
		// Blank separator rows are tolerated.
		if strings.TrimSpace(strings.Join(record, "")) == "" {
			return nil, nil
		}
		return nil, fmt.Errorf("row missing product name: %v", record)
	}

	priceStr := pick(record, index, "price")
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price <= 0 {
		return nil, fmt.Errorf("invalid price %q for product %q", priceStr, name)
	}

	stock := 0
	if stockStr := pick(record, index, "stock"); stockStr != "" {
		stock, err = strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			return nil, fmt.Errorf("invalid stock %q for product %q", stockStr, name)
		}
	}

	return &upstream.ProductInput{
		Name:        name,
		Category:    pick(record, index, "category"),
		Description: pick(record, index, "description"),
		ImageURL:    pick(record, index, "imageUrl"),
		Price:       price,
		Stock:       stock,
	}, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
