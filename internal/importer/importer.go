package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"orderdesk/internal/domain"
	custrepo "orderdesk/internal/repository/customer"
)

type CustomerWriter interface {
	Create(ctx context.Context, in custrepo.CreateInput) (*domain.Customer, error)
}

// CSVImporter bulk-creates customers from a CSV file with a header row.
// Recognized columns: name, rank, phone, email, address, notes. Only
// name is required; rank defaults downstream like any other create.
type CSVImporter struct {
	reader    *csv.Reader
	customers CustomerWriter
}

func NewCSVImporter(r io.Reader, customers CustomerWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:    csvr,
		customers: customers,
	}
}

// Run parses CSV rows and creates one customer per row. It stops at the
// first failing row, returning how many were imported before it.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("csv is missing a name column")
	}

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		in := custrepo.CreateInput{
			Name:    field(record, index, "name"),
			Rank:    field(record, index, "rank"),
			Phone:   field(record, index, "phone"),
			Email:   field(record, index, "email"),
			Address: field(record, index, "address"),
			Notes:   field(record, index, "notes"),
		}
		if in.Name == "" {
			continue
		}

		if _, err := i.customers.Create(ctx, in); err != nil {
			return imported, fmt.Errorf("create customer %q: %w", in.Name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
