package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"metalmarket-storefront/internal/upstream"
)

type stubWriter struct {
	created []upstream.ProductInput
	tokens  []string
	err     error
}

func (s *stubWriter) CreateProduct(_ context.Context, token string, in upstream.ProductInput) error {
	if s.err != nil {
		return s.err
	}
	s.tokens = append(s.tokens, token)
	s.created = append(s.created, in)
	return nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `name,category,description,imageUrl,price,stock
Copper Sheet 2mm,Copper,Cold rolled sheet,https://example.com/copper.jpg,1450.50,25
Zinc Ingot 1kg,Zinc,,,399,100

Lead Flashing Roll,Lead,Roofing grade,,899.99,12
`
	api := &stubWriter{}
	imp := NewCSVImporter(strings.NewReader(csvData), api, "admin-token")

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 products imported, got %d", count)
	}
	if len(api.created) != 3 {
		t.Fatalf("expected 3 products created, got %d", len(api.created))
	}

	first := api.created[0]
	if first.Name != "Copper Sheet 2mm" || first.Category != "Copper" || first.Price != 1450.50 || first.Stock != 25 {
		t.Fatalf("unexpected first product: %+v", first)
	}
	if first.ImageURL != "https://example.com/copper.jpg" {
		t.Fatalf("expected image url preserved, got %q", first.ImageURL)
	}
	if api.created[1].Stock != 100 || api.created[1].Description != "" {
		t.Fatalf("unexpected second product: %+v", api.created[1])
	}
	for _, tok := range api.tokens {
		if tok != "admin-token" {
			t.Fatalf("expected admin token on every call, got %q", tok)
		}
	}
}

func TestCSVImporter_InvalidPrice(t *testing.T) {
	csvData := `name,category,price,stock
Copper Sheet,Copper,not-a-number,5
`
	imp := NewCSVImporter(strings.NewReader(csvData), &stubWriter{}, "t")

	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected an error for an unparsable price")
	}
}

func TestCSVImporter_MissingName(t *testing.T) {
	csvData := `name,category,price,stock
,Copper,100,5
`
	imp := NewCSVImporter(strings.NewReader(csvData), &stubWriter{}, "t")

	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected an error for a row without a name")
	}
}

func TestCSVImporter_StopsOnUpstreamFailure(t *testing.T) {
	csvData := `name,category,price,stock
Copper Sheet,Copper,100,5
Zinc Ingot,Zinc,200,5
`
	api := &stubWriter{err: errors.New("upstream down")}
	imp := NewCSVImporter(strings.NewReader(csvData), api, "t")

	count, err := imp.Run(context.Background())
	if err == nil {
		t.Fatal("expected the upstream error to surface")
	}
	if count != 0 {
		t.Fatalf("expected zero imports before failure, got %d", count)
	}
}
