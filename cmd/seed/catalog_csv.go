package main

import (
	"fmt"
	"io"
	"os"

	"github.com/intercel/backend/internal/infrastructure/csvimport"
)

// Catalog CSV columns. One row per plan; category label and icon are read
// from the first row of each category.
const (
	colCategory        = "category"
	colLabel           = "label"
	colIcon            = "icon"
	colPrice           = "price"
	colData            = "data"
	colOriginalData    = "original_data"
	colMultiplier      = "multiplier"
	colFeatures        = "features"
	colSMS             = "sms"
	colDuration        = "duration"
	colCalls           = "calls"
	colUnlimitedSocial = "unlimited_social"
	colFeatured        = "featured"
	colMifi            = "mifi"
	colTag             = "tag"
)

var requiredColumns = []string{colCategory, colLabel, colPrice, colData, colFeatures, colDuration}

func loadCatalogFile(path string) ([]seedCategory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseCatalogCSV(f)
}

// parseCatalogCSV groups plan rows by category, keeping first-appearance order
// for both categories and plans
func parseCatalogCSV(r io.Reader) ([]seedCategory, error) {
	parser, err := csvimport.NewParser(r)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}
	if missing := parser.MissingHeaders(requiredColumns...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %v", csvimport.ErrMissingHeader, missing)
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, err
	}

	errs := csvimport.NewErrorCollection(50)
	var catalog []seedCategory
	index := make(map[string]int)
	for _, row := range rows {
		name := row.Required(colCategory, errs)
		if name == "" {
			continue
		}

		i, ok := index[name]
		if !ok {
			catalog = append(catalog, seedCategory{
				Name:  name,
				Label: row.Required(colLabel, errs),
				Icon:  row.Get(colIcon),
			})
			i = len(catalog) - 1
			index[name] = i
		}

		if row.Get(colPrice) == "" {
			errs.AddRequiredError(row.LineNumber, colPrice)
		}
		catalog[i].Plans = append(catalog[i].Plans, seedPlan{
			Price:           row.Int(colPrice, 0, 0, errs),
			Data:            row.Required(colData, errs),
			OriginalData:    row.Optional(colOriginalData),
			Multiplier:      row.Optional(colMultiplier),
			Features:        row.Required(colFeatures, errs),
			SMS:             row.Optional(colSMS),
			Duration:        row.Required(colDuration, errs),
			HasCalls:        row.Bool(colCalls, errs),
			UnlimitedSocial: row.Bool(colUnlimitedSocial, errs),
			IsFeatured:      row.Bool(colFeatured, errs),
			IsMifi:          row.Bool(colMifi, errs),
			Tag:             row.Optional(colTag),
		})
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}
	return catalog, nil
}
