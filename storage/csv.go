package storage

import (
	"encoding/csv"
	"fmt"
	"os"

	"zameen_watcher/models"
)

var csvColumns = []string{"price_text", "beds", "baths", "area", "address", "area_unit", "link"}

// WriteCSV writes one row per listing to path, header first, truncating
// any previous file. Column order is fixed.
func WriteCSV(path string, listings []models.Listing) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvColumns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, l := range listings {
		row := []string{l.PriceText, l.Beds, l.Baths, l.Area, l.Address, l.AreaUnit, l.Link}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
