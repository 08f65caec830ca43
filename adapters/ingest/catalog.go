package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"skynull/domain/core"
	"skynull/domain/geom"
)

// Column aliases accepted during header discovery, most specific first. A
// header matches case-insensitively after trimming.
var (
	raAliases  = []string{"ra", "raj2000", "ra_deg", "alpha", "right_ascension"}
	decAliases = []string{"dec", "dej2000", "de", "dec_deg", "delta", "declination"}
	zAliases   = []string{"z", "redshift", "zspec", "z_best", "photoz"}
)

// CSVCatalog loads point catalogs from CSV files, discovering the RA, Dec and
// redshift columns by header alias.
type CSVCatalog struct{}

func NewCSVCatalog() *CSVCatalog {
	return &CSVCatalog{}
}

// LoadCatalog reads the catalog at path, keeping objects with redshift >=
// zMin. Rows with unparseable coordinates are skipped rather than failing the
// whole load.
func (c *CSVCatalog) LoadCatalog(path string, zMin float64) (*geom.Catalog, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer fh.Close()

	reader := csv.NewReader(fh)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog headers: %w", err)
	}

	raCol, err := discoverColumn(headers, "ra", raAliases)
	if err != nil {
		return nil, err
	}
	decCol, err := discoverColumn(headers, "dec", decAliases)
	if err != nil {
		return nil, err
	}
	zCol, err := discoverColumn(headers, "redshift", zAliases)
	if err != nil {
		return nil, err
	}

	cat := &geom.Catalog{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		ra, ok1 := parseCell(row, raCol)
		dec, ok2 := parseCell(row, decCol)
		z, ok3 := parseCell(row, zCol)
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		if z < zMin {
			continue
		}
		cat.RA = append(cat.RA, ra)
		cat.Dec = append(cat.Dec, dec)
		cat.Z = append(cat.Z, z)
	}
	return cat, nil
}

// discoverColumn maps a logical field to a header index via its alias list.
func discoverColumn(headers []string, kind string, aliases []string) (int, error) {
	for _, alias := range aliases {
		for i, h := range headers {
			if strings.EqualFold(strings.TrimSpace(h), alias) {
				return i, nil
			}
		}
	}
	return 0, core.NewSchemaError(kind, aliases)
}

func parseCell(row []string, col int) (float64, bool) {
	if col >= len(row) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
