package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"fuel-route-service/internal/domain"
)

// Columns the price feed must carry. Extra columns are ignored.
var requiredColumns = []string{
	"opis_truckstop_id",
	"truckstop_name",
	"address",
	"city",
	"state",
	"rack_id",
	"retail_price",
}

// Canadian truck stops appear in the feed but cannot be geocoded with a
// US-biased query, so they are dropped at load time.
var canadianProvinces = map[string]struct{}{
	"AB": {}, "BC": {}, "MB": {}, "NB": {}, "NL": {}, "NS": {}, "NT": {},
	"NU": {}, "ON": {}, "PE": {}, "QC": {}, "SK": {}, "YT": {},
}

// LoadCSV reads an OPIS-style price feed and returns one station per
// distinct (name, address, city, state), keeping the lowest price seen
// for each. The result is sorted so repeated loads of the same feed
// produce the same catalog.
func LoadCSV(path string) ([]domain.Station, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load csv: %w", err)
	}
	defer f.Close()

	stations, err := readStations(f)
	if err != nil {
		return nil, fmt.Errorf("load csv %q: %w", path, err)
	}

	return stations, nil
}

func readStations(r io.Reader) ([]domain.Station, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	type stationKey struct {
		Name, Address, City, State string
	}
	best := make(map[stationKey]domain.Station)

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		field := func(name string) string {
			return strings.TrimSpace(record[index[name]])
		}

		state := strings.ToUpper(field("state"))
		if _, ok := canadianProvinces[state]; ok {
			continue
		}

		name := field("truckstop_name")
		if name == "" {
			return nil, fmt.Errorf("line %d: empty truckstop_name", line)
		}

		opisID, err := strconv.Atoi(field("opis_truckstop_id"))
		if err != nil {
			return nil, fmt.Errorf("line %d: opis_truckstop_id: %w", line, err)
		}
		rackID, err := strconv.Atoi(field("rack_id"))
		if err != nil {
			return nil, fmt.Errorf("line %d: rack_id: %w", line, err)
		}
		price, err := strconv.ParseFloat(field("retail_price"), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: retail_price: %w", line, err)
		}
		if price <= 0 {
			return nil, fmt.Errorf("line %d: retail_price %v must be positive", line, price)
		}

		st := domain.Station{
			OPISID:      opisID,
			Name:        name,
			Address:     field("address"),
			City:        field("city"),
			State:       state,
			RackID:      rackID,
			RetailPrice: price,
		}

		key := stationKey{Name: st.Name, Address: st.Address, City: st.City, State: st.State}
		if prev, ok := best[key]; !ok || st.RetailPrice < prev.RetailPrice {
			best[key] = st
		}
	}

	stations := make([]domain.Station, 0, len(best))
	for _, st := range best {
		stations = append(stations, st)
	}

	slices.SortFunc(stations, func(a, b domain.Station) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		if c := strings.Compare(a.Address, b.Address); c != 0 {
			return c
		}
		if c := strings.Compare(a.City, b.City); c != 0 {
			return c
		}
		return strings.Compare(a.State, b.State)
	})

	return stations, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, col := range header {
		normalized := strings.ToLower(strings.TrimSpace(col))
		normalized = strings.ReplaceAll(normalized, " ", "_")
		index[normalized] = i
	}

	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	return index, nil
}
