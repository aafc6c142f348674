package ingest

import (
	"strings"
	"testing"
)

const feedHeader = "OPIS Truckstop ID,Truckstop Name,Address,City,State,Rack ID,Retail Price\n"

func TestReadStationsDeduplicatesKeepingLowestPrice(t *testing.T) {
	feed := feedHeader +
		"100,BIG RIG STOP,I-40 EXIT 10,AMARILLO,TX,7,3.159\n" +
		"100,BIG RIG STOP,I-40 EXIT 10,AMARILLO,TX,7,2.999\n" +
		"100,BIG RIG STOP,I-40 EXIT 10,AMARILLO,TX,7,3.049\n" +
		"200,CANYON FUEL,US-60,CANYON,TX,7,3.209\n"

	stations, err := readStations(strings.NewReader(feed))
	if err != nil {
		t.Fatalf("readStations: %v", err)
	}

	if len(stations) != 2 {
		t.Fatalf("got %d stations, want 2", len(stations))
	}
	if stations[0].Name != "BIG RIG STOP" || stations[0].RetailPrice != 2.999 {
		t.Fatalf("stations[0] = %+v, want BIG RIG STOP at 2.999", stations[0])
	}
	if stations[1].Name != "CANYON FUEL" {
		t.Fatalf("stations[1] = %+v, want CANYON FUEL", stations[1])
	}
}

func TestReadStationsSkipsCanadianProvinces(t *testing.T) {
	feed := feedHeader +
		"300,PRAIRIE STOP,HWY 1,REGINA,SK,9,1.899\n" +
		"301,BORDER FUEL,I-29,FARGO,ND,9,3.099\n"

	stations, err := readStations(strings.NewReader(feed))
	if err != nil {
		t.Fatalf("readStations: %v", err)
	}

	if len(stations) != 1 || stations[0].State != "ND" {
		t.Fatalf("got %+v, want only the ND station", stations)
	}
}

func TestReadStationsSortedDeterministically(t *testing.T) {
	feed := feedHeader +
		"2,ZETA FUEL,MAIN ST,TULSA,OK,3,3.10\n" +
		"1,ALPHA FUEL,MAIN ST,TULSA,OK,3,3.20\n"

	stations, err := readStations(strings.NewReader(feed))
	if err != nil {
		t.Fatalf("readStations: %v", err)
	}

	if len(stations) != 2 || stations[0].Name != "ALPHA FUEL" || stations[1].Name != "ZETA FUEL" {
		t.Fatalf("got %+v, want alphabetical order by name", stations)
	}
}

func TestReadStationsMissingColumn(t *testing.T) {
	feed := "OPIS Truckstop ID,Truckstop Name,Address,City,State\n" +
		"1,ALPHA FUEL,MAIN ST,TULSA,OK\n"

	if _, err := readStations(strings.NewReader(feed)); err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestReadStationsRejectsBadPrice(t *testing.T) {
	cases := []string{
		"1,ALPHA FUEL,MAIN ST,TULSA,OK,3,free\n",
		"1,ALPHA FUEL,MAIN ST,TULSA,OK,3,-1.50\n",
	}

	for _, row := range cases {
		if _, err := readStations(strings.NewReader(feedHeader + row)); err == nil {
			t.Fatalf("expected error for row %q", strings.TrimSpace(row))
		}
	}
}
