// Command stations prints the cataloged tide stations nearest a point,
// as JSON. Useful for checking catalog coverage.
package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/coastwatch/tidecast/internal/station"
)

func main() {
	lat := flag.Float64("lat", 42.2406, "latitude")
	lon := flag.Float64("lon", -8.7245, "longitude")
	limit := flag.Int("limit", 5, "number of stations")
	flag.Parse()

	stations, err := station.Catalog()
	if err != nil {
		log.Fatal().Err(err).Msg("Loading station catalog failed")
	}

	resolver := station.NewResolver(stations, 0)
	nearest := resolver.Nearest(*lat, *lon, *limit)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(nearest); err != nil {
		log.Fatal().Err(err).Msg("Encoding stations failed")
	}
}
