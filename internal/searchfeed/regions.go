package searchfeed

// Region maps a market code to the search parameters and currency of that
// market.
type Region struct {
	Country  string // gl parameter
	Language string // hl parameter
	Currency string
	Location string
}

// DefaultRegion is used when a product carries an unknown region code.
const DefaultRegion = "eu"

var regions = map[string]Region{
	"eu": {
		Country:  "de", // Germany as main EU market
		Language: "en",
		Currency: "EUR",
		Location: "Germany",
	},
	"worldwide": {
		Country:  "us", // US for worldwide (largest market)
		Language: "en",
		Currency: "USD",
		Location: "United States",
	},
	"hu": {
		Country:  "hu",
		Language: "hu",
		Currency: "HUF",
		Location: "Hungary",
	},
}

// LookupRegion returns the Region for code, falling back to DefaultRegion.
func LookupRegion(code string) Region {
	if region, ok := regions[code]; ok {
		return region
	}
	return regions[DefaultRegion]
}
