// Package dictionary provides the lazy-loading, cached registry of named
// weighted reference datasets the generation engine draws from: names,
// regions, cities, streets, passport division codes, card BIN ranges and
// merchant category codes. Datasets are loaded through an explicit Loader so
// the engine stays agnostic to the backing store (embedded snapshot,
// filesystem directory, or custom providers in tests). Once cached, a dataset
// is immutable for the registry's lifetime.
package dictionary

// Well-known dataset names.
const (
	DatasetNames         = "names"
	DatasetRegions       = "regions"
	DatasetCities        = "cities"
	DatasetStreets       = "streets"
	DatasetDivisionCodes = "division_codes"
	DatasetCardBINs      = "card_bins"
	DatasetMCCCodes      = "mcc_codes"
)

// WeightedString is a plain string value paired with a selection weight.
type WeightedString struct {
	Value  string  `json:"value"`
	Weight float64 `json:"weight"`
}

// WeightValue implements random.Weighter.
func (w WeightedString) WeightValue() float64 { return w.Weight }

// Names holds the male/female given name and surname lists.
type Names struct {
	Male     []WeightedString `json:"male"`
	Female   []WeightedString `json:"female"`
	Surnames []WeightedString `json:"surnames"`
}

// Region is a federal subject with its 2-digit numeric code.
type Region struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Weight float64 `json:"weight"`
}

// WeightValue implements random.Weighter.
func (r Region) WeightValue() float64 { return r.Weight }

// City belongs to a region via the region code.
type City struct {
	Name   string  `json:"name"`
	Region string  `json:"region"`
	Type   string  `json:"type"`
	Weight float64 `json:"weight"`
}

// WeightValue implements random.Weighter.
func (c City) WeightValue() float64 { return c.Weight }

// Street is a weighted street name, drawn without region restriction.
type Street struct {
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Weight float64 `json:"weight"`
}

// WeightValue implements random.Weighter.
func (s Street) WeightValue() float64 { return s.Weight }

// DivisionCode is a passport issuing office, keyed to a region.
type DivisionCode struct {
	Code   string  `json:"code"`
	Region string  `json:"region"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// WeightValue implements random.Weighter.
func (d DivisionCode) WeightValue() float64 { return d.Weight }

// CardBIN is a payment card issuer prefix with its brand metadata.
type CardBIN struct {
	BIN     string  `json:"bin"`
	Brand   string  `json:"brand"`
	Issuer  string  `json:"issuer"`
	Product string  `json:"product"`
	Type    string  `json:"type"`
	Weight  float64 `json:"weight"`
}

// WeightValue implements random.Weighter.
func (b CardBIN) WeightValue() float64 { return b.Weight }

// MCC is a merchant category code with its average-ticket band in major
// currency units and typical merchant names.
type MCC struct {
	Code          string   `json:"code"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	AvgTicketMin  float64  `json:"avg_ticket_min"`
	AvgTicketMax  float64  `json:"avg_ticket_max"`
	MerchantNames []string `json:"merchant_names"`
	Weight        float64  `json:"weight"`
}

// WeightValue implements random.Weighter.
func (m MCC) WeightValue() float64 { return m.Weight }
