package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Canonical lot field names. The two *_internal fields carry sale
// metadata embedded in the data itself; they feed the metadata resolver
// and are never persisted per row.
const (
	FieldBroker             = "broker"
	FieldMark               = "mark"
	FieldGrade              = "grade"
	FieldLotNumber          = "lot_number"
	FieldInvoiceNumber      = "invoice_number"
	FieldQuantityKgs        = "quantity_kgs"
	FieldPackageCount       = "package_count"
	FieldPrice              = "price"
	FieldValuationOrRP      = "valuation_or_rp"
	FieldBuyer              = "buyer"
	FieldSaleDateInternal   = "sale_date_internal"
	FieldSaleNumberInternal = "sale_number_internal"
)

// FieldAliases binds one canonical field to the source column names that
// may carry it across exporters and vintages.
type FieldAliases struct {
	Field   string   `yaml:"field"`
	Aliases []string `yaml:"aliases"`
}

// Mapping is the injectable vocabulary of the pipeline: alias tables,
// header-detection keywords, the shared noise-token set, and the numeric
// column classes. Treated as immutable once built.
type Mapping struct {
	LotFields      []FieldAliases `yaml:"lot_fields"`
	SummaryFields  []FieldAliases `yaml:"summary_fields"`
	HeaderKeywords []string       `yaml:"header_keywords"`
	NoiseTokens    []string       `yaml:"noise_tokens"`
	FloatFields    []string       `yaml:"float_fields"`
	IntegerFields  []string       `yaml:"integer_fields"`
	TextFields     []string       `yaml:"text_fields"`
}

// DefaultMapping returns the vocabulary observed across the known export
// families. Deployments can override it wholesale with a YAML file.
func DefaultMapping() Mapping {
	markAliases := []string{"Selling Mark", "Garden", "Mark", "Estate", "Factory", "Selling Mark - MF Mark"}

	return Mapping{
		LotFields: []FieldAliases{
			{Field: FieldBroker, Aliases: []string{"Broker"}},
			{Field: FieldMark, Aliases: markAliases},
			{Field: FieldGrade, Aliases: []string{"Grade"}},
			{Field: FieldLotNumber, Aliases: []string{"LotNo", "Lot No", "Lot", "Lot.No"}},
			{Field: FieldInvoiceNumber, Aliases: []string{"Invoice", "Inv.No", "Invoice No"}},
			{Field: FieldQuantityKgs, Aliases: []string{"Net Weight", "Kilos", "Kgs", "Quantity (Kg)", "Total Weight", "Net Kgs", "Weight"}},
			{Field: FieldPackageCount, Aliases: []string{"Bags", "Pkgs", "Packages", "Package", "Pks", "No of Pkgs", "Units", "Count"}},
			{Field: FieldPrice, Aliases: []string{"Purchased Price", "Final Price", "Price", "Price (USD)", "Price (USc)"}},
			{Field: FieldValuationOrRP, Aliases: []string{"Valuation", "Asking Price", "RP"}},
			{Field: FieldBuyer, Aliases: []string{"Buyer", "Buyer Name", "Final Buyer"}},
			{Field: FieldSaleDateInternal, Aliases: []string{"Selling End Time", "Sale Date"}},
			{Field: FieldSaleNumberInternal, Aliases: []string{"Sale Code", "Auction"}},
		},
		SummaryFields: []FieldAliases{
			{Field: FieldGrade, Aliases: []string{"Region/Grade"}},
			{Field: "lots", Aliases: []string{"Lots"}},
			{Field: FieldQuantityKgs, Aliases: []string{"Kilos", "Pkgs", "Kgs"}},
		},
		HeaderKeywords: []string{
			"LotNo", "Garden", "Grade", "Invoice", "Pkgs", "Kilos", "RP",
			"Valuation", "Price", "Buyer", "Mark", "Lot", "Broker", "Weight", "Bags",
		},
		NoiseTokens:   []string{"NAN", "NONE", "", "-", "NIL", "N/A", "NULL", "UNKNOWN"},
		FloatFields:   []string{FieldQuantityKgs, FieldPrice, FieldValuationOrRP},
		IntegerFields: []string{FieldPackageCount, "lots"},
		TextFields:    []string{FieldBroker, FieldMark, FieldGrade, FieldLotNumber, FieldInvoiceNumber, FieldBuyer},
	}
}

// LoadMapping reads a full Mapping from a YAML file. An empty path
// returns the defaults.
func LoadMapping(path string) (Mapping, error) {
	if path == "" {
		return DefaultMapping(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Mapping{}, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	var m Mapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Mapping{}, fmt.Errorf("failed to parse mapping file %s: %w", path, err)
	}

	return m, nil
}

// NoiseSet returns the noise tokens as a normalized lookup set.
func (m Mapping) NoiseSet() map[string]struct{} {
	set := make(map[string]struct{}, len(m.NoiseTokens))
	for _, tok := range m.NoiseTokens {
		set[strings.ToUpper(strings.TrimSpace(tok))] = struct{}{}
	}
	return set
}

// FieldNames returns the canonical field names of an alias table in
// declaration order.
func FieldNames(fields []FieldAliases) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	return names
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// IsFloatField reports whether a canonical field is cleaned as a decimal
// number.
func (m Mapping) IsFloatField(field string) bool {
	return contains(m.FloatFields, field)
}

// IsIntegerField reports whether a canonical field is cleaned with
// truncation semantics. Values are still stored as floats.
func (m Mapping) IsIntegerField(field string) bool {
	return contains(m.IntegerFields, field)
}
