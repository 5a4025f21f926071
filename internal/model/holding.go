package model

// InstrumentType classifies a top-holdings row.
type InstrumentType string

const (
	InstrumentEquity      InstrumentType = "equity"
	InstrumentFixedIncome InstrumentType = "fixed_income"
)

// TopHoldingEntry is one row recovered from a top-holdings table.
type TopHoldingEntry struct {
	Name           string         `json:"name"`
	InstrumentType InstrumentType `json:"instrument_type"`
}

// FundMetadata identifies the fund a document belongs to, derived from the
// source filename unless overridden on the command line.
type FundMetadata struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
