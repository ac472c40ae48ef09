package models

// MessageRow is one input message of a batch CSV file.
type MessageRow struct {
	ID   string `csv:"ID"`
	Text string `csv:"Text"`
}

// ResultRow is one output line of a batch run. The yaml form is what the
// parse command prints.
type ResultRow struct {
	ID             string `csv:"ID" yaml:"id,omitempty"`
	Text           string `csv:"Text" yaml:"text"`
	Direction      string `csv:"Direction" yaml:"direction"`
	Amount         string `csv:"Amount" yaml:"amount,omitempty"`
	Counterparty   string `csv:"Counterparty" yaml:"counterparty,omitempty"`
	Date           string `csv:"Date" yaml:"date,omitempty"`
	Template       string `csv:"Template" yaml:"template,omitempty"`
	Category       string `csv:"Category" yaml:"category,omitempty"`
	CategorySource string `csv:"CategorySource" yaml:"category_source"`
	ManualTagging  bool   `csv:"ManualTagging" yaml:"manual_tagging"`
	Error          string `csv:"Error" yaml:"error,omitempty"`
}
