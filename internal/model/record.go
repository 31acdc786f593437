package model

// RawRow is one label/value table row.
type RawRow struct {
	Label string
	Value string
}

// Record is one logical entity rebuilt from consecutive rows, keyed by normalized label.
//
// Normalization is not injective: labels such as "Amount ($)" and "Amount_" both
// become "amount_". Colliding labels share one key, so the second one reads as a
// re-encountered label and starts a new record. The source's labels are assumed
// to be distinct after normalization.
type Record map[string]string

// Field names recognized in transaction records.
const (
	FieldBalance       = "balance"
	FieldDate          = "date"
	FieldAmount        = "amount"
	FieldNote          = "note"
	FieldTransactionID = "transaction_id"
)

// Get returns the value for label, or "" if absent.
func (r Record) Get(label string) string {
	return r[label]
}

// Has reports whether label is present.
func (r Record) Has(label string) bool {
	_, ok := r[label]
	return ok
}
