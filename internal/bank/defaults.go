package bank

// SBI returns the configuration for State Bank of India statements.
// SBI reference output zero-fills amounts that are not applicable and only
// keeps rows with a parseable date.
func SBI() *Config {
	return &Config{
		Bank: "sbi",
		Name: "State Bank of India",
		Keywords: Keywords{
			Date:        []string{"date", "txn date", "transaction date"},
			Description: []string{"description", "particulars", "particular"},
			Debit:       []string{"debit", "withdrawal", "amount (dr)", "amt.dr", "amountdr"},
			Credit:      []string{"credit", "deposit", "amount (cr)", "amt.cr", "amountcr"},
			Balance:     []string{"balance", "closing balance", "cl bal", "closingbal", "available balance"},
		},
		FillMissingAmounts: true,
		RequireDate:        true,
	}
}

// ICICI returns the configuration for ICICI Bank statements.
// ICICI reference output leaves not-applicable amounts blank, so exact
// zeros in Debit/Credit map to null, and rows keep a null date rather than
// being dropped.
func ICICI() *Config {
	return &Config{
		Bank: "icici",
		Name: "ICICI Bank",
		Keywords: Keywords{
			Date:        []string{"date"},
			Description: []string{"description", "narration"},
			Debit:       []string{"debit", "withdrawal"},
			Credit:      []string{"credit", "deposit"},
			Balance:     []string{"balance", "closing balance"},
		},
		ZeroAsNull: true,
	}
}
