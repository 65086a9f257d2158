package bank

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-tabulator/internal/models"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, []string{"icici", "sbi"}, r.Banks())

	sbi := r.Get("sbi")
	require.NotNil(t, sbi)
	assert.Equal(t, "State Bank of India", sbi.Name)
	assert.True(t, sbi.FillMissingAmounts)
	assert.True(t, sbi.RequireDate)
	assert.False(t, sbi.ZeroAsNull)

	icici := r.Get("ICICI") // key lookup is case-insensitive
	require.NotNil(t, icici)
	assert.True(t, icici.ZeroAsNull)
	assert.False(t, icici.RequireDate)

	assert.Nil(t, r.Get("hdfc"))
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(SBI())
	assert.Panics(t, func() { r.Register(SBI()) })
}

func TestConfigKeywordMap(t *testing.T) {
	km := SBI().KeywordMap()
	assert.Contains(t, km[models.ColDate], "txn date")
	assert.Contains(t, km[models.ColDescription], "particulars")
	assert.Contains(t, km[models.ColDebit], "withdrawal")
	assert.Contains(t, km[models.ColCredit], "deposit")
	assert.Contains(t, km[models.ColBalance], "closing balance")
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hdfc.yaml")

	original := &Config{
		Bank: "hdfc",
		Name: "HDFC Bank",
		Keywords: Keywords{
			Date:        []string{"date"},
			Description: []string{"narration"},
			Debit:       []string{"withdrawal amt"},
			Credit:      []string{"deposit amt"},
			Balance:     []string{"closing balance"},
		},
		Header:      Header{ExtraColumns: 3, Fuzzy: true},
		ZeroAsNull:  true,
		RequireDate: true,
	}

	require.NoError(t, Save(path, original))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoadRejectsMissingBankKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, Save(path, &Config{Name: "No Key"}))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	opts := ICICI().Options(nil)
	assert.True(t, opts.Policy.ZeroAsNull)
	assert.False(t, opts.Policy.RequireDate)
	assert.False(t, opts.Schema.Empty())
	assert.NotEmpty(t, opts.Keywords[models.ColDescription])
}
