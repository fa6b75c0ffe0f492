package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", Arabic},
		{"ar", Arabic},
		{"ar-SA", Arabic},
		{"en", English},
		{"en-GB", English},
		{"not a tag!", Arabic},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestTranslator_T(t *testing.T) {
	en := NewTranslator("en")
	ar := NewTranslator("ar")

	assert.Equal(t, "Client Palm added.", en.T("notify.clientAdded", Vars{"name": "Palm"}))
	assert.Equal(t, "تمت إضافة العميل Palm.", ar.T("notify.clientAdded", Vars{"name": "Palm"}))
	assert.Equal(t, "missing.key", en.T("missing.key", nil))
	assert.Equal(t, "Client {{name}} added.", en.T("notify.clientAdded", Vars{"other": 1}))
	assert.Equal(t, "Payment of 0 recorded for invoice INV-1.", en.T("notify.paymentRecorded", Vars{"amount": 0, "invoiceId": "INV-1"}))
}

func TestCurrencyFormatter(t *testing.T) {
	usd := NewCurrencyFormatter("en", "usd")
	assert.Equal(t, 270.0, usd.Convert(1000))
	assert.Equal(t, "$270.00", usd.FormatCurrency(1000))
	assert.Equal(t, "USD", usd.Code())

	eur := NewCurrencyFormatter("en", "EUR")
	assert.Equal(t, 25.0, eur.Convert(100))
	assert.Contains(t, eur.FormatCurrency(100), "€")

	fallback := NewCurrencyFormatter("ar", "gbp")
	assert.Equal(t, "SAR", fallback.Code())
	assert.Equal(t, 100.0, fallback.Convert(100))
	assert.NotEmpty(t, fallback.FormatCurrency(100))
}
