package ledger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/garyjia/vip-ledger/internal/domain/entity"
)

func TestValidateShippingAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
	}{
		{"empty", "", entity.MsgAddressRequired},
		{"blank", "    ", entity.MsgAddressRequired},
		{"short", "short", entity.MsgAddressMinLength},
		{"short after trim", "   abc   ", entity.MsgAddressMinLength},
		{"ten digits", "1234567890", ""},
		{"latin with punctuation", "Bldg #12, King Fahd Rd. - Jeddah", ""},
		{"arabic", "حي الروضة، شارع الأمير سلطان", entity.MsgAddressInvalidChars},
		{"arabic with plain comma", "حي الروضة, شارع الأمير سلطان 12", ""},
		{"at sign", "office@jeddah street 5", entity.MsgAddressInvalidChars},
		{"exclamation", "Jeddah street 5 !!", entity.MsgAddressInvalidChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateShippingAddress(tt.address))
		})
	}
}

func TestValidateClient(t *testing.T) {
	err := ValidateClient(entity.VipClient{Phone: "966500000009", CompanyName: "Sea Breeze", ShippingAddress: "short"})

	var verr entity.ValidationErrors
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{entity.MsgAddressMinLength}, verr["shippingAddress"])

	assert.NoError(t, ValidateClient(entity.VipClient{Phone: "966500000009", CompanyName: "Sea Breeze", ShippingAddress: "Corniche Road 14, Jeddah"}))
}

func TestAddClient_IDIsPhone(t *testing.T) {
	_, added := AddClient(nil, entity.VipClient{ID: "typed-id", Phone: "966511111111", CompanyName: "Zamzam"}, language.English)

	assert.Equal(t, "966511111111", added.ID)
	assert.Equal(t, added.Phone, added.ID)
}

func TestAddClient_SortsByCompanyName(t *testing.T) {
	clients := []entity.VipClient{
		{ID: "1", Phone: "1", CompanyName: "Marriott"},
		{ID: "2", Phone: "2", CompanyName: "zamzam"},
	}

	out, _ := AddClient(clients, entity.VipClient{Phone: "3", CompanyName: "Address Hotel"}, language.English)

	names := make([]string, 0, len(out))
	for _, c := range out {
		names = append(names, c.CompanyName)
	}
	assert.Equal(t, []string{"Address Hotel", "Marriott", "zamzam"}, names)
	assert.Len(t, clients, 2)
}

func TestUpdateClient_NoResort(t *testing.T) {
	clients := []entity.VipClient{
		{ID: "1", Phone: "1", CompanyName: "Alpha"},
		{ID: "2", Phone: "2", CompanyName: "Beta"},
	}

	out := UpdateClient(clients, entity.VipClient{ID: "1", Phone: "1", CompanyName: "Zulu"})

	assert.Equal(t, "Zulu", out[0].CompanyName)
	assert.Equal(t, "Beta", out[1].CompanyName)
	assert.Equal(t, "Alpha", clients[0].CompanyName)

	assert.Equal(t, clients, UpdateClient(clients, entity.VipClient{ID: "missing"}))
}

func TestDeleteClient(t *testing.T) {
	clients := []entity.VipClient{{ID: "1"}, {ID: "2"}}

	out := DeleteClient(clients, "1")

	require.Len(t, out, 1)
	assert.Equal(t, "2", out[0].ID)
	assert.Len(t, DeleteClient(clients, "missing"), 2)
}

func TestSearchClients(t *testing.T) {
	clients := []entity.VipClient{
		{ID: "966500000001", Phone: "966500000001", CompanyName: "Palm Resort"},
		{ID: "966500000002", Phone: "966500000002", CompanyName: "Sea Breeze"},
	}

	assert.Len(t, SearchClients(clients, ""), 2)
	assert.Len(t, SearchClients(clients, "PALM"), 1)
	assert.Len(t, SearchClients(clients, "0002"), 1)
	assert.Empty(t, SearchClients(clients, strings.Repeat("x", 3)))
}
