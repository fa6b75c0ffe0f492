package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/vip-ledger/internal/domain/entity"
)

func clientXTransactions() []entity.VipTransaction {
	return []entity.VipTransaction{
		{ID: "T1", ClientID: "X", Date: "2024-03-01", Description: "Invoice INV-1", Debit: 100, Balance: -100},
		{ID: "T2", ClientID: "Y", Date: "2024-03-02", Description: "Invoice INV-2", Debit: 999, Balance: -999},
		{ID: "T3", ClientID: "X", Date: "2024-03-05", Description: "Payment", Credit: 50, Balance: -50},
		{ID: "T4", ClientID: "X", Date: "2024-03-03", Description: "Invoice INV-3", Debit: 30, Balance: -80},
	}
}

func TestStatementFor_Totals(t *testing.T) {
	st := StatementFor(clientXTransactions(), "X", entity.OrderInsertion)

	assert.Equal(t, 130.0, st.TotalDebit)
	assert.Equal(t, 50.0, st.TotalCredit)
	assert.Equal(t, -80.0, st.NetBalance)
	assert.Equal(t, st.TotalDebit-st.TotalCredit, -st.NetBalance)
	assert.False(t, st.BalanceMismatch)
}

func TestStatementFor_Orderings(t *testing.T) {
	insertion := StatementFor(clientXTransactions(), "X", entity.OrderInsertion)
	desc := StatementFor(clientXTransactions(), "X", entity.OrderDateDesc)

	ids := func(rows []entity.VipTransaction) []string {
		out := make([]string, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.ID)
		}
		return out
	}

	assert.Equal(t, []string{"T1", "T3", "T4"}, ids(insertion.Transactions))
	assert.Equal(t, []string{"T3", "T4", "T1"}, ids(desc.Transactions))
	assert.Equal(t, insertion.NetBalance, desc.NetBalance)
	assert.Equal(t, entity.OrderDateDesc, desc.Order)
}

func TestStatementFor_DateDescKeepsRowBalances(t *testing.T) {
	desc := StatementFor(clientXTransactions(), "X", entity.OrderDateDesc)

	balances := make(map[string]float64, len(desc.Transactions))
	for _, r := range desc.Transactions {
		balances[r.ID] = r.Balance
	}
	assert.Equal(t, map[string]float64{"T1": -100, "T3": -50, "T4": -80}, balances)
	assert.Equal(t, -50.0, desc.Transactions[0].Balance)
}

func TestStatementFor_Empty(t *testing.T) {
	st := StatementFor(clientXTransactions(), "nobody", entity.OrderDateDesc)

	assert.True(t, st.Empty())
	assert.NotNil(t, st.Transactions)
	assert.Zero(t, st.TotalDebit)
	assert.Zero(t, st.TotalCredit)
	assert.Zero(t, st.NetBalance)
	assert.False(t, st.BalanceMismatch)
}

func TestStatementFor_Idempotent(t *testing.T) {
	txs := clientXTransactions()

	first := StatementFor(txs, "X", entity.OrderDateDesc)
	second := StatementFor(txs, "X", entity.OrderDateDesc)

	assert.Equal(t, first, second)
	assert.Equal(t, "T1", txs[0].ID, "sorting must not reorder the source list")
}

func TestStatementFor_StoredBalanceIsNotAuthoritative(t *testing.T) {
	txs := []entity.VipTransaction{
		{ID: "T1", ClientID: "X", Debit: 100, Balance: 0},
		{ID: "T2", ClientID: "X", Credit: 40, Balance: 999},
	}

	st := StatementFor(txs, "X", entity.OrderInsertion)

	assert.Equal(t, -60.0, st.NetBalance)
	assert.True(t, st.BalanceMismatch)
}

func TestStatementFor_DecimalSums(t *testing.T) {
	txs := []entity.VipTransaction{
		{ClientID: "X", Debit: 0.1},
		{ClientID: "X", Debit: 0.2},
	}

	st := StatementFor(txs, "X", entity.OrderInsertion)

	assert.Equal(t, 0.3, st.TotalDebit)
}

func TestAppendTransaction(t *testing.T) {
	txs := clientXTransactions()

	out, tx := AppendTransaction(txs, entity.LedgerEntry{
		ClientID:      "X",
		Date:          "2024-03-09",
		DescriptionEn: "Bank transfer",
		DescriptionAr: "تحويل بنكي",
		Credit:        80,
	}, "T5")

	require.Len(t, out, 5)
	assert.Len(t, txs, 4)
	assert.Equal(t, 0.0, tx.Balance)
	assert.Equal(t, "Bank transfer", tx.Description)
	assert.Equal(t, tx, out[4])

	st := StatementFor(out, "X", entity.OrderInsertion)
	assert.False(t, st.BalanceMismatch)
}

func TestValidateLedgerEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   entity.LedgerEntry
		wantErr bool
	}{
		{"debit only", entity.LedgerEntry{ClientID: "X", Description: "d", Debit: 5}, false},
		{"credit only", entity.LedgerEntry{ClientID: "X", DescriptionAr: "د", Credit: 5}, false},
		{"both sides", entity.LedgerEntry{ClientID: "X", Description: "d", Debit: 5, Credit: 5}, true},
		{"neither side", entity.LedgerEntry{ClientID: "X", Description: "d"}, true},
		{"negative", entity.LedgerEntry{ClientID: "X", Description: "d", Debit: -5}, true},
		{"no client", entity.LedgerEntry{Description: "d", Debit: 5}, true},
		{"no description", entity.LedgerEntry{ClientID: "X", Debit: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLedgerEntry(tt.entry)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
