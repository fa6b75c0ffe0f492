package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/garyjia/vip-ledger/internal/domain/entity"
)

// StatementFor filters the client's transactions and derives the totals.
// OrderDateDesc sorts newest first; OrderInsertion keeps the stored order.
// Totals are summed over every matching row; stored balances are not read.
func StatementFor(transactions []entity.VipTransaction, clientID string, order entity.StatementOrder) entity.Statement {
	rows := make([]entity.VipTransaction, 0)
	for _, tx := range transactions {
		if tx.ClientID == clientID {
			rows = append(rows, tx)
		}
	}

	debits := make([]float64, len(rows))
	credits := make([]float64, len(rows))
	for i, tx := range rows {
		debits[i] = tx.Debit
		credits[i] = tx.Credit
	}
	totalDebit := sum(debits)
	totalCredit := sum(credits)
	net := totalCredit.Sub(totalDebit)

	mismatch := false
	if len(rows) > 0 {
		last := decimal.NewFromFloat(rows[len(rows)-1].Balance)
		mismatch = !last.Equal(net)
	}

	if order == entity.OrderDateDesc {
		sort.SliceStable(rows, func(i, j int) bool {
			return parseDate(rows[i].Date).After(parseDate(rows[j].Date))
		})
	} else {
		order = entity.OrderInsertion
	}

	return entity.Statement{
		ClientID:        clientID,
		Order:           order,
		Transactions:    rows,
		TotalDebit:      totalDebit.InexactFloat64(),
		TotalCredit:     totalCredit.InexactFloat64(),
		NetBalance:      net.InexactFloat64(),
		BalanceMismatch: mismatch,
	}
}

// ValidateLedgerEntry requires a client, a description and exactly one side of the entry
func ValidateLedgerEntry(e entity.LedgerEntry) error {
	errs := entity.ValidationErrors{}
	if e.ClientID == "" {
		errs.Add("clientId", entity.MsgFieldRequired)
	}
	if e.Description == "" && e.DescriptionAr == "" && e.DescriptionEn == "" {
		errs.Add("description", entity.MsgFieldRequired)
	}
	if e.Debit < 0 || e.Credit < 0 || (e.Debit == 0) == (e.Credit == 0) {
		errs.Add("amount", entity.MsgInvalidValue)
	}
	return errs.OrNil()
}

// AppendTransaction adds an entry whose stored balance continues the client's derived net balance
func AppendTransaction(transactions []entity.VipTransaction, e entity.LedgerEntry, id string) ([]entity.VipTransaction, entity.VipTransaction) {
	prev := StatementFor(transactions, e.ClientID, entity.OrderInsertion)
	balance := decimal.NewFromFloat(prev.NetBalance).
		Add(decimal.NewFromFloat(e.Credit)).
		Sub(decimal.NewFromFloat(e.Debit))

	description := e.Description
	if description == "" {
		description = e.DescriptionEn
	}
	if description == "" {
		description = e.DescriptionAr
	}

	tx := entity.VipTransaction{
		ID:            id,
		ClientID:      e.ClientID,
		Date:          e.Date,
		Description:   description,
		DescriptionAr: e.DescriptionAr,
		DescriptionEn: e.DescriptionEn,
		Debit:         e.Debit,
		Credit:        e.Credit,
		Balance:       balance.InexactFloat64(),
	}

	out := make([]entity.VipTransaction, len(transactions), len(transactions)+1)
	copy(out, transactions)
	return append(out, tx), tx
}
