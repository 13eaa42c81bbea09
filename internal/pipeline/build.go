package pipeline

import (
	"fmt"

	"github.com/dvloznov/spent-tracker/internal/transaction"
)

// Build converts canonical rows into full transaction records: fresh IDs,
// empty tag and component lists, dash-form dates.
func Build(rows []Row) ([]*transaction.Transaction, error) {
	transactions := make([]*transaction.Transaction, 0, len(rows))
	for _, row := range rows {
		id, err := transaction.NewID()
		if err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}
		transactions = append(transactions, &transaction.Transaction{
			ID:           id,
			Description:  row.Description,
			OriginalLine: row.OriginalLine,
			Date:         transaction.SlashDateToDash(row.Date),
			Tags:         []string{},
			AmountCents:  row.AmountCents,
			Transactions: []*transaction.Transaction{},
			Source:       row.Source,
		})
	}
	return transactions, nil
}
