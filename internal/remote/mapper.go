package remote

import (
	"fmt"
	"time"

	"github.com/scaledger/scaledger/internal/model"
)

// Wire timestamp layouts the hosted service is known to emit. Postgres drops
// the zone suffix on plain timestamp columns, so both forms are accepted.
var wireTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// ParseWireTime converts an ISO-8601 wire timestamp into milliseconds since
// epoch. Zoneless values are taken as UTC.
func ParseWireTime(s string) (int64, error) {
	for _, layout := range wireTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UnixMilli(), nil
		}
	}
	return 0, fmt.Errorf("unparseable wire timestamp %q", s)
}

// FormatWireTime renders an instant as the ISO-8601 form the service stores.
func FormatWireTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// MapAccountRow converts a wire account row into the local model. It fails
// only when the row is missing its identity fields or a required timestamp.
func MapAccountRow(row AccountRow) (model.Account, error) {
	if row.ID == "" {
		return model.Account{}, fmt.Errorf("account row missing id")
	}
	if row.UserID == "" {
		return model.Account{}, fmt.Errorf("account row %s missing user_id", row.ID)
	}

	createdAt, err := ParseWireTime(row.CreatedAt)
	if err != nil {
		return model.Account{}, fmt.Errorf("account row %s: %w", row.ID, err)
	}

	return model.Account{
		ID:             row.ID,
		UserID:         row.UserID,
		Name:           row.Name,
		Type:           row.Type,
		CurrentBalance: row.CurrentBalance,
		CreatedAt:      createdAt,
	}, nil
}

// MapTransactionRow converts a wire transaction row into the local model.
// Null optional columns become zero values; a null effective timestamp falls
// back to the row's creation time.
func MapTransactionRow(row TransactionRow) (model.Transaction, error) {
	if row.ID == 0 {
		return model.Transaction{}, fmt.Errorf("transaction row missing id")
	}
	if row.UserID == "" {
		return model.Transaction{}, fmt.Errorf("transaction row %d missing user_id", row.ID)
	}

	createdAt, err := ParseWireTime(row.CreatedAt)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction row %d: %w", row.ID, err)
	}

	timestamp := createdAt
	if row.Timestamp != nil {
		timestamp, err = ParseWireTime(*row.Timestamp)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("transaction row %d: %w", row.ID, err)
		}
	}

	txn := model.Transaction{
		ID:           row.ID,
		UserID:       row.UserID,
		AccountID:    row.AccountID,
		Type:         model.TransactionType(row.Type),
		Amount:       row.Amount,
		WeightChange: row.WeightChange,
		Timestamp:    timestamp,
		CreatedAt:    createdAt,
	}
	if row.Notes != nil {
		txn.Notes = *row.Notes
	}
	if row.Category != nil {
		txn.Category = *row.Category
	}
	if row.RelatedTransactionID != nil {
		txn.RelatedTransactionID = *row.RelatedTransactionID
	}

	return txn, nil
}
