// Package model defines the core domain types shared across the suggestion engine.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction represents a single financial transaction awaiting categorization.
// Every field besides Description is optional; consumers must tolerate the
// zero value for each of them.
type Transaction struct {
	Date            time.Time
	Description     string
	ReferenceNumber string
	DebitAmount     *float64
	CreditAmount    *float64
}

// Amount returns the effective transaction amount: the debit amount if
// present, otherwise the credit amount, otherwise 0.
func (t *Transaction) Amount() float64 {
	if t.DebitAmount != nil {
		return *t.DebitAmount
	}
	if t.CreditAmount != nil {
		return *t.CreditAmount
	}
	return 0
}

// IsDebit reports whether the debit side of the transaction is populated.
func (t *Transaction) IsDebit() bool {
	return t.DebitAmount != nil
}

// IsCredit reports whether the credit side of the transaction is populated.
func (t *Transaction) IsCredit() bool {
	return t.CreditAmount != nil
}

// Fingerprint creates a stable hash for correlating feedback to a transaction.
func (t *Transaction) Fingerprint() string {
	data := fmt.Sprintf("%s:%.2f:%s",
		t.Description,
		t.Amount(),
		t.Date.Format("2006-01-02"))
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
