package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransactionAmount(t *testing.T) {
	debit := 450.0
	credit := 1200.0

	tests := []struct {
		name     string
		txn      Transaction
		want     float64
		isDebit  bool
		isCredit bool
	}{
		{
			name:    "debit only",
			txn:     Transaction{Description: "swiggy", DebitAmount: &debit},
			want:    450.0,
			isDebit: true,
		},
		{
			name:     "credit only",
			txn:      Transaction{Description: "salary", CreditAmount: &credit},
			want:     1200.0,
			isCredit: true,
		},
		{
			name:     "debit takes precedence",
			txn:      Transaction{Description: "both", DebitAmount: &debit, CreditAmount: &credit},
			want:     450.0,
			isDebit:  true,
			isCredit: true,
		},
		{
			name: "no amounts",
			txn:  Transaction{Description: "pending"},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.txn.Amount())
			assert.Equal(t, tt.isDebit, tt.txn.IsDebit())
			assert.Equal(t, tt.isCredit, tt.txn.IsCredit())
		})
	}
}

func TestTransactionFingerprint(t *testing.T) {
	amount := 450.0
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	txn := Transaction{Description: "UPI-SWIGGY", DebitAmount: &amount, Date: date}
	same := Transaction{Description: "UPI-SWIGGY", DebitAmount: &amount, Date: date}
	otherDesc := Transaction{Description: "UPI-ZOMATO", DebitAmount: &amount, Date: date}
	otherDate := Transaction{Description: "UPI-SWIGGY", DebitAmount: &amount, Date: date.AddDate(0, 0, 1)}

	assert.Equal(t, txn.Fingerprint(), same.Fingerprint())
	assert.NotEqual(t, txn.Fingerprint(), otherDesc.Fingerprint())
	assert.NotEqual(t, txn.Fingerprint(), otherDate.Fingerprint())
	assert.Len(t, txn.Fingerprint(), 64)
}
