package feature

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ledgermind/ledgermind/internal/config"
	"github.com/ledgermind/ledgermind/internal/model"
)

func defaultExtractor() *Extractor {
	return NewExtractor(config.Default().ML.FeatureExtraction)
}

func TestExtractLexicalFeatures(t *testing.T) {
	bag := defaultExtractor().Extract(model.Transaction{Description: "SWIGGY Order 123!"})

	assert.Equal(t, 17, bag.DescriptionLength)
	assert.Equal(t, 3, bag.WordCount)
	assert.True(t, bag.HasNumbers)
	assert.True(t, bag.HasSpecialChars)
	// 7 uppercase letters out of 11
	assert.InDelta(t, 7.0/11.0, bag.UppercaseRatio, 0.001)
}

func TestExtractAmountFeatures(t *testing.T) {
	debit := 450.0
	round := 500.0

	tests := []struct {
		name        string
		txn         model.Transaction
		amount      float64
		isRound     bool
		isDebit     bool
		hasLog      bool
		amountRound float64
	}{
		{
			name:        "debit amount",
			txn:         model.Transaction{Description: "swiggy", DebitAmount: &debit},
			amount:      450.0,
			isDebit:     true,
			hasLog:      true,
			amountRound: 450.0,
		},
		{
			name:        "round amount",
			txn:         model.Transaction{Description: "rent", DebitAmount: &round},
			amount:      500.0,
			isRound:     true,
			isDebit:     true,
			hasLog:      true,
			amountRound: 500.0,
		},
		{
			name: "no amount",
			txn:  model.Transaction{Description: "pending"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := defaultExtractor().Extract(tt.txn)
			assert.Equal(t, tt.amount, bag.Amount)
			assert.Equal(t, tt.isRound, bag.IsRoundAmount)
			assert.Equal(t, tt.isDebit, bag.IsDebit)
			assert.Equal(t, tt.amountRound, bag.AmountRounded)
			if tt.hasLog {
				assert.Greater(t, bag.AmountLog, 0.0)
			} else {
				assert.Zero(t, bag.AmountLog)
			}
		})
	}
}

func TestExtractTemporalFeatures(t *testing.T) {
	tests := []struct {
		date         time.Time
		name         string
		dayOfWeek    int
		hour         int
		quarter      int
		isWeekend    bool
		isMonthStart bool
		isMonthEnd   bool
	}{
		{
			name:      "friday date-only defaults to noon",
			date:      time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			dayOfWeek: 4,
			hour:      12,
			quarter:   1,
		},
		{
			name:      "saturday is weekend",
			date:      time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
			dayOfWeek: 5,
			hour:      12,
			quarter:   1,
			isWeekend: true,
		},
		{
			name:      "explicit time is kept",
			date:      time.Date(2024, 8, 15, 18, 30, 0, 0, time.UTC),
			dayOfWeek: 3,
			hour:      18,
			quarter:   3,
		},
		{
			name:         "month start",
			date:         time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
			dayOfWeek:    6,
			hour:         12,
			quarter:      2,
			isWeekend:    true,
			isMonthStart: true,
		},
		{
			name:       "month end",
			date:       time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC),
			dayOfWeek:  4,
			hour:       12,
			quarter:    2,
			isMonthEnd: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := defaultExtractor().Extract(model.Transaction{Description: "some shop", Date: tt.date})
			assert.Equal(t, tt.dayOfWeek, bag.DayOfWeek)
			assert.Equal(t, tt.hour, bag.Hour)
			assert.Equal(t, tt.quarter, bag.Quarter)
			assert.Equal(t, tt.isWeekend, bag.IsWeekend)
			assert.Equal(t, tt.isMonthStart, bag.IsMonthStart)
			assert.Equal(t, tt.isMonthEnd, bag.IsMonthEnd)
		})
	}
}

func TestExtractMerchantFlags(t *testing.T) {
	tests := []struct {
		name        string
		description string
		check       func(*testing.T, Bag)
	}{
		{
			name:        "food",
			description: "SWIGGY ORDER",
			check:       func(t *testing.T, b Bag) { assert.True(t, b.IsFood) },
		},
		{
			name:        "transport",
			description: "UBER TRIP BLR",
			check:       func(t *testing.T, b Bag) { assert.True(t, b.IsTransport) },
		},
		{
			name:        "shopping",
			description: "AMAZON PAY",
			check:       func(t *testing.T, b Bag) { assert.True(t, b.IsShopping) },
		},
		{
			name:        "entertainment",
			description: "NETFLIX SUBSCRIPTION",
			check:       func(t *testing.T, b Bag) { assert.True(t, b.IsEntertainment) },
		},
		{
			name:        "no flags",
			description: "SALARY AUGUST",
			check: func(t *testing.T, b Bag) {
				assert.False(t, b.IsFood)
				assert.False(t, b.IsTransport)
				assert.False(t, b.IsShopping)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, defaultExtractor().Extract(model.Transaction{Description: tt.description}))
		})
	}
}

func TestExtractReferenceFeatures(t *testing.T) {
	bag := defaultExtractor().Extract(model.Transaction{Description: "shop", ReferenceNumber: "TXN12345"})
	assert.True(t, bag.HasReference)
	assert.Equal(t, 8, bag.ReferenceLength)

	bag = defaultExtractor().Extract(model.Transaction{Description: "shop"})
	assert.False(t, bag.HasReference)
	assert.Zero(t, bag.ReferenceLength)
}

func TestTextPatterns(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        []string
	}{
		{
			name:        "upi merchant with handle and phone",
			description: "UPI-SWIGGY-DELIVERY-9876543210@PAYTM",
			want:        []string{"swiggy", "9876543210@paytm", "9876543210"},
		},
		{
			name:        "stop words filtered",
			description: "NEFT FROM ACME CORP LTD",
			want:        []string{"acme", "corp"},
		},
		{
			name:        "merchant text before rail keyword",
			description: "ACME STORES UPI PAYMENT",
			want:        []string{"acme", "stores"},
		},
		{
			name:        "pay to merchant",
			description: "PAY TO RAMESH",
			want:        []string{"ramesh", "pay"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, defaultExtractor().TextPatterns(tt.description))
		})
	}
}

func TestTextPatternsShortDescription(t *testing.T) {
	assert.Nil(t, defaultExtractor().TextPatterns("abc"))
}

func TestTextPatternsLengthWindow(t *testing.T) {
	extractor := NewExtractor(config.FeatureExtraction{
		MinPatternLength:     5,
		MaxPatternLength:     50,
		MinDescriptionLength: 5,
	})
	// Both tokens are 4 characters, below the minimum
	assert.Empty(t, extractor.TextPatterns("NEFT FROM ACME CORP LTD"))
}

func TestTextPatternsCapped(t *testing.T) {
	patterns := defaultExtractor().TextPatterns("alpha bravo charlie deltas echoes foxtrot golfers")
	assert.Len(t, patterns, 5)
}

func TestExtractIsDeterministic(t *testing.T) {
	debit := 450.0
	txn := model.Transaction{
		Description: "UPI-SWIGGY-DELIVERY-9876543210@PAYTM",
		DebitAmount: &debit,
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	first := defaultExtractor().Extract(txn)
	second := defaultExtractor().Extract(txn)
	assert.Equal(t, first, second)
}
