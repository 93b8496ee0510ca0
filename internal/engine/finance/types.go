// Package finance generates payment cards, card transactions and purchase
// receipts linked to a previously generated identity. Amounts are carried
// in minor currency units.
package finance

import (
	"time"

	"github.com/syntorio/synthid/internal/engine"
	"github.com/syntorio/synthid/internal/engine/identity"
)

// TransactionType classifies the money direction of a transaction.
type TransactionType string

// Supported transaction types.
const (
	TransactionDebit  TransactionType = "debit"
	TransactionCredit TransactionType = "credit"
)

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

// Supported transaction statuses.
const (
	StatusPending TransactionStatus = "pending"
	StatusPosted  TransactionStatus = "posted"
)

// ReceiptType distinguishes purchases from refunds.
type ReceiptType string

// Supported receipt types.
const (
	ReceiptPurchase ReceiptType = "purchase"
	ReceiptRefund   ReceiptType = "refund"
)

// Params controls a single finance generation call. PersonID and Person are
// required; their absence is a parameter-validation error.
type Params struct {
	PersonID string            `json:"person_id"`
	Person   *identity.Payload `json:"person"`
	// Currency is an ISO 4217 code; empty selects RUB.
	Currency string `json:"currency,omitempty"`
	// CardsRange is the inclusive card count interval; nil selects [1, 2].
	CardsRange *engine.Range `json:"cards_range,omitempty"`
	// TransactionsRange is the inclusive transaction count interval; nil
	// selects [8, 16].
	TransactionsRange *engine.Range `json:"transactions_range,omitempty"`
}

// Card is a synthesized payment card.
type Card struct {
	ID       string `json:"id"`
	PersonID string `json:"person_id"`
	Brand    string `json:"brand"`
	Type     string `json:"type"`
	Issuer   string `json:"issuer"`
	// PAN is the full 16-digit number ending in a Luhn check digit.
	PAN string `json:"pan"`
	// PANMasked keeps the first 6 and last 4 digits visible.
	PANMasked string    `json:"pan_masked"`
	Last4     string    `json:"last4"`
	ExpMonth  string    `json:"exp_month"`
	ExpYear   string    `json:"exp_year"`
	CVV       string    `json:"cvv"`
	IssuedAt  time.Time `json:"issued_at"`
}

// Transaction is a single card operation.
type Transaction struct {
	ID       string            `json:"id"`
	PersonID string            `json:"person_id"`
	CardID   string            `json:"card_id"`
	Type     TransactionType   `json:"type"`
	Status   TransactionStatus `json:"status"`
	// Amount is in minor currency units.
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	MCC         string    `json:"mcc"`
	Merchant    string    `json:"merchant"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// LineItem is one receipt position. Price is in minor currency units.
type LineItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// Receipt itemizes a debit transaction or mirrors one as a refund.
type Receipt struct {
	ID            string      `json:"id"`
	TransactionID string      `json:"transaction_id"`
	Type          ReceiptType `json:"type"`
	Items         []LineItem  `json:"items"`
	// Total and VAT are in minor currency units; refunds carry the exact
	// negation of the mirrored receipt's total.
	Total    int64     `json:"total"`
	VAT      int64     `json:"vat"`
	IssuedAt time.Time `json:"issued_at"`
}

// Payload is the complete result of one finance generation call.
type Payload struct {
	Cards        []Card        `json:"cards"`
	Transactions []Transaction `json:"transactions"`
	Receipts     []Receipt     `json:"receipts"`
}
