package finance

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/syntorio/synthid/internal/engine"
	"github.com/syntorio/synthid/internal/engine/checksum"
	"github.com/syntorio/synthid/internal/engine/dictionary"
	"github.com/syntorio/synthid/internal/engine/identity"
	"github.com/syntorio/synthid/internal/engine/random"
	"github.com/syntorio/synthid/internal/errors"
)

// ModuleName identifies the module in logs and metrics.
const ModuleName = "finance"

const (
	panLength  = 16
	vatRate    = 0.2
	maskFiller = "******"
)

var requiredDictionaries = []string{
	dictionary.DatasetCardBINs,
	dictionary.DatasetMCCCodes,
}

var (
	defaultCardsRange        = engine.Range{Min: 1, Max: 2}
	defaultTransactionsRange = engine.Range{Min: 8, Max: 16}
)

// itemCatalog maps merchant categories to plausible receipt item names.
var itemCatalog = map[string][]string{
	"groceries":   {"Хлеб", "Молоко", "Сыр", "Овощи"},
	"restaurants": {"Комбо-ланч", "Кофе", "Десерт"},
	"electronics": {"Наушники", "Кабель USB-C", "Пауэрбанк"},
	"transport":   {"Проездной", "Билет"},
	"retail":      {"Товар", "Подарок", "Аксессуар"},
	"finance":     {"Услуга банка", "Комиссия"},
}

var fallbackItems = []string{"Товар"}

// Module generates finance payloads tied to an identity.
type Module struct{}

// New returns a finance Module.
func New() *Module {
	return &Module{}
}

func (m *Module) Name() string {
	return ModuleName
}

// Seed warms the dictionary datasets the module draws from.
func (m *Module) Seed(registry *dictionary.Registry) error {
	return registry.Preload(requiredDictionaries...)
}

// Generate produces one finance payload for the person given in params.
func (m *Module) Generate(params Params, ctx *engine.Context) (*engine.Result[Payload], error) {
	if params.PersonID == "" || params.Person == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "finance generation requires person_id and person payload")
	}

	currency := params.Currency
	if currency == "" {
		currency = "RUB"
	}

	bins, err := ctx.Dictionaries.CardBINs()
	if err != nil {
		return nil, err
	}
	mccs, err := ctx.Dictionaries.MCCCodes()
	if err != nil {
		return nil, err
	}

	cardsRange := defaultCardsRange
	if params.CardsRange != nil {
		cardsRange = *params.CardsRange
	}
	if err := cardsRange.Validate(); err != nil {
		return nil, err
	}
	cardCount, err := cardsRange.Draw(ctx.Random)
	if err != nil {
		return nil, err
	}

	cards := make([]Card, 0, cardCount)
	for i := 0; i < cardCount; i++ {
		card, err := drawCard(params.PersonID, bins, ctx)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	txRange := defaultTransactionsRange
	if params.TransactionsRange != nil {
		txRange = *params.TransactionsRange
	}
	if err := txRange.Validate(); err != nil {
		return nil, err
	}
	txCount, err := txRange.Draw(ctx.Random)
	if err != nil {
		return nil, err
	}

	var (
		transactions []Transaction
		receipts     []Receipt
	)
	for i := 0; i < txCount; i++ {
		card, err := random.Pick(ctx.Random, cards)
		if err != nil {
			return nil, err
		}
		mcc, err := random.Weighted(ctx.Random, mccs)
		if err != nil {
			return nil, errors.Wrap(err, "draw merchant category")
		}

		txType := TransactionCredit
		if ctx.Random.Next() < 0.75 {
			txType = TransactionDebit
		}
		amount, err := drawAmount(mcc, txType, ctx.Random)
		if err != nil {
			return nil, err
		}
		occurredAt, err := drawPastTimestamp(ctx.Now(), 90, ctx.Random)
		if err != nil {
			return nil, err
		}
		status := StatusPosted
		if ctx.Random.Next() < 0.1 {
			status = StatusPending
		}
		merchant, err := pickMerchant(mcc, ctx.Random)
		if err != nil {
			return nil, err
		}

		tx := Transaction{
			ID:          ctx.Random.UUID(),
			PersonID:    params.PersonID,
			CardID:      card.ID,
			Type:        txType,
			Status:      status,
			Amount:      amount,
			Currency:    currency,
			MCC:         mcc.Code,
			Merchant:    merchant,
			Description: describeTransaction(mcc, params.Person),
			OccurredAt:  occurredAt,
		}
		transactions = append(transactions, tx)

		if txType != TransactionDebit {
			continue
		}

		receipt, err := drawReceipt(tx, mcc.Category, ctx.Random)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)

		if ctx.Random.Next() < 0.1 {
			refundTx, err := drawRefundTransaction(tx, ctx.Random)
			if err != nil {
				return nil, err
			}
			transactions = append(transactions, refundTx)

			refundReceipt, err := drawRefundReceipt(refundTx, mcc.Category, receipt.Total, ctx.Random)
			if err != nil {
				return nil, err
			}
			receipts = append(receipts, refundReceipt)
		}
	}

	payload := Payload{
		Cards:        cards,
		Transactions: transactions,
		Receipts:     receipts,
	}

	return &engine.Result[Payload]{
		Payload: payload,
		Meta: engine.Meta{
			Tags: []string{ModuleName},
			Stats: map[string]int{
				"cards":        len(cards),
				"transactions": len(transactions),
			},
		},
	}, nil
}

func drawCard(personID string, bins []dictionary.CardBIN, ctx *engine.Context) (Card, error) {
	bin, err := random.Weighted(ctx.Random, bins)
	if err != nil {
		return Card{}, errors.Wrap(err, "draw card bin")
	}

	pan, err := drawPAN(bin.BIN, ctx.Random)
	if err != nil {
		return Card{}, err
	}

	expiryOffset, err := ctx.Random.IntN(24, 61)
	if err != nil {
		return Card{}, err
	}
	expiry := ctx.Now().AddDate(0, expiryOffset, 0)

	issuedOffset, err := ctx.Random.IntN(1, 24)
	if err != nil {
		return Card{}, err
	}
	issuedAt := ctx.Now().AddDate(0, -issuedOffset, 0)

	cvv, err := ctx.Random.IntN(100, 1000)
	if err != nil {
		return Card{}, err
	}

	return Card{
		ID:        ctx.Random.UUID(),
		PersonID:  personID,
		Brand:     bin.Brand,
		Type:      bin.Type,
		Issuer:    bin.Issuer,
		PAN:       pan,
		PANMasked: maskPAN(pan),
		Last4:     pan[len(pan)-4:],
		ExpMonth:  fmt.Sprintf("%02d", int(expiry.Month())),
		ExpYear:   fmt.Sprintf("%02d", expiry.Year()%100),
		CVV:       fmt.Sprintf("%03d", cvv),
		IssuedAt:  issuedAt,
	}, nil
}

// drawPAN fills the digits between the BIN and the Luhn check digit.
func drawPAN(bin string, src *random.Source) (string, error) {
	var partial strings.Builder
	partial.WriteString(bin)
	for partial.Len() < panLength-1 {
		digit, err := src.IntN(0, 10)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&partial, "%d", digit)
	}
	check, err := checksum.LuhnCheckDigit(partial.String())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", partial.String(), check), nil
}

func maskPAN(pan string) string {
	return pan[:6] + maskFiller + pan[len(pan)-4:]
}

// drawAmount picks a value inside the category's average-ticket band,
// doubled for credits, rounded to the nearest 10 major units and returned
// in minor units.
func drawAmount(mcc dictionary.MCC, txType TransactionType, src *random.Source) (int64, error) {
	min, max := mcc.AvgTicketMin, mcc.AvgTicketMax
	if txType == TransactionCredit {
		min *= 2
		max *= 2
	}
	amount, err := src.FloatN(min, max)
	if err != nil {
		return 0, errors.Wrap(err, "draw amount")
	}
	return int64(math.Round(amount/10)) * 10 * 100, nil
}

func pickMerchant(mcc dictionary.MCC, src *random.Source) (string, error) {
	if len(mcc.MerchantNames) == 0 {
		return mcc.Description, nil
	}
	return random.Pick(src, mcc.MerchantNames)
}

func describeTransaction(mcc dictionary.MCC, person *identity.Payload) string {
	return fmt.Sprintf("%s для %s %s", mcc.Description, person.Personal.FirstName, person.Personal.LastName)
}

func drawReceipt(tx Transaction, category string, src *random.Source) (Receipt, error) {
	items, err := drawLineItems(tx.Amount, category, src)
	if err != nil {
		return Receipt{}, err
	}

	var total int64
	for _, item := range items {
		total += item.Price * int64(item.Quantity)
	}

	return Receipt{
		ID:            src.UUID(),
		TransactionID: tx.ID,
		Type:          ReceiptPurchase,
		Items:         items,
		Total:         total,
		VAT:           int64(math.Round(float64(total) * vatRate)),
		IssuedAt:      tx.OccurredAt,
	}, nil
}

// drawRefundReceipt mirrors a purchase receipt: its total is the exact
// negation of the original total and VAT is recomputed from that.
func drawRefundReceipt(tx Transaction, category string, originalTotal int64, src *random.Source) (Receipt, error) {
	items, err := drawLineItems(tx.Amount, category, src)
	if err != nil {
		return Receipt{}, err
	}

	total := -originalTotal
	return Receipt{
		ID:            src.UUID(),
		TransactionID: tx.ID,
		Type:          ReceiptRefund,
		Items:         items,
		Total:         total,
		VAT:           int64(math.Round(float64(total) * vatRate)),
		IssuedAt:      tx.OccurredAt,
	}, nil
}

func drawLineItems(amount int64, category string, src *random.Source) ([]LineItem, error) {
	itemCount, err := src.IntN(1, 4)
	if err != nil {
		return nil, err
	}
	items := make([]LineItem, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		quantity, err := src.IntN(1, 4)
		if err != nil {
			return nil, err
		}
		name, err := pickItemName(category, src)
		if err != nil {
			return nil, err
		}
		price := int64(math.Round(float64(amount) / float64(itemCount) / float64(quantity)))
		items = append(items, LineItem{Name: name, Quantity: quantity, Price: price})
	}
	return items, nil
}

func pickItemName(category string, src *random.Source) (string, error) {
	pool, ok := itemCatalog[category]
	if !ok {
		pool = fallbackItems
	}
	return random.Pick(src, pool)
}

// drawRefundTransaction issues a posted credit on the same card within the
// five days following the refunded operation.
func drawRefundTransaction(tx Transaction, src *random.Source) (Transaction, error) {
	occurredAt, err := drawFutureTimestamp(tx.OccurredAt, 5, src)
	if err != nil {
		return Transaction{}, err
	}

	refund := tx
	refund.ID = src.UUID()
	refund.Type = TransactionCredit
	refund.Status = StatusPosted
	refund.Merchant = tx.Merchant + " (refund)"
	refund.Description = fmt.Sprintf("Возврат по операции %s", tx.ID)
	refund.OccurredAt = occurredAt
	return refund, nil
}

func drawPastTimestamp(now time.Time, maxDays int, src *random.Source) (time.Time, error) {
	days, err := src.IntN(1, maxDays+1)
	if err != nil {
		return time.Time{}, err
	}
	return withRandomClock(now.AddDate(0, 0, -days), src)
}

func drawFutureTimestamp(base time.Time, maxDays int, src *random.Source) (time.Time, error) {
	days, err := src.IntN(1, maxDays+1)
	if err != nil {
		return time.Time{}, err
	}
	return withRandomClock(base.AddDate(0, 0, days), src)
}

func withRandomClock(day time.Time, src *random.Source) (time.Time, error) {
	hour, err := src.IntN(0, 24)
	if err != nil {
		return time.Time{}, err
	}
	minute, err := src.IntN(0, 60)
	if err != nil {
		return time.Time{}, err
	}
	second, err := src.IntN(0, 60)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, second, 0, time.UTC), nil
}

// Validate checks internal consistency of a generated payload.
func (m *Module) Validate(payload *Payload) engine.ValidationResult {
	var issues []engine.Issue
	add := func(path, code, format string, args ...any) {
		issues = append(issues, engine.Issue{Path: path, Code: code, Message: fmt.Sprintf(format, args...)})
	}

	cardIDs := make(map[string]struct{}, len(payload.Cards))
	for i, card := range payload.Cards {
		cardIDs[card.ID] = struct{}{}
		if len(card.PAN) != panLength || !checksum.LuhnValid(card.PAN) {
			add(fmt.Sprintf("cards[%d].pan", i), "checksum", "pan %q fails the luhn check", card.PAN)
		}
		if card.PANMasked != maskPAN(card.PAN) {
			add(fmt.Sprintf("cards[%d].pan_masked", i), "format", "mask %q does not match pan", card.PANMasked)
		}
	}

	txIDs := make(map[string]struct{}, len(payload.Transactions))
	for i, tx := range payload.Transactions {
		txIDs[tx.ID] = struct{}{}
		if _, ok := cardIDs[tx.CardID]; !ok {
			add(fmt.Sprintf("transactions[%d].card_id", i), "reference", "card %q is not in the payload", tx.CardID)
		}
		if tx.Amount <= 0 {
			add(fmt.Sprintf("transactions[%d].amount", i), "range", "amount %d is not positive", tx.Amount)
		}
		if tx.Currency == "" {
			add(fmt.Sprintf("transactions[%d].currency", i), "required", "currency is empty")
		}
	}

	for i, receipt := range payload.Receipts {
		if _, ok := txIDs[receipt.TransactionID]; !ok {
			add(fmt.Sprintf("receipts[%d].transaction_id", i), "reference", "transaction %q is not in the payload", receipt.TransactionID)
		}
		if len(receipt.Items) == 0 {
			add(fmt.Sprintf("receipts[%d].items", i), "required", "receipt has no line items")
		}
		if receipt.Type == ReceiptRefund && receipt.Total >= 0 {
			add(fmt.Sprintf("receipts[%d].total", i), "range", "refund total %d is not negative", receipt.Total)
		}
	}

	return engine.ValidationResult{Valid: len(issues) == 0, Issues: issues}
}
