package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trade is the persisted record of an executed swap. Amounts are stored as
// decimal strings to keep the storage encoding independent from the integer
// width of the engine.
type Trade struct {
	Id         string
	MarketId   string
	Sender     string
	Recipient  string
	BaseDelta  string
	QuoteDelta string
	// FeeAmountIn is the fee in input-asset terms, FeeAmountQuote the same
	// fee denominated in the quote asset.
	FeeAmountIn    string
	FeeAmountQuote string
	// Price is the market price the trade settled at, quote per base unit.
	Price        string
	SqrtPriceX96 string
	Timestamp    int64
}

// NewTrade builds the persisted record for a trade event.
func NewTrade(event *TradeEvent, settledPrice decimal.Decimal) *Trade {
	return &Trade{
		Id:             uuid.New().String(),
		MarketId:       event.MarketId,
		Sender:         event.Sender,
		Recipient:      event.Recipient,
		BaseDelta:      event.BaseDelta.String(),
		QuoteDelta:     event.QuoteDelta.String(),
		FeeAmountIn:    event.FeeAmountIn.String(),
		FeeAmountQuote: event.FeeAmountQuote.String(),
		Price:          settledPrice.String(),
		SqrtPriceX96:   event.SqrtPriceX96.String(),
		Timestamp:      time.Now().Unix(),
	}
}
