package models

import (
	"github.com/shopspring/decimal"
)

// Word is a single transcribed token with timing and speaker attribution.
// StartTime and EndTime are seconds. They are fixed-point decimals so the
// values survive storage round-trips without floating-point drift; JSON
// encodes them as exact decimal strings. Slice order is the temporal order
// of speech and must be preserved end-to-end.
type Word struct {
	Text      string          `json:"text"`
	StartTime decimal.Decimal `json:"start_time"`
	EndTime   decimal.Decimal `json:"end_time"`
	Speaker   string          `json:"speaker"`
}
