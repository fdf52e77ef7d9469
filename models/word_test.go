package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Timing values must come back from a JSON round-trip exactly as written,
// trailing zeros included. That is the contract the store relies on.
func TestWordJSONRoundTripKeepsExactTimings(t *testing.T) {
	word := Word{
		Text:      "hello",
		StartTime: decimal.RequireFromString("1.230"),
		EndTime:   decimal.RequireFromString("1.745"),
		Speaker:   "Speaker 1",
	}

	data, err := json.Marshal(word)
	require.NoError(t, err)
	require.Contains(t, string(data), `"start_time":"1.230"`)
	require.Contains(t, string(data), `"end_time":"1.745"`)

	var decoded Word
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "1.230", decoded.StartTime.String())
	require.Equal(t, "1.745", decoded.EndTime.String())
	require.Equal(t, word.Text, decoded.Text)
	require.Equal(t, word.Speaker, decoded.Speaker)
}

func TestWordTranscriptOrderSurvivesJSON(t *testing.T) {
	transcript := []Word{
		{Text: "first", StartTime: decimal.RequireFromString("0.1"), EndTime: decimal.RequireFromString("0.5"), Speaker: "Speaker 1"},
		{Text: "second", StartTime: decimal.RequireFromString("0.5"), EndTime: decimal.RequireFromString("0.9"), Speaker: "Speaker 1"},
		{Text: "third", StartTime: decimal.RequireFromString("1.0"), EndTime: decimal.RequireFromString("1.2"), Speaker: "Speaker 2"},
	}

	data, err := json.Marshal(transcript)
	require.NoError(t, err)

	var decoded []Word
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, len(transcript))
	for i := range transcript {
		require.Equal(t, transcript[i].Text, decoded[i].Text)
	}
	for i := 1; i < len(decoded); i++ {
		require.False(t, decoded[i].StartTime.LessThan(decoded[i-1].StartTime))
	}
}
