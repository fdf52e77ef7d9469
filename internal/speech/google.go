package speech

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	speechapi "google.golang.org/api/speech/v1p1beta1"

	"transcriptly/api-gateway/models"
)

// Recognizer turns raw audio into a time-ordered word sequence.
type Recognizer interface {
	Recognize(ctx context.Context, audio []byte) ([]models.Word, error)
}

// GoogleRecognizer calls the Cloud Speech-to-Text API with speaker
// diarization enabled. Credentials come from the ambient Google application
// default credentials.
type GoogleRecognizer struct {
	service     *speechapi.Service
	minSpeakers int64
	maxSpeakers int64
}

func NewGoogleRecognizer(ctx context.Context) (*GoogleRecognizer, error) {
	service, err := speechapi.NewService(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize speech service: %w", err)
	}
	return &GoogleRecognizer{service: service, minSpeakers: 2, maxSpeakers: 10}, nil
}

func (g *GoogleRecognizer) Recognize(ctx context.Context, audio []byte) ([]models.Word, error) {
	req := &speechapi.RecognizeRequest{
		Config: &speechapi.RecognitionConfig{
			Encoding:     "LINEAR16",
			LanguageCode: "en-US",
			DiarizationConfig: &speechapi.SpeakerDiarizationConfig{
				EnableSpeakerDiarization: true,
				MinSpeakerCount:          g.minSpeakers,
				MaxSpeakerCount:          g.maxSpeakers,
			},
		},
		Audio: &speechapi.RecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(audio),
		},
	}

	resp, err := g.service.Speech.Recognize(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("speech recognize: %w", err)
	}
	return flattenResults(resp.Results)
}

// flattenResults collapses the per-result, per-alternative output into one
// word sequence, keeping only the first (highest confidence) alternative of
// each result. No recognized speech yields an empty slice, not an error.
func flattenResults(results []*speechapi.SpeechRecognitionResult) ([]models.Word, error) {
	words := []models.Word{}
	for _, result := range results {
		if len(result.Alternatives) == 0 {
			continue
		}
		for _, info := range result.Alternatives[0].Words {
			start, err := parseOffset(info.StartTime)
			if err != nil {
				return nil, err
			}
			end, err := parseOffset(info.EndTime)
			if err != nil {
				return nil, err
			}
			words = append(words, models.Word{
				Text:      info.Word,
				StartTime: start,
				EndTime:   end,
				Speaker:   fmt.Sprintf("Speaker %d", info.SpeakerTag),
			})
		}
	}
	return words, nil
}

// parseOffset converts the API's duration string ("3.500s") into seconds as
// an exact decimal, with no float in between.
func parseOffset(offset string) (decimal.Decimal, error) {
	if offset == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(offset, "s"))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse time offset %q: %w", offset, err)
	}
	return d, nil
}
