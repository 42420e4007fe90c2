package enrich

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/playlizt-io/playlizt-server/models"
)

// ErrEnhancementExhausted indicates every configured model failed for a
// single enrichment run. There is no retry state across runs; the next
// trigger starts a fresh attempt sequence.
var ErrEnhancementExhausted = errors.New("all models failed to enhance metadata")

// ModelGateway is a thin client over a generative text-completion endpoint.
// Implementations must not retry internally; retry and fallback ordering
// belong to the Enricher.
type ModelGateway interface {
	Complete(ctx context.Context, model string, prompt string) (string, error)
}

// ContentStore is the persistence collaborator of the Enricher.
type ContentStore interface {
	GetContent(ctx context.Context, id int64) (*models.Content, error)
	SaveEnrichment(ctx context.Context, c *models.Content) error
}

type Enricher struct {
	store  ContentStore
	gw     ModelGateway
	models []string
}

// NewEnricher returns nil when no gateway is configured, so callers can skip
// wiring enrichment altogether.
func NewEnricher(store ContentStore, gw ModelGateway, modelChain []string) *Enricher {
	if gw == nil || len(modelChain) == 0 {
		return nil
	}
	return &Enricher{
		store:  store,
		gw:     gw,
		models: modelChain,
	}
}

var contentRatings = map[string]struct{}{
	"G": {}, "PG": {}, "PG-13": {}, "R": {}, "NC-17": {},
}

var sentiments = map[string]struct{}{
	"POSITIVE": {}, "NEUTRAL": {}, "NEGATIVE": {}, "INSPIRING": {}, "EDUCATIONAL": {},
}

// Enrich runs one enrichment attempt for the given content id: build the
// prompt, walk the model chain until one call succeeds, parse the response
// and merge the recognized fields, then persist. Any failure leaves the
// stored record untouched and is terminal for this run only.
func (s *Enricher) Enrich(ctx context.Context, contentID int64) error {
	content, err := s.store.GetContent(ctx, contentID)
	if err != nil {
		return errors.Wrapf(err, "get content %v", contentID)
	}
	if content == nil {
		return errors.Errorf("content %v not found", contentID)
	}

	prompt := BuildMetadataPrompt(content.Title, content.Description, content.Tags)

	raw, model, err := s.complete(ctx, contentID, prompt)
	if err != nil {
		return err
	}

	metadata, err := ExtractMetadata(raw)
	if err != nil {
		return errors.Wrapf(err, "content %v model %v", contentID, model)
	}

	if err := mergeMetadata(content, metadata); err != nil {
		return errors.Wrapf(err, "content %v model %v", contentID, model)
	}

	if err := s.store.SaveEnrichment(ctx, content); err != nil {
		return errors.Wrapf(err, "save enriched content %v", contentID)
	}
	log.Infof("completed AI enhancement for content %v using model %v", contentID, model)
	return nil
}

// complete walks the configured model chain, primary first, one attempt per
// model, and returns the first successful raw text plus the model used.
func (s *Enricher) complete(ctx context.Context, contentID int64, prompt string) (string, string, error) {
	for _, model := range s.models {
		log.Debugf("attempting model %v for content %v", model, contentID)
		text, err := s.gw.Complete(ctx, model, prompt)
		if err != nil {
			log.WithError(err).Warnf("model %v call failed for content %v", model, contentID)
			continue
		}
		return text, model, nil
	}
	return "", "", errors.Wrapf(ErrEnhancementExhausted, "content %v", contentID)
}

// mergeMetadata folds the recognized keys of the parsed response onto the
// content record. Keys absent from the response leave prior values in place;
// unrecognized keys are ignored.
func mergeMetadata(content *models.Content, metadata map[string]any) error {
	if v, ok := metadata["improvedDescription"].(string); ok {
		content.AIGeneratedDescription = &v
	}
	if v, ok := metadata["predictedCategory"].(string); ok {
		content.AIPredictedCategory = &v
	}
	if v, ok := metadata["suggestedTags"].([]any); ok {
		var tags []string
		for _, tag := range v {
			if t, ok := tag.(string); ok {
				tags = append(tags, t)
			}
		}
		content.Tags = tags
	}
	if v, ok := metadata["relevanceScore"]; ok {
		score, err := parseRelevanceScore(v)
		if err != nil {
			return err
		}
		content.AIRelevanceScore = &score
	}
	if v, ok := metadata["contentRating"].(string); ok {
		rating := strings.ToUpper(strings.TrimSpace(v))
		if _, known := contentRatings[rating]; known {
			content.AIContentRating = &rating
		} else {
			log.Warnf("ignoring unknown content rating %q", v)
		}
	}
	if v, ok := metadata["sentiment"].(string); ok {
		sentiment := strings.ToUpper(strings.TrimSpace(v))
		if _, known := sentiments[sentiment]; known {
			content.AISentiment = &sentiment
		} else {
			log.Warnf("ignoring unknown sentiment %q", v)
		}
	}
	return nil
}

// parseRelevanceScore accepts the score as either a JSON number or a numeric
// string and normalizes it to two decimal places within [0, 1].
func parseRelevanceScore(v any) (float64, error) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		var err error
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, errors.Wrapf(err, "parse relevance score %q", t)
		}
	default:
		return 0, errors.Errorf("unexpected relevance score type %T", v)
	}
	f = math.Min(math.Max(f, 0), 1)
	return math.Round(f*100) / 100, nil
}
