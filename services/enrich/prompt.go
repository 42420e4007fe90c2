package enrich

import (
	"fmt"
	"strings"
)

// metadataPromptTemplate instructs the model to return a single JSON object
// with exactly the six keys the merge step recognizes. Changing this text
// changes prompt-cache keys, so keep it stable.
const metadataPromptTemplate = `Analyze this video content and provide enhanced metadata in JSON format.

Title: %s
Description: %s
Tags: %s

Generate a JSON response with:
1. "improvedDescription": A compelling 200-500 character description optimized for discovery
2. "suggestedTags": Array of 5-10 relevant tags
3. "predictedCategory": One of [EDUCATION, ENTERTAINMENT, TECHNOLOGY, MUSIC, SPORTS, NEWS, GAMING, LIFESTYLE, COOKING, TRAVEL]
4. "relevanceScore": A decimal between 0 and 1 indicating content quality
5. "contentRating": Predicted rating [G, PG, PG-13, R, NC-17] based on description
6. "sentiment": Sentiment of the content [POSITIVE, NEUTRAL, NEGATIVE, INSPIRING, EDUCATIONAL]

Return ONLY valid JSON, no additional text.
`

// BuildMetadataPrompt builds the enhancement instruction prompt. It is a pure
// function of its inputs and reproducible byte-for-byte for identical inputs.
func BuildMetadataPrompt(title string, description string, tags []string) string {
	return fmt.Sprintf(metadataPromptTemplate, title, description, strings.Join(tags, ", "))
}
