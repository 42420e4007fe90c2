package enrich

import (
	"errors"
	"testing"
)

func TestExtractMetadata(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]any
	}{
		{
			name: "plain object",
			raw:  `{"predictedCategory": "MUSIC"}`,
			want: map[string]any{"predictedCategory": "MUSIC"},
		},
		{
			name: "json fence",
			raw:  "```json\n{\"predictedCategory\": \"MUSIC\"}\n```",
			want: map[string]any{"predictedCategory": "MUSIC"},
		},
		{
			name: "bare fence",
			raw:  "```\n{\"relevanceScore\": 0.5}\n```",
			want: map[string]any{"relevanceScore": 0.5},
		},
		{
			name: "surrounding whitespace",
			raw:  "\n\n  {\"sentiment\": \"POSITIVE\"}  \n",
			want: map[string]any{"sentiment": "POSITIVE"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractMetadata(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v keys, want %v", len(got), len(tt.want))
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("key %v: got %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestExtractMetadataRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"prose", "Here is your metadata: it looks great"},
		{"prose around object", `The result is {"a": 1} as requested`},
		{"two objects", `{"a": 1} {"b": 2}`},
		{"truncated", `{"improvedDescription": "cut off`},
		{"array", `[1, 2, 3]`},
		{"null", `null`},
		{"fenced null", "```json\nnull\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractMetadata(tt.raw)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrMetadataParse) {
				t.Errorf("expected ErrMetadataParse, got %v", err)
			}
		})
	}
}
