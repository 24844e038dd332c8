package lsp

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestFormatEdits(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantEnd protocol.Position
	}{
		{
			name:    "single line",
			input:   `colors{primary="#2563EB"}`,
			want:    `colors { primary = "#2563eb" }`,
			wantEnd: protocol.Position{Line: 0, Character: 25},
		},
		{
			name:    "multiple lines",
			input:   "colors {\nprimary = \"#FFF\"\n}\n",
			want:    "colors {\n  primary = \"#fff\"\n}\n",
			wantEnd: protocol.Position{Line: 3, Character: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edits, err := formatEdits(tt.input)
			if err != nil {
				t.Fatalf("formatEdits() error: %v", err)
			}
			if len(edits) != 1 {
				t.Fatalf("expected 1 edit, got %d", len(edits))
			}
			if edits[0].NewText != tt.want {
				t.Errorf("NewText = %q, want %q", edits[0].NewText, tt.want)
			}
			if edits[0].Range.Start != (protocol.Position{}) {
				t.Errorf("edit should start at 0:0, got %v", edits[0].Range.Start)
			}
			if edits[0].Range.End != tt.wantEnd {
				t.Errorf("edit end = %v, want %v", edits[0].Range.End, tt.wantEnd)
			}
		})
	}
}

func TestFormatEdits_AlreadyFormatted(t *testing.T) {
	edits, err := formatEdits("colors {\n  primary = \"#2563eb\"\n}\n")
	if err != nil {
		t.Fatalf("formatEdits() error: %v", err)
	}
	if edits == nil || len(edits) != 0 {
		t.Errorf("expected empty edit list, got %v", edits)
	}
}
