package errors

import (
	"strings"
	"testing"
)

func TestValidateGraphName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default", "dumped_graph", false},
		{"single letter", "G", false},
		{"leading underscore", "_deps", false},
		{"digits after first", "graph2", false},

		{"empty", "", true},
		{"too long", strings.Repeat("g", 300), true},
		{"leading digit", "2graph", true},
		{"space", "my graph", true},
		{"brace", "g{", true},
		{"quote", `g"x`, true},
		{"dash", "my-graph", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGraphName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGraphName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidGraphName) {
				t.Errorf("ValidateGraphName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}
