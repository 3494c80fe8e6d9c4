package guardrails

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmergencyFlag(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"I have severe chest pain and sweating", true},
		{"My father had a Heart Attack last year, what now?", true},
		{"child swallowed pills, possible overdose", true},
		{"what are common flu symptoms", false},
		{"mild headache after reading", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EmergencyFlag(tt.query), "query %q", tt.query)
	}
}

func TestInstructionPromptMentionsSources(t *testing.T) {
	p := InstructionPrompt()
	assert.Contains(t, p, "MedlinePlus")
	assert.Contains(t, p, "cite sources")
}
