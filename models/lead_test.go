package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadTableName(t *testing.T) {
	assert.Equal(t, "leads", Lead{}.TableName(), "Table name should be 'leads'")
}

func TestIsValidLeadStatus(t *testing.T) {
	tests := []struct {
		name   string
		status string
		valid  bool
	}{
		{"new is valid", LeadStatusNew, true},
		{"contacted is valid", LeadStatusContacted, true},
		{"converted is valid", LeadStatusConverted, true},
		{"lost is valid", LeadStatusLost, true},
		{"empty is invalid", "", false},
		{"bogus is invalid", "bogus", false},
		{"sold is not in the canonical set", "sold", false},
		{"qualified is not in the canonical set", "qualified", false},
		{"case matters", "New", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidLeadStatus(tt.status))
		})
	}
}

func TestLeadStatuses(t *testing.T) {
	statuses := LeadStatuses()
	assert.Equal(t, []string{"new", "contacted", "converted", "lost"}, statuses)
	for _, s := range statuses {
		assert.True(t, IsValidLeadStatus(s), "every listed status should validate")
	}
}
