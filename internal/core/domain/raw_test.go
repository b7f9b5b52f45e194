package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangeType_String(t *testing.T) {
	tests := []struct {
		change   ChangeType
		expected string
	}{
		{ChangeCreated, "created"},
		{ChangeUpdated, "updated"},
		{ChangeDeleted, "deleted"},
		{ChangeType(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.change.String())
		})
	}
}

func TestRawDocumentChange_Deleted(t *testing.T) {
	change := RawDocumentChange{
		Type:     ChangeDeleted,
		Document: RawDocument{SourceID: "src", URI: "/gone.txt"},
	}

	assert.Equal(t, ChangeDeleted, change.Type)
	assert.Empty(t, change.Document.Content)
}
