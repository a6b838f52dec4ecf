// Test Type: Unit Test
// Description: Tests for the document package - schema-less document accessors and key embedding

package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7H3LaughingMan/foundryvtt-cli/pkg/document"
)

func TestAccessors(t *testing.T) {
	tests := []struct {
		name         string
		doc          document.Document
		expectedID   string
		expectedName string
	}{
		{
			name:         "both_fields_present",
			doc:          document.Document{"_id": "abc123", "name": "Fireball"},
			expectedID:   "abc123",
			expectedName: "Fireball",
		},
		{
			name:         "fields_absent",
			doc:          document.Document{"power": 9},
			expectedID:   "",
			expectedName: "",
		},
		{
			name:         "fields_wrong_type",
			doc:          document.Document{"_id": 42, "name": []string{"x"}},
			expectedID:   "",
			expectedName: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedID, tt.doc.ID())
			assert.Equal(t, tt.expectedName, tt.doc.Name())
		})
	}
}

func TestWithKey_DoesNotModifyReceiver(t *testing.T) {
	doc := document.Document{"_id": "abc123"}
	withKey := doc.WithKey("abc123")

	assert.Equal(t, "abc123", withKey[document.KeyField])
	_, present := doc[document.KeyField]
	assert.False(t, present, "receiver must not gain the key field")
}

func TestTakeKey(t *testing.T) {
	doc := document.Document{"_id": "abc123", "name": "Fireball", "_key": "abc123"}

	key, stripped, ok := doc.TakeKey()
	require.True(t, ok)
	assert.Equal(t, "abc123", key)

	_, present := stripped[document.KeyField]
	assert.False(t, present, "key field must be stripped")
	assert.Equal(t, "Fireball", stripped.Name())

	// Original document is untouched
	assert.Equal(t, "abc123", doc[document.KeyField])
}

func TestTakeKey_MissingOrInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  document.Document
	}{
		{name: "absent", doc: document.Document{"_id": "abc123"}},
		{name: "not_a_string", doc: document.Document{"_key": 7}},
		{name: "empty_string", doc: document.Document{"_key": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := tt.doc.TakeKey()
			assert.False(t, ok)
		})
	}
}
