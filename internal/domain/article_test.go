package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagCodec_RoundTripPreservesOrder(t *testing.T) {
	encoded := EncodeTags([]string{"b", "a", "c"})
	decoded := DecodeTags(encoded)

	assert.Equal(t, []string{"b", "a", "c"}, decoded)
}

func TestDecodeTags_AbsentOrMalformed(t *testing.T) {
	assert.Empty(t, DecodeTags(""))
	assert.Empty(t, DecodeTags("not json"))
	assert.Empty(t, DecodeTags(`{"a":1}`))
	assert.Empty(t, DecodeTags("null"))
}

func TestEncodeTags_NilBecomesEmptyArray(t *testing.T) {
	assert.Equal(t, "[]", EncodeTags(nil))
}

func TestDraft_ValidateForCreate(t *testing.T) {
	title := "Setup Guide"
	content := "<p>hello</p>"
	category := "Getting Started"
	empty := ""

	valid := Draft{Title: &title, Content: &content, Category: &category}
	require.NoError(t, valid.ValidateForCreate())

	missing := Draft{Title: &title, Content: &content}
	assert.Error(t, missing.ValidateForCreate())

	blank := Draft{Title: &empty, Content: &content, Category: &category}
	assert.Error(t, blank.ValidateForCreate())
}

func TestDraft_Empty(t *testing.T) {
	assert.True(t, Draft{ID: "some-id"}.Empty())

	title := "x"
	assert.False(t, Draft{Title: &title}.Empty())

	tags := []string{}
	assert.False(t, Draft{Tags: &tags}.Empty())
}
