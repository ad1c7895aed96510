package lspserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTrackerOpenAssignsID(t *testing.T) {
	st := NewSessionTracker()

	id := st.Open("file:///a.scad")
	assert.NotEmpty(t, id)

	got, ok := st.ID("file:///a.scad")
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestSessionTrackerReopenReplacesID(t *testing.T) {
	st := NewSessionTracker()

	first := st.Open("file:///a.scad")
	second := st.Open("file:///a.scad")

	assert.NotEqual(t, first, second)
}

func TestSessionTrackerCloseRemovesID(t *testing.T) {
	st := NewSessionTracker()

	st.Open("file:///a.scad")
	st.Close("file:///a.scad")

	_, ok := st.ID("file:///a.scad")
	assert.False(t, ok)
}

func TestSessionTrackerIDUnknownURI(t *testing.T) {
	st := NewSessionTracker()

	_, ok := st.ID("file:///missing.scad")
	assert.False(t, ok)
}
