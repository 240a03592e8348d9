package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testColumns = []Column{
	{ID: "model", Label: "Model"},
	{ID: "F1", Label: "F1"},
	{ID: "TPR", Label: "TPR", DefaultHidden: true},
}

func TestDefaults(t *testing.T) {
	v := New(testColumns)
	assert.True(t, v.IsVisible("model"))
	assert.True(t, v.IsVisible("F1"))
	assert.False(t, v.IsVisible("TPR"))
	assert.True(t, v.IsVisible("never-declared"))
}

func TestToggleTwiceRestores(t *testing.T) {
	v := New(testColumns)
	for _, c := range testColumns {
		before := v.IsVisible(c.ID)
		assert.True(t, v.Toggle(c.ID))
		assert.Equal(t, !before, v.IsVisible(c.ID))
		assert.True(t, v.Toggle(c.ID))
		assert.Equal(t, before, v.IsVisible(c.ID))
	}
}

func TestToggleUnknownIsNoop(t *testing.T) {
	v := New(testColumns)
	before := v.Snapshot()
	assert.False(t, v.Toggle("κ_SRME"))
	assert.Equal(t, before, v.Snapshot())
	assert.True(t, v.IsVisible("κ_SRME"))
}

func TestColumnsAreIndependent(t *testing.T) {
	v := New(testColumns)
	v.Toggle("F1")
	v.Toggle("TPR")
	v.Set("F1", true)
	assert.True(t, v.IsVisible("F1"), "last write wins")
	assert.True(t, v.IsVisible("TPR"))
	assert.True(t, v.IsVisible("model"))

	ids := []string{}
	for _, c := range v.Visible() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"model", "F1", "TPR"}, ids)
}

func TestOpenSetAcceptsAnyID(t *testing.T) {
	v := New(nil)
	assert.True(t, v.Toggle("anything"))
	assert.False(t, v.IsVisible("anything"))
	assert.True(t, v.Toggle("anything"))
	assert.True(t, v.IsVisible("anything"))
}

func TestReset(t *testing.T) {
	v := New(testColumns)
	v.Toggle("model")
	v.Toggle("TPR")
	v.Reset()
	assert.True(t, v.IsVisible("model"))
	assert.False(t, v.IsVisible("TPR"))
}
