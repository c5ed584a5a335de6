package tagset_test

import (
	"testing"

	"github.com/Behyna/paylink-reconciler/pkg/tagset"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected []string
	}{
		{name: "Empty", raw: "", expected: []string{}},
		{name: "Single", raw: "paid", expected: []string{"paid"}},
		{name: "Platform spacing", raw: "foo, pending", expected: []string{"foo", "pending"}},
		{name: "Separator artifacts", raw: ",,foo,, ,pending,", expected: []string{"foo", "pending"}},
		{name: "Duplicates keep first spelling", raw: "VIP,vip,foo", expected: []string{"VIP", "foo"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			set := tagset.Parse(tc.raw)
			assert.Equal(t, tc.expected, set.Items())
		})
	}
}

func TestSet_Remove(t *testing.T) {
	t.Run("Removes members case insensitively", func(t *testing.T) {
		set := tagset.Parse("foo,Pending,bar,paid")

		removed := set.Remove("pending", "paid", "canceled")

		assert.Equal(t, 2, removed)
		assert.Equal(t, "foo,bar", set.String())
		assert.False(t, set.Has("pending"))
		assert.True(t, set.Has("BAR"))
	})

	t.Run("Nothing to remove keeps order", func(t *testing.T) {
		set := tagset.Parse("b,a")

		assert.Equal(t, 0, set.Remove("c"))
		assert.Equal(t, "b,a", set.String())
	})

	t.Run("Add after remove appends at the end", func(t *testing.T) {
		set := tagset.Parse("foo,pending")
		set.Remove("pending")
		set.Add("paid")

		assert.Equal(t, "foo,paid", set.String())
		assert.Equal(t, 2, set.Len())
	})
}

func TestSet_Equal(t *testing.T) {
	a := tagset.Parse("foo, paid")
	b := tagset.New("FOO", "paid")
	c := a.Clone()
	c.Add("extra")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, "foo,paid", a.String())
}

func TestSet_ZeroValue(t *testing.T) {
	var set tagset.Set

	assert.True(t, set.Add("paid"))
	assert.False(t, set.Add("paid"))
	assert.Equal(t, "paid", set.String())
}
