package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveUniqueName(t *testing.T) {
	t.Run("no existing names", func(t *testing.T) {
		assert.Equal(t, "Tower View", ResolveUniqueName("Tower View", nil))
	})

	t.Run("prefix only is not a conflict", func(t *testing.T) {
		existing := []string{"Tower View Extension"}
		assert.Equal(t, "Tower View", ResolveUniqueName("Tower View", existing))
	})

	t.Run("exact match gets a copy marker", func(t *testing.T) {
		existing := []string{"Tower View"}
		assert.Equal(t, "Tower View (Copy)", ResolveUniqueName("Tower View", existing))
	})

	t.Run("match is case insensitive", func(t *testing.T) {
		existing := []string{"tower view"}
		assert.Equal(t, "Tower View (Copy)", ResolveUniqueName("Tower View", existing))
	})

	t.Run("bare copy counts as number one", func(t *testing.T) {
		existing := []string{"Tower View", "Tower View (Copy)"}
		assert.Equal(t, "Tower View (Copy 2)", ResolveUniqueName("Tower View", existing))
	})

	t.Run("next number after the highest", func(t *testing.T) {
		existing := []string{"Tower View", "Tower View (Copy)", "Tower View (Copy 3)"}
		assert.Equal(t, "Tower View (Copy 4)", ResolveUniqueName("Tower View", existing))
	})
}
