package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateVisibilitySettings(t *testing.T) {
	settings, err := ValidateVisibilitySettings(map[string]bool{
		"budget":   false,
		"location": true,
	})
	require.NoError(t, err)
	assert.Equal(t, VisibilitySettings{FieldBudget: false, FieldLocation: true}, settings)

	_, err = ValidateVisibilitySettings(map[string]bool{"salary": false})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestApplyVisibility(t *testing.T) {
	newProject := func() *Project {
		return &Project{
			ProjectName:   "Skyline",
			DeveloperName: strPtr("Godrej"),
			BudgetMin:     floatPtr(5000000),
			BudgetMax:     floatPtr(8000000),
			Notes:         strPtr("corner plot"),
			VisibilitySettings: VisibilitySettings{
				FieldBudget: false,
				FieldNotes:  false,
			},
		}
	}

	t.Run("non-admin gets hidden fields nulled", func(t *testing.T) {
		p := newProject()
		p.ApplyVisibility(false)

		assert.Nil(t, p.BudgetMin)
		assert.Nil(t, p.BudgetMax)
		assert.Nil(t, p.Notes)
		// Непомеченные поля не трогаются
		assert.Equal(t, "Godrej", *p.DeveloperName)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		p := newProject()
		p.ApplyVisibility(true)

		assert.NotNil(t, p.BudgetMin)
		assert.NotNil(t, p.Notes)
	})

	t.Run("explicit true keeps the field", func(t *testing.T) {
		p := newProject()
		p.VisibilitySettings = VisibilitySettings{FieldDeveloperName: true}
		p.ApplyVisibility(false)

		assert.Equal(t, "Godrej", *p.DeveloperName)
	})
}

func TestValidateAttributeVisibility(t *testing.T) {
	attrs, err := ValidateAttributeVisibility(map[string]bool{"1": true, "13": false})
	require.NoError(t, err)
	assert.Equal(t, AttributeVisibility{1: true, 13: false}, attrs)

	_, err = ValidateAttributeVisibility(map[string]bool{"14": true})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ValidateAttributeVisibility(map[string]bool{"zero": true})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFilterAttributes(t *testing.T) {
	p := &Project{Attributes: map[int]string{1: "RERA-123", 2: "vastu", 3: "podium"}}
	p.FilterAttributes(AttributeVisibility{2: false, 3: true})

	assert.Equal(t, map[int]string{1: "RERA-123", 3: "podium"}, p.Attributes)
}
