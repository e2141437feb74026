package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	tests := []struct {
		name         string
		categoryName string
		description  string
		wantErr      bool
	}{
		{name: "valid", categoryName: "Electronics", wantErr: false},
		{name: "with allowed punctuation", categoryName: "Home_and-Garden 2", wantErr: false},
		{name: "empty name", categoryName: "  ", wantErr: true},
		{name: "name too long", categoryName: strings.Repeat("a", 101), wantErr: true},
		{name: "illegal characters", categoryName: "Toys & Games", wantErr: true},
		{name: "description too long", categoryName: "Books", description: strings.Repeat("d", 1001), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, err := NewCategory(tt.categoryName, tt.description)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.categoryName), category.Name)
		})
	}
}

func TestCategory_Update(t *testing.T) {
	category, err := NewCategory("Books", "Printed things")
	require.NoError(t, err)

	require.NoError(t, category.Update("Ebooks", "", false))
	assert.Equal(t, "Ebooks", category.Name)
	assert.Equal(t, "Printed things", category.Description)

	require.NoError(t, category.Update("", "Digital things", true))
	assert.Equal(t, "Ebooks", category.Name)
	assert.Equal(t, "Digital things", category.Description)

	err = category.Update("Bad!Name", "", false)
	require.Error(t, err)
	assert.Equal(t, "Ebooks", category.Name)
}
