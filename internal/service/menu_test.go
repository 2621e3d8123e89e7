package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuService_GetMenu(t *testing.T) {
	f := newFixture()

	items, err := f.menu.GetMenu(context.Background(), canteenMain)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "Tea", items[0].Name)
	assert.Equal(t, "Coffee", items[1].Name)

	var names []string
	for _, o := range items[0].Options {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{"No Sugar", "Less Sugar"}, names)

	for _, item := range items {
		assert.Equal(t, canteenMain, item.CanteenID)
		assert.True(t, item.IsAvailable)
	}
}

func TestMenuService_GetMenu_ItemWithoutOptions(t *testing.T) {
	f := newFixture()

	items, err := f.menu.GetMenu(context.Background(), canteenOther)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.NotNil(t, items[0].Options)
	assert.Empty(t, items[0].Options)
	assert.Empty(t, items[0].Customizations())
}

func TestMenuService_GetMenu_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.menu.GetMenu(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)

	c := f.store.canteens[canteenOther]
	c.IsActive = false
	f.store.canteens[canteenOther] = c

	_, err = f.menu.GetMenu(context.Background(), canteenOther)
	assert.ErrorIs(t, err, ErrNotFound)
}
