package domain

type MenuItem struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	CanteenID   uint         `json:"canteen_id"`
	IsAvailable bool         `json:"is_available"`
	Options     []ItemOption `json:"options"`
}

// ItemOption is a single selectable customization (eg "No Sugar"). It is only
// valid together with the menu item that owns it.
type ItemOption struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	MenuItemID uint   `json:"menu_item_id"`
}

func (o ItemOption) BelongsTo(item MenuItem) bool {
	return o.MenuItemID == item.ID
}

// Customization groups the options of a menu item the way the ordering page renders them.
type Customization struct {
	ID      string       `json:"id"`
	Label   string       `json:"label"`
	Options []ItemOption `json:"options"`
}

const (
	MainOptionGroupID    = "main_option"
	MainOptionGroupLabel = "Options"
)

func (m MenuItem) Customizations() []Customization {
	if len(m.Options) == 0 {
		return []Customization{}
	}

	return []Customization{{
		ID:      MainOptionGroupID,
		Label:   MainOptionGroupLabel,
		Options: m.Options,
	}}
}
