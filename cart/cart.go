package cart

import (
	"github.com/shopspring/decimal"
)

// Line is one selectable unit of the cart: a menu item, or a menu item with
// a chosen portion. UnitPrice is a snapshot taken when the line is added
// (the portion price when a portion was selected, else the item base price).
type Line struct {
	MenuItemID  uint    `json:"menu_item_id"`
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	PortionID   *uint   `json:"portion_id,omitempty"`
	PortionName *string `json:"portion_name,omitempty"`
}

// key identifies a line for merge purposes: the pair (menu item, portion-or-absence).
type key struct {
	menuItemID uint
	portionID  uint // zero when no portion was selected
}

func lineKey(menuItemID uint, portionID *uint) key {
	k := key{menuItemID: menuItemID}
	if portionID != nil {
		k.portionID = *portionID
	}
	return k
}

// Manager holds the mutable line list and writes it through to the store
// after every mutation. Last write wins; concurrent stores are not reconciled.
type Manager struct {
	store Store
	lines []Line
}

// NewManager loads the previously saved cart from the store. A store error
// starts an empty cart rather than failing, matching a fresh session.
func NewManager(store Store) *Manager {
	m := &Manager{store: store}
	if lines, err := store.Load(); err == nil {
		m.lines = lines
	}
	return m
}

// Add merges into an existing line keyed by (item, portion-or-none) or
// appends a new one. A non-positive quantity on the incoming line counts as 1.
func (m *Manager) Add(line Line) {
	if line.Quantity <= 0 {
		line.Quantity = 1
	}
	k := lineKey(line.MenuItemID, line.PortionID)
	for i := range m.lines {
		if lineKey(m.lines[i].MenuItemID, m.lines[i].PortionID) == k {
			m.lines[i].Quantity += line.Quantity
			m.save()
			return
		}
	}
	m.lines = append(m.lines, line)
	m.save()
}

// SetQuantity sets the quantity of the matching line, pruning it when n <= 0.
// Setting an absent line is a no-op.
func (m *Manager) SetQuantity(menuItemID uint, portionID *uint, n int) {
	k := lineKey(menuItemID, portionID)
	for i := range m.lines {
		if lineKey(m.lines[i].MenuItemID, m.lines[i].PortionID) != k {
			continue
		}
		if n <= 0 {
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
		} else {
			m.lines[i].Quantity = n
		}
		m.save()
		return
	}
}

// Total is the sum of unit price x quantity across all lines.
func (m *Manager) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range m.lines {
		price := decimal.NewFromFloat(line.UnitPrice)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Clear empties the cart.
func (m *Manager) Clear() {
	m.lines = nil
	m.save()
}

// Lines returns a copy of the current line list.
func (m *Manager) Lines() []Line {
	out := make([]Line, len(m.lines))
	copy(out, m.lines)
	return out
}

func (m *Manager) save() {
	_ = m.store.Save(m.lines)
}
