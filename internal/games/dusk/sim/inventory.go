package sim

// ItemKind classifies inventory items.
type ItemKind string

const (
	ItemWeapon     ItemKind = "weapon"
	ItemArmor      ItemKind = "armor"
	ItemConsumable ItemKind = "consumable"
	ItemQuest      ItemKind = "quest"
)

// HealthPotionID is the only consumable with an effect.
const HealthPotionID = "health_potion"

// Item is a stack of identical items.
type Item struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Kind        ItemKind `yaml:"kind"`
	Quantity    int      `yaml:"quantity"`
	Description string   `yaml:"description,omitempty"`
}

// HealthPotion returns a single health potion.
func HealthPotion() Item {
	return Item{
		ID:          HealthPotionID,
		Name:        "Health Potion",
		Kind:        ItemConsumable,
		Quantity:    1,
		Description: "Restores health.",
	}
}

// Inventory stacks items by ID, keeping pickup order.
type Inventory struct {
	items []Item
}

// Add merges item into an existing stack or appends a new one.
// Non-positive quantities are ignored.
func (inv *Inventory) Add(item Item) {
	if item.ID == "" || item.Quantity <= 0 {
		return
	}
	for i := range inv.items {
		if inv.items[i].ID == item.ID {
			inv.items[i].Quantity += item.Quantity
			return
		}
	}
	inv.items = append(inv.items, item)
}

// Remove takes quantity from a stack, dropping it when it reaches zero.
// Returns false if the item is not held or quantity is not positive.
func (inv *Inventory) Remove(id string, quantity int) bool {
	if quantity <= 0 {
		return false
	}
	for i := range inv.items {
		if inv.items[i].ID != id {
			continue
		}
		inv.items[i].Quantity -= quantity
		if inv.items[i].Quantity <= 0 {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
		}
		return true
	}
	return false
}

// Use consumes one of a consumable item and returns it.
// Non-consumables and missing items are left alone.
func (inv *Inventory) Use(id string) (Item, bool) {
	for _, it := range inv.items {
		if it.ID != id || it.Kind != ItemConsumable {
			continue
		}
		inv.Remove(id, 1)
		it.Quantity = 1
		return it, true
	}
	return Item{}, false
}

// Count returns how many of id are held.
func (inv *Inventory) Count(id string) int {
	for _, it := range inv.items {
		if it.ID == id {
			return it.Quantity
		}
	}
	return 0
}

// Items returns a copy of the stacks.
func (inv *Inventory) Items() []Item {
	out := make([]Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Replace swaps the whole inventory, dropping invalid stacks.
func (inv *Inventory) Replace(items []Item) {
	inv.items = nil
	for _, it := range items {
		inv.Add(it)
	}
}

// Clear empties the inventory.
func (inv *Inventory) Clear() {
	inv.items = nil
}
