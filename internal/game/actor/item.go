package actor

// ItemKind classifies pack items for the effects that target them.
type ItemKind int

const (
	ItemMisc ItemKind = iota
	ItemFood
	ItemLight
	ItemWand
	ItemStaff
	ItemArmor
	ItemWeapon
)

var itemKindNames = map[string]ItemKind{
	"misc":   ItemMisc,
	"food":   ItemFood,
	"light":  ItemLight,
	"wand":   ItemWand,
	"staff":  ItemStaff,
	"armor":  ItemArmor,
	"weapon": ItemWeapon,
}

// Item is a stack in an actor's pack or on the floor.
type Item struct {
	// InstanceID identifies a dropped or generated stack; empty for starting gear.
	InstanceID string
	ID         string
	Name       string
	Kind       ItemKind
	Quantity   int
	Charges    int
	Enchant    int
	Equipped   bool
	Artifact   bool
}

// Device reports whether the item holds drainable charges.
func (it *Item) Device() bool {
	return (it.Kind == ItemWand || it.Kind == ItemStaff) && it.Charges > 0
}

// PackSlots is the number of pack slots a thief rummages through. Slots past
// the end of a shorter pack are empty.
const PackSlots = 23

// Pack is an ordered list of item stacks.
type Pack []Item

// Compact drops empty stacks in place and returns the shortened pack.
func (p Pack) Compact() Pack {
	out := p[:0]
	for _, it := range p {
		if it.Quantity > 0 {
			out = append(out, it)
		}
	}
	return out
}

// Count returns the number of stacks.
func (p Pack) Count() int { return len(p) }

// Equipped returns the indices of worn or wielded stacks.
func (p Pack) Equipped() []int {
	var out []int
	for i := range p {
		if p[i].Equipped {
			out = append(out, i)
		}
	}
	return out
}
