package domain

import "fmt"

// Order is the display order of the move list.
type Order uint8

const (
	Ascending Order = iota
	Descending
)

// Toggle returns the opposite order.
func (o Order) Toggle() Order {
	if o == Ascending {
		return Descending
	}
	return Ascending
}

// ToggleLabel is the caption of the control that switches to the other order.
func (o Order) ToggleLabel() string {
	if o == Ascending {
		return "Sort Descending"
	}
	return "Sort Ascending"
}

func (o Order) String() string {
	if o == Descending {
		return "descending"
	}
	return "ascending"
}

// MoveItem is one row of the rendered move list.
type MoveItem struct {
	Ply        int
	Descriptor Descriptor
	Current    bool
	Label      string
}

// MoveList lists every ply of h in the given order.
// Each item keeps its chronological ply number regardless of order.
func MoveList(h *History, o Order) []MoveItem {
	n := h.Len()
	items := make([]MoveItem, 0, n)
	for i := 0; i < n; i++ {
		ply := i
		if o == Descending {
			ply = n - 1 - i
		}
		d, _ := h.MoveDescriptor(ply)
		item := MoveItem{Ply: ply, Descriptor: d, Current: ply == h.CurrentPly()}
		switch {
		case item.Current:
			item.Label = fmt.Sprintf("You are at move #%d", ply)
		case d.Start:
			item.Label = "Go to game start"
		default:
			item.Label = fmt.Sprintf("Go to move #%d %s", ply, d)
		}
		items = append(items, item)
	}
	return items
}
