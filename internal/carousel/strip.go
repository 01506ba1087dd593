// Package carousel lays out the works showcase strip and drives its
// auto-scroll.
package carousel

import (
	"errors"
	"strings"

	"kh-portfolio/internal/works"
)

type Variant string

const (
	// VariantMarquee loops continuously; the list is repeated once so the
	// wrap point is never visible.
	VariantMarquee Variant = "marquee"
	// VariantScroll advances a scroll offset frame by frame.
	VariantScroll Variant = "scroll"
	// VariantStatic is a plain horizontally overflowing row.
	VariantStatic Variant = "static"
)

// DefaultItemWidth is one card plus its gap, in CSS pixels.
const DefaultItemWidth = 416

var (
	ErrInertItem  = errors.New("item has no project url")
	ErrOutOfRange = errors.New("item index out of range")
)

func ParseVariant(raw string) (Variant, bool) {
	switch Variant(strings.ToLower(strings.TrimSpace(raw))) {
	case "", VariantScroll:
		return VariantScroll, true
	case VariantMarquee:
		return VariantMarquee, true
	case VariantStatic:
		return VariantStatic, true
	}
	return "", false
}

type Item struct {
	Work      works.Work `json:"work"`
	Clickable bool       `json:"clickable"`
	Repeat    bool       `json:"repeat,omitempty"`
}

type Strip struct {
	Variant   Variant `json:"variant"`
	Items     []Item  `json:"items"`
	Distinct  int     `json:"distinct"`
	LoopWidth float64 `json:"loop_width"`
}

// Build orders works by year, oldest first, and lays them out for v.
func Build(list []works.Work, v Variant, itemWidth float64) Strip {
	if itemWidth <= 0 {
		itemWidth = DefaultItemWidth
	}
	sorted := works.SortByYear(list, false)

	items := make([]Item, 0, len(sorted)*2)
	for _, w := range sorted {
		items = append(items, Item{Work: w, Clickable: w.HasProjectURL()})
	}
	if v == VariantMarquee {
		for _, w := range sorted {
			items = append(items, Item{Work: w, Clickable: w.HasProjectURL(), Repeat: true})
		}
	}

	strip := Strip{Variant: v, Items: items, Distinct: len(sorted)}
	if v != VariantStatic {
		strip.LoopWidth = float64(len(sorted)) * itemWidth
	}
	return strip
}

// Click returns the work behind the item at index. Items without a usable
// link do not react.
func (s Strip) Click(index int) (works.Work, error) {
	if index < 0 || index >= len(s.Items) {
		return works.Work{}, ErrOutOfRange
	}
	item := s.Items[index]
	if !item.Clickable {
		return works.Work{}, ErrInertItem
	}
	return item.Work, nil
}

// VisibilityThreshold is the share of the strip that must be on screen
// before the marquee starts.
const VisibilityThreshold = 0.1

// Visibility latches once the strip has been seen.
type Visibility struct {
	started bool
}

func (v *Visibility) Observe(ratio float64) bool {
	if ratio >= VisibilityThreshold {
		v.started = true
	}
	return v.started
}

func (v *Visibility) Started() bool {
	return v.started
}
