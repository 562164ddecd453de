package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Addon is a single selectable extra on a menu item.
type Addon struct {
	Label string
	Price float64
}

// AddonSpec declares which addons an item offers and how many may be picked.
// For optional addons Addable is an upper bound; for required addons the
// selection count must equal Addable exactly.
type AddonSpec struct {
	Addons  []Addon
	Addable int
}

// ParseAddonSpec decodes the legacy "label-price,label-price" wire form.
// A zero addable defaults to the number of declared addons.
func ParseAddonSpec(encoded string, addable int) (AddonSpec, error) {
	spec := AddonSpec{Addable: addable}
	if strings.TrimSpace(encoded) == "" {
		return spec, nil
	}
	for _, part := range strings.Split(encoded, ",") {
		label, priceRaw, found := strings.Cut(part, "-")
		if !found {
			return AddonSpec{}, fmt.Errorf("malformed addon %q", part)
		}
		label = strings.TrimSpace(label)
		price, err := strconv.ParseFloat(strings.TrimSpace(priceRaw), 64)
		if err != nil || label == "" || price < 0 {
			return AddonSpec{}, fmt.Errorf("malformed addon %q", part)
		}
		spec.Addons = append(spec.Addons, Addon{Label: label, Price: price})
	}
	if spec.Addable == 0 {
		spec.Addable = len(spec.Addons)
	}
	return spec, nil
}

// Encode serializes the spec back to the legacy wire form.
func (s AddonSpec) Encode() string {
	parts := make([]string, 0, len(s.Addons))
	for _, a := range s.Addons {
		parts = append(parts, fmt.Sprintf("%s - %s", a.Label, strconv.FormatFloat(a.Price, 'f', -1, 64)))
	}
	return strings.Join(parts, ", ")
}

// HasLabel reports whether label matches a declared addon, case-insensitively.
func (s AddonSpec) HasLabel(label string) bool {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, a := range s.Addons {
		if strings.ToLower(a.Label) == label {
			return true
		}
	}
	return false
}

// PriceOf returns the declared price of label, or zero when unknown.
func (s AddonSpec) PriceOf(label string) float64 {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, a := range s.Addons {
		if strings.ToLower(a.Label) == label {
			return a.Price
		}
	}
	return 0
}

// BaseLabel strips the price portion off a client-selected addon such as
// "cheese-1" and normalizes whitespace.
func BaseLabel(selected string) string {
	label, _, _ := strings.Cut(selected, "-")
	return strings.TrimSpace(label)
}

// NormalizeLabels maps client selections to their base labels.
func NormalizeLabels(selected []string) []string {
	labels := make([]string, 0, len(selected))
	for _, s := range selected {
		labels = append(labels, BaseLabel(s))
	}
	return labels
}

// JoinSorted sorts labels case-insensitively and joins them for display,
// the form stored on order lines.
func JoinSorted(labels []string) string {
	sorted := make([]string, len(labels))
	copy(sorted, labels)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i]) < strings.ToLower(sorted[j])
	})
	return strings.Join(sorted, ", ")
}

// SplitIngredients decodes a comma-separated ingredient list.
func SplitIngredients(encoded string) []string {
	if strings.TrimSpace(encoded) == "" {
		return nil
	}
	parts := strings.Split(encoded, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
