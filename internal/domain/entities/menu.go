package entities

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	MenuRowID       = "active-menu"
	defaultItemName = "Menu Item"
	maxSpicy        = 3
)

type Category struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Veg         bool    `json:"veg"`
	Bestseller  bool    `json:"bestseller"`
	ChefSpecial bool    `json:"chefSpecial"`
	Spicy       float64 `json:"spicy"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	Available   bool    `json:"available"`
}

// Menu is the categorized daily menu. Items is keyed by Category.Key.
type Menu struct {
	Categories []Category            `json:"categories"`
	Items      map[string][]MenuItem `json:"items"`
}

// DefaultCategories is used whenever a menu carries no valid category.
func DefaultCategories() []Category {
	return []Category{
		{Key: "starters", Label: "Starters"},
		{Key: "mains", Label: "Main Course"},
		{Key: "breads", Label: "Breads"},
		{Key: "desserts", Label: "Desserts"},
	}
}

// NormalizeMenu drops blank and duplicate category keys, rebuilds Items from the
// surviving categories and clamps item fields. NormalizeMenu(NormalizeMenu(m)) equals
// NormalizeMenu(m).
func NormalizeMenu(m Menu) Menu {
	categories := normalizeCategories(m.Categories)
	items := make(map[string][]MenuItem, len(categories))
	for _, c := range categories {
		src := m.Items[c.Key]
		out := make([]MenuItem, 0, len(src))
		for _, it := range src {
			out = append(out, normalizeMenuItem(it))
		}
		items[c.Key] = out
	}
	return Menu{Categories: categories, Items: items}
}

func normalizeCategories(in []Category) []Category {
	seen := make(map[string]bool, len(in))
	out := make([]Category, 0, len(in))
	for _, c := range in {
		key := strings.TrimSpace(c.Key)
		if key == "" || seen[key] {
			continue
		}
		label := strings.TrimSpace(c.Label)
		if label == "" {
			label = FallbackLabel(key)
		}
		out = append(out, Category{Key: key, Label: label})
		seen[key] = true
	}
	if len(out) == 0 {
		return DefaultCategories()
	}
	return out
}

func normalizeMenuItem(it MenuItem) MenuItem {
	it.Price = finiteOrZero(it.Price)
	it.Rating = finiteOrZero(it.Rating)
	switch {
	case it.Spicy < 0:
		it.Spicy = 0
	case it.Spicy > maxSpicy:
		it.Spicy = maxSpicy
	}
	return it
}

// FallbackLabel derives a display label from a category key: "chef_specials" -> "Chef Specials".
func FallbackLabel(key string) string {
	var b strings.Builder
	prevSep := false
	for _, r := range key {
		if r == '-' || r == '_' {
			if !prevSep {
				b.WriteRune(' ')
			}
			prevSep = true
			continue
		}
		prevSep = false
		b.WriteRune(r)
	}

	runes := []rune(b.String())
	for i, r := range runes {
		if (i == 0 || !isWordRune(runes[i-1])) && r >= 'a' && r <= 'z' {
			runes[i] = r - 'a' + 'A'
		}
	}
	label := strings.TrimSpace(string(runes))
	if label == "" {
		return "Menu"
	}
	return label
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// UnmarshalJSON accepts hand-edited documents: invalid category entries are
// skipped, non-array item buckets are ignored and legacy top-level arrays
// ({"starters": [...]}) fill buckets missing from "items".
func (m *Menu) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Menu{Items: map[string][]MenuItem{}}

	var rawCategories []json.RawMessage
	if v, ok := raw["categories"]; ok {
		_ = json.Unmarshal(v, &rawCategories)
	}
	for _, rc := range rawCategories {
		var c struct {
			Key   any `json:"key"`
			Label any `json:"label"`
		}
		if err := json.Unmarshal(rc, &c); err != nil {
			continue
		}
		key, ok := c.Key.(string)
		if !ok {
			continue
		}
		label, _ := c.Label.(string)
		out.Categories = append(out.Categories, Category{Key: key, Label: label})
	}

	var buckets map[string]json.RawMessage
	if v, ok := raw["items"]; ok {
		_ = json.Unmarshal(v, &buckets)
	}
	for key, rb := range buckets {
		var items []MenuItem
		if err := json.Unmarshal(rb, &items); err == nil && items != nil {
			out.Items[key] = items
		}
	}

	for key, rb := range raw {
		if key == "categories" || key == "items" {
			continue
		}
		if _, exists := out.Items[key]; exists {
			continue
		}
		var items []MenuItem
		if err := json.Unmarshal(rb, &items); err == nil && items != nil {
			out.Items[key] = items
		}
	}

	*m = out
	return nil
}

// UnmarshalJSON coerces numeric strings, defaults a missing name and treats
// anything but an explicit false as available.
func (it *MenuItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          any     `json:"id"`
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Price       any     `json:"price"`
		Image       any     `json:"image"`
		Veg         any     `json:"veg"`
		Bestseller  any     `json:"bestseller"`
		ChefSpecial any     `json:"chefSpecial"`
		Spicy       any     `json:"spicy"`
		Rating      any     `json:"rating"`
		Reviews     any     `json:"reviews"`
		Available   any     `json:"available"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := MenuItem{
		ID:          coerceString(raw.ID),
		Name:        defaultItemName,
		Price:       coerceFloat(raw.Price),
		Image:       coerceString(raw.Image),
		Veg:         raw.Veg == true,
		Bestseller:  raw.Bestseller == true,
		ChefSpecial: raw.ChefSpecial == true,
		Spicy:       coerceFloat(raw.Spicy),
		Rating:      coerceFloat(raw.Rating),
		Reviews:     int(math.Round(coerceFloat(raw.Reviews))),
		Available:   raw.Available != false,
	}
	if raw.Name != nil {
		out.Name = *raw.Name
	}
	if raw.Description != nil {
		out.Description = *raw.Description
	}
	*it = normalizeMenuItem(out)
	return nil
}

func coerceFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return finiteOrZero(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return finiteOrZero(f)
	default:
		return 0
	}
}

func coerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(s)
	}
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
