package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SortMode orders the browse results.
type SortMode string

const (
	SortAll       SortMode = "all"
	SortCheap     SortMode = "cheap"
	SortExpensive SortMode = "expensive"
	SortPopular   SortMode = "popular"
)

// ParseSortMode maps a query value onto a sort mode, defaulting to natural order.
func ParseSortMode(value string) SortMode {
	switch SortMode(strings.ToLower(strings.TrimSpace(value))) {
	case SortCheap:
		return SortCheap
	case SortExpensive:
		return SortExpensive
	case SortPopular:
		return SortPopular
	default:
		return SortAll
	}
}

// Criteria is the active filter set for a catalog browse. The zero value
// matches everything; an empty string or nil bound means no constraint.
type Criteria struct {
	SearchQuery string
	Category    string
	Keyword     string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
}

func (c *Criteria) SetSearchQuery(q string)          { c.SearchQuery = strings.TrimSpace(q) }
func (c *Criteria) SetCategory(category string)      { c.Category = strings.TrimSpace(category) }
func (c *Criteria) SetKeyword(keyword string)        { c.Keyword = strings.TrimSpace(keyword) }
func (c *Criteria) SetMinPrice(min *decimal.Decimal) { c.MinPrice = min }
func (c *Criteria) SetMaxPrice(max *decimal.Decimal) { c.MaxPrice = max }

// Reset restores the zero criteria: no search, no category, no keyword,
// no price bounds.
func (c *Criteria) Reset() {
	*c = Criteria{}
}

// IsZero reports whether no constraint is active.
func (c Criteria) IsZero() bool {
	return c.SearchQuery == "" && c.Category == "" && c.Keyword == "" &&
		c.MinPrice == nil && c.MaxPrice == nil
}

// Fingerprint is a stable digest of the active filters. The browse endpoint
// compares it against the client-echoed previous fingerprint to decide
// whether the page should snap back to 1.
func (c Criteria) Fingerprint() string {
	min, max := "", ""
	if c.MinPrice != nil {
		min = c.MinPrice.String()
	}
	if c.MaxPrice != nil {
		max = c.MaxPrice.String()
	}
	return fmt.Sprintf("q=%s|cat=%s|kw=%s|min=%s|max=%s",
		strings.ToLower(c.SearchQuery), strings.ToLower(c.Category),
		strings.ToLower(c.Keyword), min, max)
}
