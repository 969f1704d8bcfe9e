// Package filters compiles the plot listing filter criteria into GORM
// scopes applied to the joined aggregation row set.
package filters

import (
	"strings"

	"gorm.io/gorm"
)

// Join aliases used by the aggregation query. The free-text filter targets
// columns through these aliases, so the compiler and the query builder have
// to agree on them.
const (
	AliasVariety    = "variety"
	AliasRootstock  = "rootstock"
	AliasConduction = "conduction"
	AliasManagement = "management"
	AliasSector     = "sector"
	AliasFinca      = "finca"
)

// Filters holds the filter criteria of the aggregation endpoint. Zero
// values mean "no predicate".
type Filters struct {
	ActiveOnly      bool
	FilterField     string
	FilterValue     string
	VarietyIDs      []string
	RootstockIDs    []string
	MinArea         *float64
	MaxArea         *float64
	ImplantYearFrom *int
	ImplantYearTo   *int
}

// textColumns maps the enumerated filterable fields onto joined columns.
// A filter_field outside this set compiles to no predicate at all; that is a
// policy decision, not an error.
var textColumns = map[string]string{
	"plot_name":      "plots.plot_name",
	"variety_name":   AliasVariety + ".name",
	"rootstock_name": AliasRootstock + ".name",
	"sector_name":    AliasSector + ".value",
	"finca_name":     AliasFinca + ".value",
}

// ActiveScope is the single predicate shared by the total count, which
// ignores everything else.
func (f Filters) ActiveScope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !f.ActiveOnly {
			return db
		}
		return db.Where("plots.active = ?", true)
	}
}

// Scopes returns the full ordered predicate set, active-only first. Text
// matching is case-insensitive substring; range bounds are inclusive.
func (f Filters) Scopes() []func(*gorm.DB) *gorm.DB {
	scopes := []func(*gorm.DB) *gorm.DB{f.ActiveScope()}

	if f.FilterField != "" && f.FilterValue != "" {
		if col, ok := textColumns[f.FilterField]; ok {
			pattern := "%" + strings.ToLower(f.FilterValue) + "%"
			scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
				return db.Where("LOWER("+col+") LIKE ?", pattern)
			})
		}
	}
	if len(f.VarietyIDs) > 0 {
		ids := f.VarietyIDs
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("plots.plot_var IN ?", ids)
		})
	}
	if len(f.RootstockIDs) > 0 {
		ids := f.RootstockIDs
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("plots.plot_rootstock IN ?", ids)
		})
	}
	if f.MinArea != nil {
		min := *f.MinArea
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("plots.plot_area >= ?", min)
		})
	}
	if f.MaxArea != nil {
		max := *f.MaxArea
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("plots.plot_area <= ?", max)
		})
	}
	if f.ImplantYearFrom != nil {
		from := *f.ImplantYearFrom
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("plots.plot_implant_year >= ?", from)
		})
	}
	if f.ImplantYearTo != nil {
		to := *f.ImplantYearTo
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("plots.plot_implant_year <= ?", to)
		})
	}
	return scopes
}

// Apply runs every scope against the query.
func (f Filters) Apply(db *gorm.DB) *gorm.DB {
	for _, s := range f.Scopes() {
		db = s(db)
	}
	return db
}
