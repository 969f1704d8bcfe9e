// Package types holds the wire shapes of the plot aggregation endpoint:
// denormalized plot rows with nested reference objects, plus the dropdown
// metadata block.
package types

// GrapevineInfo is the full variety/rootstock row used in metadata lists.
type GrapevineInfo struct {
	GvID   string  `json:"gv_id"`
	Name   string  `json:"name"`
	Color  *string `json:"color"`
	GvType *string `json:"gv_type"`
}

// GrapevineRef is the minimal variety/rootstock object nested in a plot row.
type GrapevineRef struct {
	GvID string `json:"gv_id"`
	Name string `json:"name"`
}

// VineyardInfo is the full conduction/management row used in metadata lists.
type VineyardInfo struct {
	VyID        string  `json:"vy_id"`
	Value       string  `json:"value"`
	Description *string `json:"description"`
}

// VineyardRef is the minimal attribute object nested in a plot row.
type VineyardRef struct {
	VyID  string `json:"vy_id"`
	Value string `json:"value"`
}

type FincaInfo struct {
	ID          uint    `json:"id"`
	Value       string  `json:"value"`
	Description *string `json:"description"`
}

type FincaRef struct {
	ID    uint   `json:"id"`
	Value string `json:"value"`
}

type SectorInfo struct {
	ID          uint    `json:"id"`
	Value       string  `json:"value"`
	Finca       uint    `json:"finca"`
	Etiqueta    string  `json:"etiqueta"`
	Description *string `json:"description"`
}

// SectorRef nests the owning finca instead of carrying a bare id.
type SectorRef struct {
	ID    uint      `json:"id"`
	Value string    `json:"value"`
	Finca *FincaRef `json:"finca"`
}

// PlotOptimized is one row of the aggregation result. Reference objects are
// nil when the corresponding left join found no match.
type PlotOptimized struct {
	PlotID           uint     `json:"plot_id"`
	PlotName         string   `json:"plot_name"`
	PlotGeom         *string  `json:"plot_geom"`
	PlotArea         *float64 `json:"plot_area"`
	PlotImplantYear  *int     `json:"plot_implant_year"`
	PlotCreationYear *int     `json:"plot_creation_year"`
	PlotDescription  *string  `json:"plot_description"`
	SectorID         *uint    `json:"sector_id"`
	Active           bool     `json:"active"`

	Variety    *GrapevineRef `json:"variety"`
	Rootstock  *GrapevineRef `json:"rootstock"`
	Conduction *VineyardRef  `json:"conduction"`
	Management *VineyardRef  `json:"management"`
	Sector     *SectorRef    `json:"sector"`
}

// Metadata is the full reference-data snapshot for client dropdowns.
type Metadata struct {
	Varieties         []GrapevineInfo `json:"varieties"`
	Rootstocks        []GrapevineInfo `json:"rootstocks"`
	ConductionSystems []VineyardInfo  `json:"conduction_systems"`
	ManagementTypes   []VineyardInfo  `json:"management_types"`
	Sectores          []SectorInfo    `json:"sectores"`
	Fincas            []FincaInfo     `json:"fincas"`
}

// PlotsWithMetadata is the combined aggregation response.
type PlotsWithMetadata struct {
	Plots         []PlotOptimized `json:"plots"`
	Metadata      Metadata        `json:"metadata"`
	TotalCount    int64           `json:"total_count"`
	FilteredCount int64           `json:"filtered_count"`
}
