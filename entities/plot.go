package entities

// Plot is a vineyard parcel. PlotGeom holds the canonical WKT of the parcel
// polygon; the spatial reference is fixed (SRID 4326) and never stored on the
// row itself.
type Plot struct {
	PlotID           uint     `gorm:"primaryKey" json:"plot_id"`
	PlotName         string   `gorm:"not null" json:"plot_name"`
	PlotVar          string   `gorm:"index;not null" json:"plot_var"` // grapevine id, variety kind
	PlotRootstock    *string  `gorm:"index" json:"plot_rootstock"`    // grapevine id, rootstock kind
	PlotConduction   *string  `json:"plot_conduction"`                // vineyard attribute id
	PlotManagement   *string  `json:"plot_management"`                // vineyard attribute id
	PlotImplantYear  *int     `json:"plot_implant_year"`
	PlotCreationYear *int     `json:"plot_creation_year"`
	PlotDescription  *string  `json:"plot_description"`
	PlotGeom         string   `gorm:"not null" json:"plot_geom"`
	PlotArea         *float64 `json:"plot_area"`
	SectorID         *uint    `gorm:"index" json:"sector_id"`
	Active           bool     `gorm:"default:true" json:"active"`

	Sector *Sector `gorm:"foreignKey:SectorID" json:"-"`
}

func (Plot) TableName() string { return "plots" }
