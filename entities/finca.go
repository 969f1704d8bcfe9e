package entities

// Finca is a top-level landholding grouping sectores.
type Finca struct {
	FincaID     uint    `gorm:"primaryKey" json:"finca_id"`
	Value       string  `gorm:"uniqueIndex;not null" json:"value"`
	Description *string `json:"description"`

	Sectores []Sector `gorm:"foreignKey:FincaID" json:"-"`
}

func (Finca) TableName() string { return "fincas" }

// Sector subdivides a finca and groups plots.
type Sector struct {
	SectorID    uint    `gorm:"primaryKey" json:"sector_id"`
	FincaID     uint    `gorm:"index;not null" json:"finca_id"`
	Value       string  `gorm:"not null" json:"value"`
	Description *string `json:"description"`
	// Etiqueta is the display tag shown in dropdowns, derived from the
	// finca and sector values on every write.
	Etiqueta string `json:"etiqueta"`

	Finca *Finca `gorm:"foreignKey:FincaID" json:"finca,omitempty"`
}

func (Sector) TableName() string { return "sectores" }
