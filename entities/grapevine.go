package entities

// Grapevine id prefixes. "M001" is a variety, "PI001" a rootstock; the
// prefix is the kind discriminator carried over from the reference data.
const (
	VarietyPrefix   = "M"
	RootstockPrefix = "PI"
)

// Grapevine is a variety or rootstock reference row.
type Grapevine struct {
	GvID   string  `gorm:"primaryKey" json:"gv_id"`
	Name   string  `gorm:"not null" json:"name"`
	Color  *string `json:"color"`
	GvType *string `json:"gv_type"`
}

func (Grapevine) TableName() string { return "grapevines" }

// Vineyard attribute kinds.
const (
	KindConduction = "conduction"
	KindManagement = "management"
)

// Vineyard is a conduction-system or management-type lookup row. Kind is the
// explicit discriminator; rows migrated from older data get it backfilled
// from the description text at boot.
type Vineyard struct {
	VyID        string  `gorm:"primaryKey" json:"vy_id"`
	Value       string  `gorm:"not null" json:"value"`
	Description *string `json:"description"`
	Kind        string  `gorm:"index" json:"kind"` // conduction|management
}

func (Vineyard) TableName() string { return "vineyards" }
