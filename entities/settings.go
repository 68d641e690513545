package entities

type ConversionSettings struct {
	ID                   uint  `gorm:"primaryKey" json:"id"`
	BdtToPointsRate      int64 `json:"bdt_to_points_rate"`
	PointsToDiamondsRate int64 `json:"points_to_diamonds_rate"`
	DiamondsPerPackage   int64 `json:"diamonds_per_package"`

	Timestamp
}
