package domain

var (
	MessageSuccessGetSettings    = "conversion settings retrieved successfully"
	MessageSuccessUpdateSettings = "conversion settings updated successfully"

	MessageFailedGetSettings    = "failed to retrieve conversion settings"
	MessageFailedUpdateSettings = "failed to update conversion settings"
)

type (
	ConversionSettings struct {
		BdtToPointsRate      int64 `json:"bdt_to_points_rate"`
		PointsToDiamondsRate int64 `json:"points_to_diamonds_rate"`
		DiamondsPerPackage   int64 `json:"diamonds_per_package"`
	}

	// All three rates are required on every update, the row is replaced whole.
	UpdateConversionSettingsRequest struct {
		BdtToPointsRate      int64 `json:"bdt_to_points_rate" validate:"required,min=1"`
		PointsToDiamondsRate int64 `json:"points_to_diamonds_rate" validate:"required,min=1"`
		DiamondsPerPackage   int64 `json:"diamonds_per_package" validate:"required,min=1"`
	}
)
