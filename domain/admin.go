package domain

var (
	MessageSuccessGetDashboard   = "dashboard retrieved successfully"
	MessageSuccessGetAdAnalytics = "ad rewards analytics retrieved successfully"

	MessageFailedGetDashboard   = "failed to retrieve dashboard"
	MessageFailedGetAdAnalytics = "failed to retrieve ad rewards analytics"
)

type (
	AdminDashboard struct {
		TotalUsers    int64 `json:"total_users"`
		TotalPoints   int64 `json:"total_points"`
		TotalDiamonds int64 `json:"total_diamonds"`
		TotalRevenue  int64 `json:"total_revenue"`
		TotalAdProfit int64 `json:"total_ad_profit"`
	}

	AdRewardsAnalytics struct {
		TotalAdRewards int64 `json:"total_ad_rewards"`
		TotalProfit    int64 `json:"total_profit"`
	}
)
