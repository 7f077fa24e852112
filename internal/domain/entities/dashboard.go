package entities

// MonthlyTotal is a summed payment amount for one calendar month.
type MonthlyTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// DashboardStats is the aggregate snapshot rendered on the office dashboard.
type DashboardStats struct {
	TotalInvestors int64   `json:"totalInvestors"`
	TotalAccounts  int64   `json:"totalAccounts"`
	TotalAmount    float64 `json:"totalAmount"`
}
