package models

// Categories
const (
	CategoryFoodDining    = "Food & Dining"
	CategoryShopping      = "Shopping"
	CategoryTransport     = "Transportation"
	CategoryFuel          = "Fuel"
	CategoryBills         = "Bills & Utilities"
	CategoryEntertainment = "Entertainment"
	CategoryTravel        = "Travel"
	CategoryHealth        = "Health & Fitness"
	CategoryEducation     = "Education"
	CategorySubscription  = "Subscription"
	CategoryInvestment    = "Investment"
	CategoryInsurance     = "Insurance"
	CategoryLoan          = "Loan"
	CategoryTransfer      = "Transfer"
	CategoryMiscellaneous = "Miscellaneous"

	// CategoryOther is returned by the classifier for an output index with no label.
	CategoryOther = "Other"
)

// Category sources reported by the pipeline
const (
	SourceKeyword    = "keyword"
	SourceClassifier = "classifier"
	SourceManual     = "manual"
)

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
