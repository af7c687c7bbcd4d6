package card

// Built-in view names.
const (
	ViewDashboard = "dashboard"
	ViewFunnel    = "funnel"
)

// Roles and categories referenced by the built-in registries.
const (
	RoleAdmin = "admin"
	RoleOps   = "ops"

	CategorySurveys  = "surveys"
	CategoryForecast = "forecast"
)

// Dashboard returns the registry of the main dashboard.
func Dashboard() Registry {
	return Registry{
		View: ViewDashboard,
		Defs: []Definition{
			{ID: "tasks", Title: "Tasks", Size: SizeFull},
			{ID: "funnel", Title: "Sales funnel", Size: SizeHalf},
			{ID: "courses", Title: "Training courses", Size: SizeHalf},
			{ID: "links", Title: "Links", Size: SizeHalf},
			{ID: "credentials", Title: "Credentials", Size: SizeHalf, Visible: RoleIn(RoleOps, RoleAdmin)},
			{ID: "quizzes", Title: "Quizzes", Size: SizeHalf},
			{ID: "surveys", Title: "Surveys", Size: SizeHalf, Visible: CategoryOn(CategorySurveys)},
			{ID: "team", Title: "Team", Size: SizeFull, Visible: RoleIn(RoleAdmin)},
		},
	}
}

// Funnel returns the registry of the funnel overview panel.
func Funnel() Registry {
	return Registry{
		View: ViewFunnel,
		Defs: []Definition{
			{ID: "stages", Title: "Stages", Size: SizeFull},
			{ID: "deals", Title: "Open deals", Size: SizeHalf},
			{ID: "conversion", Title: "Conversion", Size: SizeHalf},
			{ID: "activity", Title: "Recent activity", Size: SizeFull},
			{ID: "forecast", Title: "Forecast", Size: SizeHalf, Visible: CategoryOn(CategoryForecast)},
			{ID: "notes", Title: "Notes", Size: SizeHalf},
			{ID: "owners", Title: "Owners", Size: SizeHalf, Visible: RoleIn(RoleAdmin)},
		},
	}
}
