package domain

// SetupStepDone is the terminal step value once all three setup stages
// (admin user, company, site settings) have been created.
const SetupStepDone = 3

// SetupStatus reports first-run progress. Completed is always re-derived
// from the existence of the dependent records; Step is the persisted
// secondary progress marker.
type SetupStatus struct {
	Completed bool
	Step      int
}

// SetupData is the unified one-shot setup request: the admin account, the
// tenant organization, and site branding, created together or not at all.
type SetupData struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string

	CompanyName     string
	CompanyDocument string
	CompanyAddress  string
	CompanyPhone    string
	CompanyEmail    string
	CompanyWebsite  string

	SiteTitle       string
	SiteDescription string
	PrimaryColor    string
	SecondaryColor  string
}
