package suggest

// ModulePlan is one suggested module with actionable tasks.
type ModulePlan struct {
	Name  string   `json:"name"`
	Tasks []string `json:"tasks"`
}

type blueprint struct {
	keywords []string
	modules  []ModulePlan
}

// Industry blueprints, first match wins; SaaS is the fallback.
var blueprints = []blueprint{
	{
		keywords: []string{"saas", "web app", "platform", "dashboard"},
		modules: []ModulePlan{
			{Name: "User Auth & Security", Tasks: []string{"JWT Implementation", "RBAC Logic", "Password Reset Flow"}},
			{Name: "Core API", Tasks: []string{"CRUD for Resources", "Filtering & Sorting", "Rate Limiting"}},
			{Name: "Frontend Setup", Tasks: []string{"Design System", "Main Dashboard", "Responsive Layout"}},
		},
	},
	{
		keywords: []string{"mobile", "ios", "android", "app"},
		modules: []ModulePlan{
			{Name: "Mobile UI", Tasks: []string{"Navigation Stack", "Onboarding Screens", "Theming"}},
			{Name: "Device Features", Tasks: []string{"Push Notifications", "Biometrics", "Camera Integration"}},
			{Name: "Store Prep", Tasks: []string{"App Icon", "Splash Screens", "Privacy Policy"}},
		},
	},
	{
		keywords: []string{"seo", "marketing", "content"},
		modules: []ModulePlan{
			{Name: "On-Page SEO", Tasks: []string{"Meta Tags Optimization", "Sitemap Generation", "Schema Markup"}},
			{Name: "Analytics", Tasks: []string{"GTM Setup", "Conversion Tracking", "Search Console Link"}},
			{Name: "Performance", Tasks: []string{"Image Optimization", "Caching Strategy", "LCP Improvements"}},
		},
	},
}
