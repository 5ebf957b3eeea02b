package content

// Starter content inserted on first boot so the site never renders empty.
// Mirrors what the panel can later edit or replace.

func seedServices() []Service {
	return []Service{
		{
			Title:       "Web application development",
			Description: "Full-featured web applications, from data model to deployment.",
			Icon:        "fas fa-laptop-code",
			PriceRange:  "from $1,500",
			Featured:    true,
		},
		{
			Title:       "REST API development",
			Description: "Robust, well-documented REST APIs for mobile apps and frontends.",
			Icon:        "fas fa-server",
			PriceRange:  "from $1,000",
			Featured:    true,
		},
		{
			Title:       "Third-party integrations",
			Description: "Payment providers, social platforms, and mail services wired into your product.",
			Icon:        "fas fa-plug",
			PriceRange:  "from $800",
			Featured:    true,
		},
		{
			Title:       "Technical consulting",
			Description: "Architecture reviews, performance work, and technology selection.",
			Icon:        "fas fa-hands-helping",
			PriceRange:  "from $200/hour",
			Featured:    false,
		},
	}
}

func seedProjects() []Project {
	return []Project{
		{
			Title:        "E-commerce storefront",
			Description:  "Storefront with cart, checkout, and an order management backend.",
			Technologies: "Go, PostgreSQL, Redis",
			ImageURL:     "/static/images/project1.jpg",
			ProjectURL:   "https://example-shop.com",
			GithubURL:    "https://github.com/example/storefront",
			Featured:     true,
		},
		{
			Title:        "Mobile backend API",
			Description:  "High-traffic REST API with authentication for a consumer mobile app.",
			Technologies: "Go, PostgreSQL, WebSockets",
			ImageURL:     "/static/images/project2.jpg",
			ProjectURL:   "https://api.example.com",
			GithubURL:    "https://github.com/example/mobile-api",
			Featured:     true,
		},
		{
			Title:        "Analytics dashboard",
			Description:  "Data collection pipeline with a visualization dashboard.",
			Technologies: "Go, ClickHouse, Grafana",
			ImageURL:     "/static/images/project3.jpg",
			ProjectURL:   "https://analytics.example.com",
			GithubURL:    "https://github.com/example/analytics",
			Featured:     true,
		},
	}
}
