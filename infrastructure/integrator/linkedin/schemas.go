package linkedin

import "github.com/vfg2006/channel-sync-api/internal/pagination"

var adAccountsPageSchema = pagination.MustCompileSchema("linkedin-ad-accounts.json", `{
	"type": "object",
	"required": ["elements"],
	"properties": {
		"elements": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name"],
				"properties": {
					"id": {"type": "integer"},
					"name": {"type": "string"},
					"currency": {"type": "string"}
				}
			}
		}
	}
}`)

var campaignGroupsPageSchema = pagination.MustCompileSchema("linkedin-campaign-groups.json", `{
	"type": "object",
	"required": ["elements"],
	"properties": {
		"elements": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name"],
				"properties": {
					"id": {"type": "integer"},
					"name": {"type": "string"},
					"status": {"type": "string"}
				}
			}
		}
	}
}`)

var campaignsPageSchema = pagination.MustCompileSchema("linkedin-campaigns.json", `{
	"type": "object",
	"required": ["elements"],
	"properties": {
		"elements": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name", "campaignGroup"],
				"properties": {
					"id": {"type": "integer"},
					"name": {"type": "string"},
					"campaignGroup": {"type": "string"}
				}
			}
		}
	}
}`)

var creativesPageSchema = pagination.MustCompileSchema("linkedin-creatives.json", `{
	"type": "object",
	"required": ["elements"],
	"properties": {
		"elements": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "campaign"],
				"properties": {
					"id": {"type": "string"},
					"name": {"type": "string"},
					"campaign": {"type": "string"}
				}
			}
		}
	}
}`)

var analyticsPageSchema = pagination.MustCompileSchema("linkedin-analytics.json", `{
	"type": "object",
	"required": ["elements"],
	"properties": {
		"elements": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["creative", "dateRange", "impressions"],
				"properties": {
					"creative": {"type": "string"},
					"dateRange": {
						"type": "object",
						"required": ["start"],
						"properties": {
							"start": {
								"type": "object",
								"required": ["year", "month", "day"],
								"properties": {
									"year": {"type": "integer"},
									"month": {"type": "integer"},
									"day": {"type": "integer"}
								}
							}
						}
					},
					"impressions": {"type": "integer"},
					"costInLocalCurrency": {"type": "string"},
					"clicks": {"type": "integer"}
				}
			}
		}
	}
}`)
