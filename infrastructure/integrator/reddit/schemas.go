package reddit

import "github.com/vfg2006/channel-sync-api/internal/pagination"

var adAccountsPageSchema = pagination.MustCompileSchema("reddit-adaccounts.json", `{
	"type": "object",
	"required": ["data"],
	"properties": {
		"data": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name"],
				"properties": {
					"id": {"type": "string"},
					"name": {"type": "string"},
					"currency": {"type": "string"}
				}
			}
		},
		"pagination": {
			"type": "object",
			"properties": {
				"after": {"type": "string"}
			}
		}
	}
}`)

var campaignsPageSchema = pagination.MustCompileSchema("reddit-campaigns.json", `{
	"type": "object",
	"required": ["data"],
	"properties": {
		"data": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name"],
				"properties": {
					"id": {"type": "string"},
					"name": {"type": "string"},
					"objective": {"type": "string"},
					"effective_status": {"type": "string"}
				}
			}
		}
	}
}`)

var adGroupsPageSchema = pagination.MustCompileSchema("reddit-adgroups.json", `{
	"type": "object",
	"required": ["data"],
	"properties": {
		"data": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name", "campaign_id"],
				"properties": {
					"id": {"type": "string"},
					"name": {"type": "string"},
					"campaign_id": {"type": "string"}
				}
			}
		}
	}
}`)

var adsPageSchema = pagination.MustCompileSchema("reddit-ads.json", `{
	"type": "object",
	"required": ["data"],
	"properties": {
		"data": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name", "ad_group_id"],
				"properties": {
					"id": {"type": "string"},
					"name": {"type": "string"},
					"ad_group_id": {"type": "string"}
				}
			}
		}
	}
}`)

var reportResultsPageSchema = pagination.MustCompileSchema("reddit-report-results.json", `{
	"type": "object",
	"required": ["data"],
	"properties": {
		"data": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["ad_id", "date"],
				"properties": {
					"ad_id": {"type": "string"},
					"date": {"type": "string"},
					"impressions": {"type": "integer"},
					"spend_micros": {"type": "integer"},
					"clicks": {"type": "integer"}
				}
			}
		}
	}
}`)
