package tiktok

import "github.com/vfg2006/channel-sync-api/internal/pagination"

var campaignsPageSchema = pagination.MustCompileSchema("tiktok-campaigns.json", `{
	"type": "object",
	"required": ["list"],
	"properties": {
		"list": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["campaign_id", "campaign_name"],
				"properties": {
					"campaign_id": {"type": "string"},
					"campaign_name": {"type": "string"},
					"objective_type": {"type": "string"},
					"operation_status": {"type": "string"}
				}
			}
		}
	}
}`)

var adGroupsPageSchema = pagination.MustCompileSchema("tiktok-adgroups.json", `{
	"type": "object",
	"required": ["list"],
	"properties": {
		"list": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["adgroup_id", "adgroup_name", "campaign_id"],
				"properties": {
					"adgroup_id": {"type": "string"},
					"adgroup_name": {"type": "string"},
					"campaign_id": {"type": "string"}
				}
			}
		}
	}
}`)

var adsPageSchema = pagination.MustCompileSchema("tiktok-ads.json", `{
	"type": "object",
	"required": ["list"],
	"properties": {
		"list": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["ad_id", "ad_name", "adgroup_id"],
				"properties": {
					"ad_id": {"type": "string"},
					"ad_name": {"type": "string"},
					"adgroup_id": {"type": "string"}
				}
			}
		}
	}
}`)

var reportPageSchema = pagination.MustCompileSchema("tiktok-report.json", `{
	"type": "object",
	"required": ["list"],
	"properties": {
		"list": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["dimensions", "metrics"],
				"properties": {
					"dimensions": {
						"type": "object",
						"required": ["ad_id", "stat_time_day"],
						"properties": {
							"ad_id": {"type": "string"},
							"stat_time_day": {"type": "string"}
						}
					},
					"metrics": {
						"type": "object",
						"required": ["impressions", "spend"],
						"properties": {
							"impressions": {"type": "string"},
							"spend": {"type": "string"},
							"clicks": {"type": "string"}
						}
					}
				}
			}
		}
	}
}`)
