package meta

import "github.com/vfg2006/channel-sync-api/internal/pagination"

// Schemas estruturais das páginas da Graph API. Toda página é validada antes
// do mapeamento; uma página fora do shape aborta a sincronização da conta.

var adAccountsPageSchema = pagination.MustCompileSchema("meta-ad-accounts.json", `{
	"type": "object",
	"required": ["data"],
	"properties": {
		"data": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "account_id", "name"],
				"properties": {
					"id": {"type": "string"},
					"account_id": {"type": "string"},
					"name": {"type": "string"},
					"currency": {"type": "string"}
				}
			}
		}
	}
}`)

var campaignsPageSchema = pagination.MustCompileSchema("meta-campaigns.json", `{
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
					"status": {"type": "string"}
				}
			}
		}
	}
}`)

var adSetsPageSchema = pagination.MustCompileSchema("meta-adsets.json", `{
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

var adsPageSchema = pagination.MustCompileSchema("meta-ads.json", `{
	"type": "object",
	"required": ["data"],
	"properties": {
		"data": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name", "adset_id"],
				"properties": {
					"id": {"type": "string"},
					"name": {"type": "string"},
					"adset_id": {"type": "string"},
					"creative": {
						"type": "object",
						"required": ["id"],
						"properties": {
							"id": {"type": "string"},
							"name": {"type": "string"},
							"thumbnail_url": {"type": "string"}
						}
					}
				}
			}
		}
	}
}`)

var insightsPageSchema = pagination.MustCompileSchema("meta-insights.json", `{
	"type": "object",
	"required": ["data"],
	"properties": {
		"data": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["ad_id", "date_start"],
				"properties": {
					"ad_id": {"type": "string"},
					"date_start": {"type": "string"},
					"device_platform": {"type": "string"},
					"publisher_platform": {"type": "string"},
					"platform_position": {"type": "string"},
					"impressions": {"type": "string"},
					"spend": {"type": "string"},
					"clicks": {"type": "string"}
				}
			}
		}
	}
}`)
