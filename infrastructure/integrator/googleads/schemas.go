package googleads

import "github.com/vfg2006/channel-sync-api/internal/pagination"

// Páginas de googleAds:search: "results" é omitido quando a página é vazia,
// então nenhum schema o exige

var customerSearchSchema = pagination.MustCompileSchema("googleads-customer.json", `{
	"type": "object",
	"properties": {
		"results": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["customer"],
				"properties": {
					"customer": {
						"type": "object",
						"required": ["id"],
						"properties": {
							"id": {"type": "string"},
							"descriptiveName": {"type": "string"},
							"currencyCode": {"type": "string"}
						}
					}
				}
			}
		},
		"nextPageToken": {"type": "string"}
	}
}`)

var campaignsSearchSchema = pagination.MustCompileSchema("googleads-campaigns.json", `{
	"type": "object",
	"properties": {
		"results": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["campaign"],
				"properties": {
					"campaign": {
						"type": "object",
						"required": ["id", "name"],
						"properties": {
							"id": {"type": "string"},
							"name": {"type": "string"},
							"status": {"type": "string"}
						}
					}
				}
			}
		},
		"nextPageToken": {"type": "string"}
	}
}`)

var adGroupsSearchSchema = pagination.MustCompileSchema("googleads-adgroups.json", `{
	"type": "object",
	"properties": {
		"results": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["adGroup", "campaign"],
				"properties": {
					"adGroup": {
						"type": "object",
						"required": ["id", "name"],
						"properties": {
							"id": {"type": "string"},
							"name": {"type": "string"}
						}
					},
					"campaign": {
						"type": "object",
						"required": ["id"],
						"properties": {
							"id": {"type": "string"}
						}
					}
				}
			}
		},
		"nextPageToken": {"type": "string"}
	}
}`)

var adsSearchSchema = pagination.MustCompileSchema("googleads-ads.json", `{
	"type": "object",
	"properties": {
		"results": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["adGroupAd", "adGroup"],
				"properties": {
					"adGroupAd": {
						"type": "object",
						"required": ["ad"],
						"properties": {
							"ad": {
								"type": "object",
								"required": ["id"],
								"properties": {
									"id": {"type": "string"},
									"name": {"type": "string"}
								}
							}
						}
					},
					"adGroup": {
						"type": "object",
						"required": ["id"],
						"properties": {
							"id": {"type": "string"}
						}
					}
				}
			}
		},
		"nextPageToken": {"type": "string"}
	}
}`)

var insightsSearchSchema = pagination.MustCompileSchema("googleads-insights.json", `{
	"type": "object",
	"properties": {
		"results": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["adGroupAd", "segments", "metrics"],
				"properties": {
					"adGroupAd": {
						"type": "object",
						"required": ["ad"],
						"properties": {
							"ad": {
								"type": "object",
								"required": ["id"],
								"properties": {
									"id": {"type": "string"}
								}
							}
						}
					},
					"segments": {
						"type": "object",
						"required": ["date"],
						"properties": {
							"date": {"type": "string"},
							"device": {"type": "string"},
							"adNetworkType": {"type": "string"}
						}
					},
					"metrics": {
						"type": "object",
						"properties": {
							"impressions": {"type": "string"},
							"costMicros": {"type": "string"},
							"clicks": {"type": "string"}
						}
					}
				}
			}
		},
		"nextPageToken": {"type": "string"}
	}
}`)
