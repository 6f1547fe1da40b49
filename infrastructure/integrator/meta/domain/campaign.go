package metadomain

type Campaign struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Objective string `json:"objective,omitempty"`
	Status    string `json:"status,omitempty"`
}

type CampaignsPage struct {
	Data   []Campaign `json:"data"`
	Paging *Paging    `json:"paging,omitempty"`
}

type AdSet struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CampaignID string `json:"campaign_id"`
}

type AdSetsPage struct {
	Data   []AdSet `json:"data"`
	Paging *Paging `json:"paging,omitempty"`
}

type Ad struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	AdSetID  string      `json:"adset_id"`
	Creative *AdCreative `json:"creative,omitempty"`
}

type AdCreative struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

type AdsPage struct {
	Data   []Ad    `json:"data"`
	Paging *Paging `json:"paging,omitempty"`
}
