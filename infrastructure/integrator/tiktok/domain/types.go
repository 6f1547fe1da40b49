package ttdomain

import jsoniter "github.com/json-iterator/go"

// Envelope é o invólucro padrão das respostas da API de negócios do TikTok.
// code diferente de zero é erro de aplicação mesmo com HTTP 200.
type Envelope struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Data    jsoniter.RawMessage `json:"data"`
}

// PageInfo é o bloco de paginação por página dos endpoints de listagem
type PageInfo struct {
	Page        int `json:"page"`
	PageSize    int `json:"page_size"`
	TotalNumber int `json:"total_number"`
	TotalPage   int `json:"total_page"`
}

// PageEnvelope extrai só o bloco de paginação de um data paginado
type PageEnvelope struct {
	PageInfo *PageInfo `json:"page_info,omitempty"`
}

type TokenData struct {
	AccessToken   string   `json:"access_token"`
	AdvertiserIDs []string `json:"advertiser_ids,omitempty"`
}

type UserInfoData struct {
	CoreUserID string `json:"core_user_id"`
}

type AdvertiserRef struct {
	AdvertiserID   string `json:"advertiser_id"`
	AdvertiserName string `json:"advertiser_name"`
}

type AdvertiserListData struct {
	List []AdvertiserRef `json:"list"`
}

type AdvertiserInfo struct {
	AdvertiserID string `json:"advertiser_id"`
	Name         string `json:"name"`
	Currency     string `json:"currency"`
}

type AdvertiserInfoData struct {
	List []AdvertiserInfo `json:"list"`
}

type Campaign struct {
	CampaignID      string `json:"campaign_id"`
	CampaignName    string `json:"campaign_name"`
	ObjectiveType   string `json:"objective_type,omitempty"`
	OperationStatus string `json:"operation_status,omitempty"`
}

type CampaignsPage struct {
	List     []Campaign `json:"list"`
	PageInfo *PageInfo  `json:"page_info,omitempty"`
}

type AdGroup struct {
	AdGroupID   string `json:"adgroup_id"`
	AdGroupName string `json:"adgroup_name"`
	CampaignID  string `json:"campaign_id"`
}

type AdGroupsPage struct {
	List     []AdGroup `json:"list"`
	PageInfo *PageInfo `json:"page_info,omitempty"`
}

type Ad struct {
	AdID      string `json:"ad_id"`
	AdName    string `json:"ad_name"`
	AdGroupID string `json:"adgroup_id"`
}

type AdsPage struct {
	List     []Ad      `json:"list"`
	PageInfo *PageInfo `json:"page_info,omitempty"`
}
