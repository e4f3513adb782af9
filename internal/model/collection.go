package model

type NFTCollection struct {
	PolicyID string `json:"policy_id"`
	Name     string `json:"name"`
}

type CollectionHolding struct {
	PolicyID string `json:"policy_id"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
}

type CreateCollectionRequest struct {
	PolicyID string `json:"policy_id"`
	Name     string `json:"name"`
}

type CreateCollectionResponse struct{}

type GetCollectionsRequest struct{}

type GetCollectionsResponse struct {
	Data []NFTCollection `json:"data"`
}

type DeleteCollectionRequest struct {
	PolicyID string `json:"policy_id"`
}

type DeleteCollectionResponse struct{}
