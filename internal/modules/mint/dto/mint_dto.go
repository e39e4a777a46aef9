package dto

type ConfigResponse struct {
	ContractAddress string `json:"contractAddress"`
	ChainID         int64  `json:"chainId"`
	PriceNavax      string `json:"priceNavax"`
	MaxSupply       int    `json:"maxSupply"`
}

type EligibilityResponse struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}
