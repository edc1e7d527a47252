package ads

// Batch is one element of a SearchStream response
type Batch struct {
	Results   []Row  `json:"results"`
	FieldMask string `json:"fieldMask"`
	RequestID string `json:"requestId"`
}

// Row is a single GoogleAdsRow. Only the campaign resource is modeled.
type Row struct {
	Campaign *Campaign `json:"campaign,omitempty"`
}

// Campaign holds the selected campaign fields. The REST API encodes int64 values as strings.
type Campaign struct {
	ResourceName string `json:"resourceName"`
	ID           int64  `json:"id,string"`
	Name         string `json:"name"`
}
