package cluster

// EntityRef is an entity registered at an address, with its derived risk
// score on the 0-100 scale.
type EntityRef struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	RiskScore float64 `json:"riskScore"`
}

// AddressPoint is a geocoded registry address with the entities registered
// there. Lat/Lng are nil when the address could not be geocoded; such points
// are reported but never grouped.
type AddressPoint struct {
	ID        string      `json:"id"`
	Address   string      `json:"address"`
	Lat       *float64    `json:"lat"`
	Lng       *float64    `json:"lng"`
	Entities  []EntityRef `json:"entities"`
	RiskScore float64     `json:"riskScore"`
}

// Geocoded reports whether the point carries usable coordinates.
func (p AddressPoint) Geocoded() bool { return p.Lat != nil && p.Lng != nil }

// RegionSummary is a caller-supplied regional aggregate. Each one yields a
// cluster record regardless of member count.
type RegionSummary struct {
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	EntityCount int     `json:"entityCount"`
	AvgRisk     float64 `json:"avgRisk"`
}

// Coordinates is a lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Cluster is a group of addresses within the proximity radius of its seed.
type Cluster struct {
	ID           string      `json:"id"`
	SeedAddress  string      `json:"seedAddress"`
	Center       Coordinates `json:"center"`
	AddressIDs   []string    `json:"addressIds"`
	AddressCount int         `json:"addressCount"`
	EntityCount  int         `json:"entityCount"`
	RiskScore    int         `json:"riskScore"`
	Flags        []string    `json:"flags"`
}

// HeatmapPoint is one heatmap sample per geocoded address; intensity is the
// address risk scaled into [0,1].
type HeatmapPoint struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Intensity float64 `json:"intensity"`
}

// BoundingBox frames all geocoded addresses with a padding margin.
type BoundingBox struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLng float64 `json:"minLng"`
	MaxLng float64 `json:"maxLng"`
}

// Stats aggregates the analysis for the region summary header.
type Stats struct {
	TotalAddresses        int     `json:"totalAddresses"`
	HighRiskAddresses     int     `json:"highRiskAddresses"`
	ClusterCount          int     `json:"clusterCount"`
	AvgEntitiesPerAddress float64 `json:"avgEntitiesPerAddress"`
}

// Analysis is the self-contained clustering result. BoundingBox is nil when
// no input address carried coordinates.
type Analysis struct {
	AddressPoints []AddressPoint `json:"addressPoints"`
	Clusters      []Cluster      `json:"clusters"`
	HeatmapData   []HeatmapPoint `json:"heatmapData"`
	BoundingBox   *BoundingBox   `json:"boundingBox"`
	Stats         Stats          `json:"stats"`
}
