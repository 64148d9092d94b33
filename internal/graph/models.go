package graph

// EdgeKind is the relationship type between two entities.
type EdgeKind string

const (
	EdgeKindOwnership      EdgeKind = "ownership"
	EdgeKindDirectorship   EdgeKind = "directorship"
	EdgeKindAddressSharing EdgeKind = "address_sharing"
)

// ParseEdgeKind validates a raw edge kind string.
func ParseEdgeKind(s string) (EdgeKind, bool) {
	switch EdgeKind(s) {
	case EdgeKindOwnership, EdgeKindDirectorship, EdgeKindAddressSharing:
		return EdgeKind(s), true
	default:
		return "", false
	}
}

// Node is one entity in the relationship network. Degree and Centrality are
// computed here; RiskLevel is carried through untouched for presentation
// emphasis.
type Node struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Kind      string  `json:"kind"`
	Size      float64 `json:"size"`
	RiskScore float64 `json:"riskScore"`
	RiskLevel string  `json:"riskLevel"`

	Degree     int     `json:"degree"`
	Centrality float64 `json:"centrality"`
}

// Edge is one resolved relationship between two nodes. Strength lies in
// [0,1].
type Edge struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Kind     EdgeKind `json:"kind"`
	Strength float64  `json:"strength"`
	Active   bool     `json:"active"`
}

// Metrics aggregates the structural measures of the network.
type Metrics struct {
	TotalNodes int     `json:"totalNodes"`
	TotalEdges int     `json:"totalEdges"`
	Density    float64 `json:"density"`
	RiskScore  float64 `json:"riskScore"`
}

// Network is the annotated graph result.
type Network struct {
	Nodes   []Node  `json:"nodes"`
	Edges   []Edge  `json:"edges"`
	Metrics Metrics `json:"metrics"`
}
