package entity

// Graph is the node/edge projection of the current user snapshot, shaped for
// a React Flow style client.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// GraphNode carries the display attributes of one user plus an initial canvas
// position. Layout is a client concern; the position only has to exist.
type GraphNode struct {
	ID       string        `json:"id"`
	Data     GraphNodeData `json:"data"`
	Position GraphPosition `json:"position"`
}

type GraphNodeData struct {
	Username        string   `json:"username"`
	Age             int      `json:"age"`
	Hobbies         []string `json:"hobbies"`
	PopularityScore float64  `json:"popularityScore"`
}

type GraphPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GraphEdge is one undirected friendship. Source and Target are ordered
// lexicographically so the same pair always yields the same edge id.
type GraphEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}
