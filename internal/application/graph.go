package application

import (
	"math/rand/v2"

	"github.com/oksasatya/hobbylink/internal/domain/entity"
)

// Initial canvas spread for freshly projected nodes; the client lays the
// graph out properly after the first render.
const (
	nodeSpreadX = 600
	nodeSpreadY = 400
)

// canonicalPair orders two user ids lexicographically. Friendships are
// undirected, so the ordered pair is the identity of an edge.
func canonicalPair(a, b string) (lo, hi string) {
	if a < b {
		return a, b
	}
	return b, a
}

func edgeKey(a, b string) string {
	lo, hi := canonicalPair(a, b)
	return lo + "-" + hi
}

// BuildGraph projects a user snapshot into the node/edge view. It is pure:
// no store access, no mutation of the input.
//
// Every friendship appears in both users' friend sets, so a naive scan would
// emit each edge twice. Edges are keyed by their canonical pair and emitted
// once, with ids that are stable across repeated projections of the same
// graph regardless of scan order.
func BuildGraph(users []*entity.User) *entity.Graph {
	byID := make(map[string]*entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	graph := &entity.Graph{
		Nodes: make([]entity.GraphNode, 0, len(users)),
		Edges: []entity.GraphEdge{},
	}
	seen := make(map[string]struct{})

	for _, u := range users {
		graph.Nodes = append(graph.Nodes, entity.GraphNode{
			ID: u.ID,
			Data: entity.GraphNodeData{
				Username:        u.Username,
				Age:             u.Age,
				Hobbies:         u.Hobbies,
				PopularityScore: u.PopularityScore,
			},
			Position: entity.GraphPosition{
				X: rand.Float64() * nodeSpreadX,
				Y: rand.Float64() * nodeSpreadY,
			},
		})

		for _, friendID := range u.Friends {
			if _, ok := byID[friendID]; !ok {
				// dangling reference, no node to attach the edge to
				continue
			}
			key := edgeKey(u.ID, friendID)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			lo, hi := canonicalPair(u.ID, friendID)
			graph.Edges = append(graph.Edges, entity.GraphEdge{
				ID:     "e-" + key,
				Source: lo,
				Target: hi,
				Type:   "default",
			})
		}
	}

	return graph
}
