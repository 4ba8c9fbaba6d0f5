package application

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/hobbylink/internal/domain/entity"
)

func TestBuildGraphDedupesEdges(t *testing.T) {
	users := []*entity.User{
		{ID: "b", Username: "Bob", Friends: []string{"a"}},
		{ID: "a", Username: "Alice", Friends: []string{"b"}},
	}

	g := BuildGraph(users)
	require.Len(t, g.Nodes, 2)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "e-a-b", g.Edges[0].ID)
	assert.Equal(t, "a", g.Edges[0].Source)
	assert.Equal(t, "b", g.Edges[0].Target)

	// same graph, opposite scan order, identical edge identity
	slices.Reverse(users)
	g2 := BuildGraph(users)
	require.Len(t, g2.Edges, 1)
	assert.Equal(t, g.Edges[0].ID, g2.Edges[0].ID)
	assert.Equal(t, g.Edges[0].Source, g2.Edges[0].Source)
	assert.Equal(t, g.Edges[0].Target, g2.Edges[0].Target)
}

func TestBuildGraphSkipsDanglingReferences(t *testing.T) {
	users := []*entity.User{
		{ID: "a", Username: "Alice", Friends: []string{"ghost"}},
	}

	g := BuildGraph(users)
	assert.Len(t, g.Nodes, 1)
	assert.Empty(t, g.Edges)
}

func TestBuildGraphNodeData(t *testing.T) {
	users := []*entity.User{
		{ID: "a", Username: "Alice", Age: 25, Hobbies: []string{"Reading"}, PopularityScore: 1.5},
	}

	g := BuildGraph(users)
	require.Len(t, g.Nodes, 1)
	n := g.Nodes[0]
	assert.Equal(t, "a", n.ID)
	assert.Equal(t, "Alice", n.Data.Username)
	assert.Equal(t, 25, n.Data.Age)
	assert.Equal(t, []string{"Reading"}, n.Data.Hobbies)
	assert.Equal(t, 1.5, n.Data.PopularityScore)
	assert.GreaterOrEqual(t, n.Position.X, 0.0)
	assert.Less(t, n.Position.X, float64(nodeSpreadX))
	assert.GreaterOrEqual(t, n.Position.Y, 0.0)
	assert.Less(t, n.Position.Y, float64(nodeSpreadY))
}

func TestBuildGraphEmptySnapshot(t *testing.T) {
	g := BuildGraph(nil)
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
}

func TestBuildGraphTriangle(t *testing.T) {
	users := []*entity.User{
		{ID: "a", Friends: []string{"b", "c"}},
		{ID: "b", Friends: []string{"a", "c"}},
		{ID: "c", Friends: []string{"a", "b"}},
	}

	g := BuildGraph(users)
	assert.Len(t, g.Nodes, 3)
	require.Len(t, g.Edges, 3)

	ids := make([]string, 0, len(g.Edges))
	for _, e := range g.Edges {
		ids = append(ids, e.ID)
	}
	slices.Sort(ids)
	assert.Equal(t, []string{"e-a-b", "e-a-c", "e-b-c"}, ids)
}
