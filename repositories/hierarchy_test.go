package repositories

import (
	"testing"

	"github.com/snap-point/blog-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v uint) *uint { return &v }

func TestBuildHierarchy(t *testing.T) {
	categories := []models.Category{
		{ID: 1, Name: "Root", Slug: "root"},
		{ID: 2, Name: "Child", Slug: "child", ParentID: ptr(1)},
		{ID: 3, Name: "Grandchild", Slug: "grandchild", ParentID: ptr(2)},
	}

	nodes := BuildHierarchy(categories)
	require.Len(t, nodes, 3)

	assert.Equal(t, uint(1), nodes[0].ID)
	assert.Equal(t, 0, nodes[0].Level)
	assert.Equal(t, "Root", nodes[0].Path)
	assert.Nil(t, nodes[0].ParentID)

	assert.Equal(t, uint(2), nodes[1].ID)
	assert.Equal(t, 1, nodes[1].Level)
	assert.Equal(t, "Root > Child", nodes[1].Path)
	require.NotNil(t, nodes[1].ParentID)
	assert.Equal(t, uint(1), *nodes[1].ParentID)

	assert.Equal(t, uint(3), nodes[2].ID)
	assert.Equal(t, 2, nodes[2].Level)
	assert.Equal(t, "Root > Child > Grandchild", nodes[2].Path)
}

func TestBuildHierarchySortsByPath(t *testing.T) {
	categories := []models.Category{
		{ID: 1, Name: "Tech"},
		{ID: 2, Name: "Art"},
		{ID: 3, Name: "Go", ParentID: ptr(1)},
		{ID: 4, Name: "Databases", ParentID: ptr(1)},
		{ID: 5, Name: "painting", ParentID: ptr(2)},
	}

	var paths []string
	for _, n := range BuildHierarchy(categories) {
		paths = append(paths, n.Path)
	}

	assert.Equal(t, []string{
		"Art",
		"Art > painting",
		"Tech",
		"Tech > Databases",
		"Tech > Go",
	}, paths)
}

func TestBuildHierarchySkipsUnreachable(t *testing.T) {
	categories := []models.Category{
		{ID: 1, Name: "Root"},
		// 2 and 3 point at each other and never reach a root
		{ID: 2, Name: "Loop A", ParentID: ptr(3)},
		{ID: 3, Name: "Loop B", ParentID: ptr(2)},
		// parent row missing entirely
		{ID: 4, Name: "Orphan", ParentID: ptr(99)},
	}

	nodes := BuildHierarchy(categories)
	require.Len(t, nodes, 1)
	assert.Equal(t, "Root", nodes[0].Path)
}

func TestBuildHierarchyEmpty(t *testing.T) {
	assert.Empty(t, BuildHierarchy(nil))
}
