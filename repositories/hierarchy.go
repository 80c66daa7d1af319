package repositories

import (
	"sort"

	"github.com/snap-point/blog-api/models"
)

// PathSeparator joins ancestor names in a materialized path.
const PathSeparator = " > "

type HierarchyNode struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ParentID *uint  `json:"parentId"`
	Level    int    `json:"level"`
	Path     string `json:"path"`
}

// BuildHierarchy walks the category forest breadth-first from its roots,
// giving every node its depth and a "Root > Child" path, and returns the
// nodes sorted by path (byte order). Nodes that cannot be reached from a
// root, such as members of a parent cycle, are left out.
func BuildHierarchy(categories []models.Category) []HierarchyNode {
	children := make(map[uint][]models.Category)
	var queue []HierarchyNode

	for _, c := range categories {
		if c.ParentID == nil {
			queue = append(queue, HierarchyNode{
				ID:    c.ID,
				Name:  c.Name,
				Slug:  c.Slug,
				Level: 0,
				Path:  c.Name,
			})
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	visited := make(map[uint]bool, len(categories))
	nodes := make([]HierarchyNode, 0, len(categories))

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if visited[node.ID] {
			continue
		}
		visited[node.ID] = true
		nodes = append(nodes, node)

		for _, child := range children[node.ID] {
			parentID := node.ID
			queue = append(queue, HierarchyNode{
				ID:       child.ID,
				Name:     child.Name,
				Slug:     child.Slug,
				ParentID: &parentID,
				Level:    node.Level + 1,
				Path:     node.Path + PathSeparator + child.Name,
			})
		}
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Path < nodes[j].Path
	})
	return nodes
}
