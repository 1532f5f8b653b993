// Package category arranges the store's flat category list into the
// parent/child hierarchy producers browse when labelling tasks.
package category

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Mo7amed-Sa3d/woo-bulk-uploader/internal/domain"
)

// Node is one category with its children, ordered by name.
type Node struct {
	ID       int
	Name     string
	Children []*Node
}

// BuildTree arranges categories under their parents. Categories whose
// parent is missing from the list are treated as roots so a truncated
// listing still renders.
func BuildTree(categories []domain.Category) []*Node {
	known := make(map[int]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}

	children := make(map[int][]domain.Category)
	for _, c := range categories {
		parent := c.Parent
		if !known[parent] {
			parent = 0
		}
		children[parent] = append(children[parent], c)
	}

	var build func(parent int) []*Node
	build = func(parent int) []*Node {
		cats := children[parent]
		sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })

		nodes := make([]*Node, 0, len(cats))
		for _, c := range cats {
			nodes = append(nodes, &Node{
				ID:       c.ID,
				Name:     c.Name,
				Children: build(c.ID),
			})
		}
		return nodes
	}

	return build(0)
}

// Flatten renders the tree as display lines, one category per line,
// indented two spaces per level: "  Name (ID: 7)".
func Flatten(tree []*Node) []string {
	var lines []string

	var walk func(nodes []*Node, level int)
	walk = func(nodes []*Node, level int) {
		for _, n := range nodes {
			lines = append(lines, fmt.Sprintf("%s%s (ID: %d)", strings.Repeat("  ", level), n.Name, n.ID))
			walk(n.Children, level+1)
		}
	}

	walk(tree, 0)
	return lines
}
