package workflowy

import "github.com/handlebauer/workflowy-scraper/internal/markup"

// CountNodes returns the number of nodes in the forest, descendants included.
func CountNodes(roots []*Node) int {
	count := 0
	for _, node := range roots {
		count++
		count += CountNodes(node.Children)
	}
	return count
}

// WalkNodes calls visit for every node in depth-first pre-order. Roots are
// at depth 0.
func WalkNodes(roots []*Node, visit func(node *Node, depth int)) {
	walkNodes(roots, visit, 0)
}

func walkNodes(nodes []*Node, visit func(node *Node, depth int), depth int) {
	for _, node := range nodes {
		visit(node, depth)
		walkNodes(node.Children, visit, depth+1)
	}
}

// FindAuxTree returns the first auxiliary tree whose root name, with markup
// stripped, equals name.
func FindAuxTree(data *InitData, name string) (*AuxTreeInfo, bool) {
	infos := data.ProjectTreeData.AuxiliaryProjectTreeInfos
	for i := range infos {
		if infos[i].RootProject == nil {
			continue
		}
		if markup.Strip(infos[i].RootProject.Name) == name {
			return &infos[i], true
		}
	}
	return nil, false
}

// ListAuxTreeNames returns the display names of all auxiliary trees in
// payload order.
func ListAuxTreeNames(data *InitData) []string {
	infos := data.ProjectTreeData.AuxiliaryProjectTreeInfos
	names := make([]string, 0, len(infos))
	for i := range infos {
		name := ""
		if infos[i].RootProject != nil {
			name = markup.Strip(infos[i].RootProject.Name)
		}
		names = append(names, name)
	}
	return names
}

// TreeSummary is the display name and node count of one auxiliary tree.
type TreeSummary struct {
	Name  string `json:"name"`
	Nodes int    `json:"nodes"`
}

// SummarizeAuxTrees counts the nodes of every auxiliary tree that has a root
// project, root included, in payload order.
func SummarizeAuxTrees(data *InitData) []TreeSummary {
	infos := data.ProjectTreeData.AuxiliaryProjectTreeInfos
	summaries := make([]TreeSummary, 0, len(infos))
	for i := range infos {
		if infos[i].RootProject == nil {
			continue
		}
		summaries = append(summaries, TreeSummary{
			Name:  markup.Strip(infos[i].RootProject.Name),
			Nodes: CountNodes([]*Node{infos[i].Root()}),
		})
	}
	return summaries
}
