package export

import "github.com/handlebauer/workflowy-scraper/internal/workflowy"

// CollectAuxRoots returns one root per auxiliary (shared) tree, each with its
// top-level children attached. Source nodes are not modified.
func CollectAuxRoots(data *workflowy.InitData) []*workflowy.Node {
	infos := data.ProjectTreeData.AuxiliaryProjectTreeInfos
	roots := make([]*workflowy.Node, 0, len(infos))
	for i := range infos {
		roots = append(roots, infos[i].Root())
	}
	return roots
}

// CollectAllRoots returns the main tree's top-level nodes followed by the
// auxiliary roots.
func CollectAllRoots(data *workflowy.InitData) []*workflowy.Node {
	main := data.ProjectTreeData.MainProjectTreeInfo.RootProjectChildren
	aux := CollectAuxRoots(data)

	roots := make([]*workflowy.Node, 0, len(main)+len(aux))
	roots = append(roots, main...)
	return append(roots, aux...)
}

// TotalNodeCount counts every node in the forest.
func TotalNodeCount(roots []*workflowy.Node) int {
	return workflowy.CountNodes(roots)
}
