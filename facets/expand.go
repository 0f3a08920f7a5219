package facets

import "marketplace/api/models"

// Expand returns the category ids a facet query is scoped to.
//
// An empty categoryID means the whole catalog and yields every id in
// categories. Otherwise the result is categoryID followed by all of its
// transitive descendants. The parent_id graph is not trusted to be acyclic,
// so the walk keeps a visited set and terminates on cycles.
func Expand(categoryID string, categories []models.Category) []string {
	if categoryID == "" {
		seen := make(map[string]struct{}, len(categories))
		ids := make([]string, 0, len(categories))
		for _, c := range categories {
			if _, dup := seen[c.ID]; dup {
				continue
			}
			seen[c.ID] = struct{}{}
			ids = append(ids, c.ID)
		}
		return ids
	}

	children := make(map[string][]string, len(categories))
	for _, c := range categories {
		if c.ParentID == nil {
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c.ID)
	}

	visited := map[string]struct{}{categoryID: {}}
	ids := []string{categoryID}
	stack := []string{categoryID}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, child := range children[current] {
			if _, ok := visited[child]; ok {
				continue
			}
			visited[child] = struct{}{}
			ids = append(ids, child)
			stack = append(stack, child)
		}
	}
	return ids
}
