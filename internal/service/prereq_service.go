package service

import "github.com/campusdash/course-api/internal/models"

// notFoundName labels prerequisite keys that point outside the loaded
// catalog; such references are not fatal.
const (
	notFoundName        = "Not found in catalog"
	notFoundDescription = "Course not found"
)

// PrereqService expands prerequisite keys into nested descriptive trees.
type PrereqService struct{}

// NewPrereqService constructs the service.
func NewPrereqService() *PrereqService {
	return &PrereqService{}
}

// Resolve builds the prerequisite subtree rooted at key. It returns nil
// when key is already on the current path, silently truncating cycles and
// self-references. The visited set is copied per branch so that sibling
// branches sharing a dependency (diamonds) each resolve fully.
func (s *PrereqService) Resolve(key string, catalog map[string]models.CatalogEntry, visited map[string]struct{}) *models.PrerequisiteNode {
	if _, onPath := visited[key]; onPath {
		return nil
	}

	entry, found := catalog[key]
	if !found {
		return &models.PrerequisiteNode{
			CourseKey:     key,
			Name:          notFoundName,
			Description:   notFoundDescription,
			Prerequisites: []models.PrerequisiteNode{},
		}
	}

	children := []models.PrerequisiteNode{}
	for _, prereqKey := range entry.Prerequisites {
		branch := make(map[string]struct{}, len(visited)+1)
		for k := range visited {
			branch[k] = struct{}{}
		}
		branch[key] = struct{}{}

		if child := s.Resolve(prereqKey, catalog, branch); child != nil {
			children = append(children, *child)
		}
	}

	return &models.PrerequisiteNode{
		CourseKey:     key,
		Name:          entry.Name,
		Description:   entry.Description,
		CreditHours:   entry.CreditHours,
		Prerequisites: children,
	}
}

// ResolveAll resolves each direct prerequisite key with a fresh per-call
// visited set, dropping truncated (nil) branches.
func (s *PrereqService) ResolveAll(keys []string, catalog map[string]models.CatalogEntry) []models.PrerequisiteNode {
	nodes := []models.PrerequisiteNode{}
	for _, key := range keys {
		if node := s.Resolve(key, catalog, make(map[string]struct{})); node != nil {
			nodes = append(nodes, *node)
		}
	}
	return nodes
}
