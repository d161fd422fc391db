package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:191"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	ParentID    *uint  `json:"parentId" gorm:"index"`
}

// IsDescendant reports whether ancestorID appears on nodeID's parent
// chain. The walk is iterative with a visited set, so malformed data
// containing a cycle terminates instead of looping. A missing or broken
// parent reference ends the walk as "not a descendant".
func IsDescendant(categories []Category, ancestorID, nodeID uint) bool {
	byID := make(map[uint]Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}

	visited := make(map[uint]bool)
	current, ok := byID[nodeID]
	for ok {
		if current.ParentID == nil {
			return false
		}
		parentID := *current.ParentID
		if parentID == ancestorID {
			return true
		}
		if visited[parentID] {
			return false
		}
		visited[parentID] = true
		current, ok = byID[parentID]
	}
	return false
}

// ValidParents returns the categories that may be assigned as parent of
// the given category: everything except itself and its descendants. The
// second return value reports whether categoryID exists in the set.
func ValidParents(categories []Category, categoryID uint) ([]Category, bool) {
	found := false
	options := make([]Category, 0, len(categories))
	for _, candidate := range categories {
		if candidate.ID == categoryID {
			found = true
			continue
		}
		if IsDescendant(categories, categoryID, candidate.ID) {
			continue
		}
		options = append(options, candidate)
	}
	return options, found
}
