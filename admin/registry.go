package admin

import "goblog/models"

// EntityConfig is the declarative admin description of one entity type:
// which fields the list screen shows, which can be filtered on, which are
// searchable and how rows are ordered.
type EntityConfig struct {
	Name         string
	Model        interface{}
	ListDisplay  []string
	ListFilter   []string
	SearchFields []string
	Ordering     []string
	PageSize     int
}

type Registry map[string]EntityConfig

// NewRegistry declares the back-office configuration for every managed
// entity.
func NewRegistry() Registry {
	return Registry{
		"posts": {
			Name:         "posts",
			Model:        &models.Post{},
			ListDisplay:  []string{"id", "title", "slug", "author_id", "publication_date", "status"},
			ListFilter:   []string{"status", "created_at", "publication_date", "author_id"},
			SearchFields: []string{"title", "body"},
			Ordering:     []string{"status ASC", "publication_date DESC"},
			PageSize:     20,
		},
		"comments": {
			Name:         "comments",
			Model:        &models.Comment{},
			ListDisplay:  []string{"id", "name", "email", "post_id", "created_at", "is_visible"},
			ListFilter:   []string{"is_visible", "created_at", "updated_at", "post_id"},
			SearchFields: []string{"name", "email", "body"},
			Ordering:     []string{"created_at DESC"},
			PageSize:     20,
		},
		"tags": {
			Name:         "tags",
			Model:        &models.Tag{},
			ListDisplay:  []string{"id", "name", "slug"},
			ListFilter:   []string{},
			SearchFields: []string{"name"},
			Ordering:     []string{"name ASC"},
			PageSize:     20,
		},
	}
}

func (r Registry) Get(name string) (EntityConfig, bool) {
	cfg, ok := r[name]
	return cfg, ok
}
