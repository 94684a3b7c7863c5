package admin

import (
	"strings"

	"gorm.io/gorm"

	"goblog/helper"
)

// Lister renders any registered entity's list screen from its config:
// exact-match filters, case-insensitive search across the declared fields,
// declared ordering and clamped pagination.
type Lister struct {
	db       *gorm.DB
	registry Registry
}

func NewLister(db *gorm.DB, registry Registry) *Lister {
	return &Lister{db: db, registry: registry}
}

// Filters and search terms come in as plain query parameters; only field
// names declared in the config are honored, values are always bound.
func (l *Lister) List(entity string, filters map[string]string, search, rawPage string) ([]map[string]interface{}, helper.Page, bool, error) {
	cfg, ok := l.registry.Get(entity)
	if !ok {
		return nil, helper.Page{}, false, nil
	}

	query := l.db.Model(cfg.Model)

	for _, field := range cfg.ListFilter {
		if value, present := filters[field]; present && value != "" {
			query = query.Where(field+" = ?", value)
		}
	}

	if search != "" && len(cfg.SearchFields) > 0 {
		like := "%" + strings.ToLower(search) + "%"
		clauses := make([]string, 0, len(cfg.SearchFields))
		args := make([]interface{}, 0, len(cfg.SearchFields))
		for _, field := range cfg.SearchFields {
			clauses = append(clauses, "LOWER("+field+") LIKE ?")
			args = append(args, like)
		}
		query = query.Where(strings.Join(clauses, " OR "), args...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, helper.Page{}, true, err
	}

	page := helper.Paginate(rawPage, cfg.PageSize, total)

	var rows []map[string]interface{}
	err := query.
		Select(cfg.ListDisplay).
		Order(strings.Join(cfg.Ordering, ", ")).
		Offset(page.Offset()).Limit(page.Size).
		Find(&rows).Error
	if err != nil {
		return nil, helper.Page{}, true, err
	}

	return rows, page, true, nil
}
