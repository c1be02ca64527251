package specification

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// FullTextQuery matches rows whose concatenated text columns satisfy a
// Postgres websearch query, ranked best first.
type FullTextQuery struct {
	Columns []string
	Query   string
}

func (s FullTextQuery) document() string {
	parts := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		parts[i] = fmt.Sprintf("coalesce(%s, '')", c)
	}
	return fmt.Sprintf("to_tsvector('english', %s)", strings.Join(parts, " || ' ' || "))
}

func (s FullTextQuery) Apply(db *gorm.DB) *gorm.DB {
	doc := s.document()
	return db.
		Select(fmt.Sprintf("*, ts_rank(%s, websearch_to_tsquery('english', ?)) AS rank", doc), s.Query).
		Where(fmt.Sprintf("%s @@ websearch_to_tsquery('english', ?)", doc), s.Query).
		Order("rank DESC")
}

// PatternQuery matches rows where any column contains any of the given
// fragments. Fragments must already be escaped with EscapeLike so user input
// matches literally.
type PatternQuery struct {
	Columns   []string
	Fragments []string
}

func (s PatternQuery) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Columns) == 0 || len(s.Fragments) == 0 {
		return db
	}
	var conds []string
	var vars []interface{}
	for _, col := range s.Columns {
		for _, frag := range s.Fragments {
			conds = append(conds, fmt.Sprintf("%s ILIKE ?", col))
			vars = append(vars, "%"+frag+"%")
		}
	}
	return db.Where(strings.Join(conds, " OR "), vars...)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters so the fragment matches literally.
func EscapeLike(fragment string) string {
	return likeEscaper.Replace(fragment)
}
