package postgres

import (
	"fmt"
	"strings"

	"eventlistings/internal/domain"
)

// predicate is a compiled WHERE clause with its positional arguments.
// The same predicate backs the count and page queries of one search.
type predicate struct {
	where string
	args  []interface{}
}

// sortColumns is the only source of ORDER BY text; caller input selects a key, never a column.
var sortColumns = map[domain.SortField]string{
	domain.SortDate:      "e.date",
	domain.SortPrice:     "e.price",
	domain.SortTitle:     "e.title",
	domain.SortCreatedAt: "e.created_at",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// compilePredicate translates f into parameterized SQL over the alias e (events).
func compilePredicate(f domain.EventFilter) predicate {
	var clauses []string
	var args []interface{}
	n := 1

	if !f.IncludeDrafts {
		clauses = append(clauses, fmt.Sprintf("e.status = $%d", n))
		args = append(args, domain.EventStatusPublished)
		n++
	}
	if f.Search != "" {
		clauses = append(clauses, fmt.Sprintf("(e.title ILIKE $%d OR e.location ILIKE $%d OR e.description ILIKE $%d)", n, n, n))
		args = append(args, "%"+likeEscaper.Replace(f.Search)+"%")
		n++
	}
	if f.GenreID != nil {
		clauses = append(clauses, fmt.Sprintf(genreSubquery, "g2.id", n))
		args = append(args, *f.GenreID)
		n++
	} else if f.GenreSlug != "" {
		clauses = append(clauses, fmt.Sprintf(genreSubquery, "g2.slug", n))
		args = append(args, f.GenreSlug)
		n++
	}
	if f.DateFrom != nil {
		clauses = append(clauses, fmt.Sprintf("e.date >= $%d::date", n))
		args = append(args, f.DateFrom.Format("2006-01-02"))
		n++
	}
	if f.DateTo != nil {
		clauses = append(clauses, fmt.Sprintf("e.date <= $%d::date", n))
		args = append(args, f.DateTo.Format("2006-01-02"))
		n++
	}
	if f.PriceMin != nil {
		clauses = append(clauses, fmt.Sprintf("e.price >= $%d", n))
		args = append(args, f.PriceMin.String())
		n++
	}
	if f.PriceMax != nil {
		clauses = append(clauses, fmt.Sprintf("e.price <= $%d", n))
		args = append(args, f.PriceMax.String())
		n++
	}
	if f.RequireCoordinates {
		clauses = append(clauses, "e.lat IS NOT NULL AND e.lng IS NOT NULL")
	}

	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}
	return predicate{where: where, args: args}
}

// genreSubquery matches events associated with a genre by the given genres column.
const genreSubquery = `e.id IN (
			SELECT eg2.event_id FROM event_genres eg2
			JOIN genres g2 ON g2.id = eg2.genre_id
			WHERE %s = $%d
		)`

// orderClause renders ORDER BY from the enum table with e.id as a stable tie-breaker.
func orderClause(sort domain.SortField, order domain.SortOrder) string {
	col, ok := sortColumns[sort]
	if !ok {
		col = sortColumns[domain.SortDate]
	}
	dir := "ASC"
	if order == domain.OrderDesc {
		dir = "DESC"
	}
	if sort == domain.SortDate {
		return fmt.Sprintf("ORDER BY %s %s NULLS LAST, e.time %s NULLS LAST, e.id ASC", col, dir, dir)
	}
	return fmt.Sprintf("ORDER BY %s %s, e.id ASC", col, dir)
}
