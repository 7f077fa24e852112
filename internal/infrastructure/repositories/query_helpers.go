package repositories

// orderClause builds an ORDER BY fragment from an allow-listed sort field.
// Unknown sort fields and directions fall back to newest-first.
func orderClause(sort, direction string, allowed map[string]string) string {
	col, ok := allowed[sort]
	if !ok {
		col = allowed["created_at"]
	}
	dir := "DESC"
	if direction == "asc" {
		dir = "ASC"
	}
	return col + " " + dir
}
