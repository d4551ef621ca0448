package sfcore

import (
	"fmt"
	"strings"
)

// BuildQuery assembles a SOQL SELECT for the given object, field list, and
// row limit. A non-positive limit omits the LIMIT clause (used by export).
func BuildQuery(objectType ObjectType, fields []string, limit int) string {
	if len(fields) == 0 {
		fields = objectType.QueryFields()
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(fields, ", "), objectType)
	if limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, limit)
	}
	return query
}
