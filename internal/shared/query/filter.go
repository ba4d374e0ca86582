package query

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"nemt-rides/internal/shared/apperrors"
	"nemt-rides/internal/shared/validation"
)

const dateOnly = "2006-01-02"

// Spec is the static query surface of one resource: which parameters
// filter on which columns, which columns free-text search covers, and
// the default ordering. Resolved once at package init, never per request.
type Spec struct {
	// Filterable maps a query parameter to the column it matches exactly.
	Filterable map[string]string
	// UUIDFilter is like Filterable for uuid columns; values are
	// validated before they reach the database.
	UUIDFilter map[string]string
	// BoolFilter is like Filterable for boolean columns.
	BoolFilter map[string]string
	// Searchable lists the columns the search parameter scans.
	Searchable []string
	// DateColumn is the timestamp column bounded by start_date/end_date.
	DateColumn string
	// DefaultSort is the ORDER BY fragment used unless overridden.
	DefaultSort string
}

// Clauses accumulates WHERE fragments with positional arguments, ready
// to be appended to a base SELECT.
type Clauses struct {
	Where   []string
	Args    []interface{}
	OrderBy string
}

// And appends a condition. The format string uses %s verbs, one per
// argument; each is replaced with the next $n placeholder.
func (c *Clauses) And(format string, args ...interface{}) {
	ph := make([]interface{}, len(args))
	for i, a := range args {
		c.Args = append(c.Args, a)
		ph[i] = fmt.Sprintf("$%d", len(c.Args))
	}
	c.Where = append(c.Where, fmt.Sprintf(format, ph...))
}

// WhereSQL renders the accumulated conditions, with a leading space, or
// returns the empty string when there are none.
func (c *Clauses) WhereSQL() string {
	if len(c.Where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.Where, " AND ")
}

// LimitOffset renders a LIMIT/OFFSET tail, appending both values as
// arguments.
func (c *Clauses) LimitOffset(limit, offset int) string {
	c.Args = append(c.Args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(c.Args)-1, len(c.Args))
}

// Build translates raw query parameters into clauses, composing filter,
// then search, then sort. Parameter names the spec does not recognize
// are ignored; recognized parameters with values that fail to parse
// produce a ValidationError naming the parameter.
func (s Spec) Build(params url.Values) (*Clauses, error) {
	c := &Clauses{OrderBy: s.DefaultSort}

	for param, column := range s.Filterable {
		if v := params.Get(param); v != "" {
			c.And(column+" = %s", v)
		}
	}

	for param, column := range s.UUIDFilter {
		if v := params.Get(param); v != "" {
			if err := validation.ValidateUUID(v); err != nil {
				return nil, apperrors.Validation(param, "must be a valid UUID")
			}
			c.And(column+" = %s", v)
		}
	}

	for param, column := range s.BoolFilter {
		if v := params.Get(param); v != "" {
			b, err := parseBool(v)
			if err != nil {
				return nil, apperrors.Validation(param, "must be a boolean value")
			}
			c.And(column+" = %s", b)
		}
	}

	if s.DateColumn != "" {
		start, _, err := parseDateParam(params, "start_date")
		if err != nil {
			return nil, err
		}
		if start != nil {
			c.And(s.DateColumn+" >= %s", *start)
		}

		end, exclusive, err := parseDateParam(params, "end_date")
		if err != nil {
			return nil, err
		}
		if end != nil {
			op := "<="
			if exclusive {
				op = "<"
			}
			c.And(s.DateColumn+" "+op+" %s", *end)
		}
	}

	if search := params.Get("search"); search != "" && len(s.Searchable) > 0 {
		pattern := "%" + escapeLike(search) + "%"
		parts := make([]string, len(s.Searchable))
		for i, column := range s.Searchable {
			c.Args = append(c.Args, pattern)
			parts[i] = fmt.Sprintf("%s ILIKE $%d", column, len(c.Args))
		}
		c.Where = append(c.Where, "("+strings.Join(parts, " OR ")+")")
	}

	return c, nil
}

// parseDateParam reads a date-or-timestamp parameter. Both bounds are
// inclusive; a bare end_date covers the whole named day, expressed as
// an exclusive next-midnight bound, while an RFC3339 end_date keeps the
// exact instant with <=.
func parseDateParam(params url.Values, name string) (*time.Time, bool, error) {
	v := params.Get(name)
	if v == "" {
		return nil, false, nil
	}

	if t, err := time.Parse(dateOnly, v); err == nil {
		if name == "end_date" {
			t = t.AddDate(0, 0, 1)
			return &t, true, nil
		}
		return &t, false, nil
	}

	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return &t, false, nil
	}

	return nil, false, apperrors.Validation(name, "must be a date (2006-01-02) or RFC3339 timestamp")
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", v)
}

// escapeLike neutralizes LIKE metacharacters in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
