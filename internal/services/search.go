package services

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// RecordKind selects which table set a search or data fetch runs against.
// Dispatch is an explicit switch, never reflection.
type RecordKind string

const (
	KindPart         RecordKind = "part"
	KindUser         RecordKind = "user"
	KindCheckout     RecordKind = "checkout"
	KindManufacturer RecordKind = "manufacturer"
)

// Record is one search hit: the key the rest of the engine resolves (UPC,
// user id, manufacturer name) plus display text so callers don't need a
// second round trip to render a list.
type Record struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// searchTarget describes one searchable record kind: how to build the joined
// row source, which columns a filter may enable, and the key/label columns.
// Column names only ever come from these fixed allowlists; caller filter keys
// are looked up here and every comparison value is a bound parameter.
type searchTarget struct {
	key     string
	label   string
	columns map[string]bool
	apply   func(db *gorm.DB) *gorm.DB
}

var searchTargets = map[RecordKind]searchTarget{
	KindPart: {
		key:   "part_upc",
		label: "description",
		columns: map[string]bool{
			"part_upc":    true,
			"placement":   true,
			"mfr_pn":      true,
			"mfr_name":    true,
			"description": true,
			"url":         true,
		},
		apply: func(db *gorm.DB) *gorm.DB {
			return db.Table("parts").
				Joins("JOIN manufacturers ON parts.mfr_id = manufacturers.mfr_id")
		},
	},
	KindUser: {
		key:   "user_id",
		label: "first_name || ' ' || last_name",
		columns: map[string]bool{
			"user_id":    true,
			"first_name": true,
			"last_name":  true,
			"email":      true,
		},
		apply: func(db *gorm.DB) *gorm.DB {
			return db.Table("users")
		},
	},
	KindCheckout: {
		key:   "checked_out_part",
		label: "first_name || ' ' || last_name",
		columns: map[string]bool{
			"checked_out_part": true,
			"current_holder":   true,
			"first_name":       true,
			"last_name":        true,
			"description":      true,
			"placement":        true,
		},
		apply: func(db *gorm.DB) *gorm.DB {
			return db.Table("part_locations").
				Joins("JOIN parts ON part_locations.checked_out_part = parts.part_upc").
				Joins("JOIN users ON part_locations.current_holder = users.user_id")
		},
	},
	KindManufacturer: {
		key:   "mfr_name",
		label: "mfr_name",
		columns: map[string]bool{
			"mfr_id":          true,
			"mfr_name":        true,
			"number_of_parts": true,
		},
		apply: func(db *gorm.DB) *gorm.DB {
			return db.Table("manufacturers")
		},
	},
}

// Search runs the tokenized multi-field engine: the query is split on
// whitespace, each token is matched case-insensitively (substring) against
// every enabled column (OR), and the per-token hit sets are intersected
// (AND across words). An empty query returns everything the filters admit;
// an all-false filter set with a non-empty query matches nothing. ErrNoMatch
// stands in for the empty result.
func (s *inventoryService) Search(kind RecordKind, query string, filters map[string]bool) ([]Record, error) {
	target, ok := searchTargets[kind]
	if !ok {
		return nil, ErrUnknownColumn
	}

	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		// No text constraint: a single pass over the whole table.
		tokens = []string{""}
	}

	var results []Record
	seen := make(map[string]bool)
	for i, token := range tokens {
		hits, err := s.searchWord(target, token, filters)
		if err != nil {
			return nil, err
		}
		if len(hits) == 0 {
			return nil, ErrNoMatch
		}

		if i == 0 {
			results = hits
			continue
		}

		// Intersect: keep only records every token matched.
		for k := range seen {
			delete(seen, k)
		}
		for _, hit := range hits {
			seen[hit.Key] = true
		}
		kept := results[:0]
		for _, rec := range results {
			if seen[rec.Key] {
				kept = append(kept, rec)
			}
		}
		results = kept
	}

	if len(results) == 0 {
		return nil, ErrNoMatch
	}
	return results, nil
}

// searchWord evaluates a single token against every enabled column of the
// target. A token that parses as an integer is renormalized first so "007"
// and "7" are the same numeric token. No enabled columns means the predicate
// is vacuous and matches nothing, never everything.
func (s *inventoryService) searchWord(target searchTarget, token string, filters map[string]bool) ([]Record, error) {
	var conds []string
	var args []interface{}

	if n, err := strconv.ParseUint(token, 10, 64); err == nil {
		token = strconv.FormatUint(n, 10)
	}

	for column, enabled := range filters {
		if !enabled {
			continue
		}
		if !target.columns[column] {
			return nil, ErrUnknownColumn
		}
		conds = append(conds, "lower(CAST("+column+" AS varchar)) LIKE ?")
		args = append(args, "%"+strings.ToLower(token)+"%")
	}
	if len(conds) == 0 {
		return nil, nil
	}

	q := target.apply(s.db).
		Select(target.key + " AS key, " + target.label + " AS label").
		Where(strings.Join(conds, " OR "), args...).
		Order(target.key)

	var rows []Record
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
