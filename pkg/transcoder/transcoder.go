// Package transcoder renames record keys between the domain shape (camelCase)
// and the store shape (snake_case).
//
// The generic rule is a mechanical case change applied key by key. An ordered
// table of per-entity overrides is consulted first; the first matching rule
// wins. Keys with no rule pass through the generic rule, so store columns the
// domain does not model survive the trip in both directions.
package transcoder

import (
	"strings"
	"time"
	"unicode"

	"go-hiring-sync/internal/domain"
)

// TimeOfDayLayout is the layout of the interview `time` column.
const TimeOfDayLayout = "15:04:05.000"

// DateLayout is a bare calendar date as some stores return it.
const DateLayout = "2006-01-02"

// rule rewrites one key. entity "" matches every entity type. When apply is
// nil the value is copied under to; otherwise apply writes whatever it needs
// (possibly nothing) into dst and to only names the primary target.
type rule struct {
	entity domain.EntityType
	from   string
	to     string
	when   func(src domain.Record) bool
	apply  func(src domain.Record, v any, dst domain.Record)
}

func (r rule) matches(entity domain.EntityType, key string, src domain.Record) bool {
	if r.from != key {
		return false
	}
	if r.entity != "" && r.entity != entity {
		return false
	}
	return r.when == nil || r.when(src)
}

var storeRules = []rule{
	{entity: domain.EntityInterviews, from: "scheduledAt", to: "date", apply: fanOutSchedule},
	{entity: domain.EntityInterviews, from: "time", when: has("scheduledAt"), apply: func(domain.Record, any, domain.Record) {}},
	{entity: domain.EntityInterviews, from: "panelType", to: "type"},
	{entity: domain.EntityJobs, from: "employmentType", to: "type"},
	{entity: domain.EntityCandidates, from: "appliedAt", to: "applied_date"},
	{entity: domain.EntityAuditLog, from: "entity", to: "entity_type"},
}

var domainRules = []rule{
	{entity: domain.EntityInterviews, from: "date", to: "scheduledAt", apply: joinSchedule},
	{entity: domain.EntityInterviews, from: "type", to: "panelType"},
	{entity: domain.EntityJobs, from: "type", to: "employmentType"},
	{entity: domain.EntityJobs, from: "requirements", to: "skills", when: lacks("skills")},
	{entity: domain.EntityCandidates, from: "applied_date", to: "appliedAt"},
	{entity: domain.EntityAuditLog, from: "entity_type", to: "entity"},
}

// ToStore transcodes a domain-shape record into store shape.
func ToStore(entity domain.EntityType, rec domain.Record) domain.Record {
	return transcode(entity, rec, storeRules, SnakeCase)
}

// ToDomain transcodes a store-shape record into domain shape.
func ToDomain(entity domain.EntityType, rec domain.Record) domain.Record {
	return transcode(entity, rec, domainRules, CamelCase)
}

// StoreColumn returns the store column a single domain field maps to. Fan-out
// fields report their primary column.
func StoreColumn(entity domain.EntityType, field string) string {
	for _, r := range storeRules {
		if r.matches(entity, field, nil) {
			return r.to
		}
	}
	return SnakeCase(field)
}

func transcode(entity domain.EntityType, rec domain.Record, rules []rule, generic func(string) string) domain.Record {
	if rec == nil {
		return nil
	}
	out := make(domain.Record, len(rec))
	for key, v := range rec {
		applied := false
		for _, r := range rules {
			if !r.matches(entity, key, rec) {
				continue
			}
			if r.apply != nil {
				r.apply(rec, v, out)
			} else {
				out[r.to] = v
			}
			applied = true
			break
		}
		if !applied {
			out[generic(key)] = v
		}
	}
	return out
}

func has(key string) func(domain.Record) bool {
	return func(src domain.Record) bool {
		_, ok := src[key]
		return ok
	}
}

func lacks(key string) func(domain.Record) bool {
	return func(src domain.Record) bool {
		_, ok := src[key]
		return !ok
	}
}

// fanOutSchedule splits one timestamp into the `date` and `time` columns,
// both normalized to UTC. Values that are not timestamps are copied into both.
func fanOutSchedule(_ domain.Record, v any, dst domain.Record) {
	switch t := v.(type) {
	case time.Time:
		dst["date"] = t.UTC().Format(time.RFC3339Nano)
		dst["time"] = t.UTC().Format(TimeOfDayLayout)
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			dst["date"] = parsed.UTC().Format(time.RFC3339Nano)
			dst["time"] = parsed.UTC().Format(TimeOfDayLayout)
			return
		}
		dst["date"] = t
		dst["time"] = t
	default:
		dst["date"] = v
		dst["time"] = v
	}
}

// joinSchedule rebuilds scheduledAt from `date`. A full timestamp is used as
// is; a bare calendar date is combined with the `time` column in UTC. The
// `time` key itself passes through under the generic rule.
func joinSchedule(src domain.Record, v any, dst domain.Record) {
	switch d := v.(type) {
	case time.Time:
		u := d.UTC()
		if tod, ok := timeOfDay(src); ok && u.Equal(u.Truncate(24*time.Hour)) {
			dst["scheduledAt"] = combine(u, tod).Format(time.RFC3339Nano)
			return
		}
		dst["scheduledAt"] = u.Format(time.RFC3339Nano)
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, d); err == nil {
			dst["scheduledAt"] = parsed.UTC().Format(time.RFC3339Nano)
			return
		}
		if day, err := time.Parse(DateLayout, d); err == nil {
			if tod, ok := timeOfDay(src); ok {
				dst["scheduledAt"] = combine(day, tod).Format(time.RFC3339Nano)
				return
			}
			dst["scheduledAt"] = day.UTC().Format(time.RFC3339Nano)
			return
		}
		dst["scheduledAt"] = d
	default:
		dst["scheduledAt"] = v
	}
}

func timeOfDay(src domain.Record) (time.Duration, bool) {
	s, ok := src["time"].(string)
	if !ok || s == "" {
		return 0, false
	}
	for _, layout := range []string{TimeOfDayLayout, "15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second +
				time.Duration(t.Nanosecond()), true
		}
	}
	return 0, false
}

func combine(day time.Time, tod time.Duration) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Add(tod)
}

// SnakeCase converts medial capitals to underscore-separated lower case:
// "candidateName" -> "candidate_name".
func SnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CamelCase converts underscore-separated keys back: "candidate_name" ->
// "candidateName". Only an underscore followed by a lower-case letter is
// folded, so keys already in camelCase are left alone.
func CamelCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '_' && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			b.WriteRune(unicode.ToUpper(runes[i+1]))
			i++
			continue
		}
		b.WriteRune(runes[i])
	}
	return b.String()
}
