package core

// Stats counts what happened to the rows of one run.
type Stats struct {
	Rows     int // rows seen, including skipped ones
	Headers  int // subcategories opened
	Entries  int // entries appended
	Replaced int // headers that replaced an existing subcategory
	Skipped  map[SkipReason]int
}

func newStats() Stats {
	return Stats{Skipped: make(map[SkipReason]int)}
}

func (s Stats) clone() Stats {
	out := s
	out.Skipped = make(map[SkipReason]int, len(s.Skipped))
	for k, v := range s.Skipped {
		out.Skipped[k] = v
	}
	return out
}

// SkippedTotal returns the number of rows skipped for any reason.
func (s Stats) SkippedTotal() int {
	n := 0
	for _, v := range s.Skipped {
		n += v
	}
	return n
}

// CategoryTotal is the entry count of one category.
type CategoryTotal struct {
	Key     string
	Label   string
	Entries int
}

// Totals counts entries per category from the catalog itself, in output
// order. Categories missing from defs are reported under their key.
func Totals(db *Database, defs []CategoryDefinition) []CategoryTotal {
	labels := make(map[string]string, len(defs))
	for _, d := range defs {
		labels[d.Key] = d.ReportLabel
	}

	out := make([]CategoryTotal, 0, db.Categories.Len())
	db.Categories.Each(func(key string, c *Category) {
		label := labels[key]
		if label == "" {
			label = c.Name
		}
		out = append(out, CategoryTotal{Key: key, Label: label, Entries: c.EntryCount()})
	})
	return out
}
