package deviation

import (
	"slices"
	"sort"
)

// Bag collects deviations from several comparators.
type Bag struct {
	items []Deviation
}

func NewBag() *Bag {
	return &Bag{}
}

func (b *Bag) Add(d Deviation) {
	b.items = append(b.items, d)
}

func (b *Bag) AddAll(ds []Deviation) {
	b.items = append(b.items, ds...)
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice отклонений.
func (b *Bag) Items() []Deviation {
	return b.items
}

// Dedup drops value-equal repeats, keeping the first occurrence.
func (b *Bag) Dedup() {
	b.items = Dedup(b.items)
}

// Dedup returns ds without value-equal repeats, keeping first occurrences.
func Dedup(ds []Deviation) []Deviation {
	seen := make(map[string]struct{}, len(ds))
	out := make([]Deviation, 0, len(ds))
	for _, d := range ds {
		k := d.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, d)
	}
	return out
}

// Sort orders deviations for rendering: design path, level, subject, type,
// affected classes, then title and description.
func (b *Bag) Sort() {
	Sort(b.items)
}

// Sort orders ds in place; see Bag.Sort.
func Sort(ds []Deviation) {
	sort.SliceStable(ds, func(i, j int) bool {
		di, dj := ds[i], ds[j]
		if di.DesignPath != dj.DesignPath {
			return di.DesignPath < dj.DesignPath
		}
		if di.Level != dj.Level {
			return di.Level < dj.Level
		}
		if di.Subject != dj.Subject {
			return di.Subject < dj.Subject
		}
		if di.Type != dj.Type {
			return di.Type < dj.Type
		}
		if c := slices.Compare(di.AffectedClasses, dj.AffectedClasses); c != 0 {
			return c < 0
		}
		if di.Title != dj.Title {
			return di.Title < dj.Title
		}
		return di.Description < dj.Description
	})
}

// Count returns how many deviations satisfy keep.
func (b *Bag) Count(keep func(Deviation) bool) int {
	n := 0
	for _, d := range b.items {
		if keep(d) {
			n++
		}
	}
	return n
}

func (b *Bag) CountLevel(l Level) int {
	return b.Count(func(d Deviation) bool { return d.Level == l })
}

func (b *Bag) CountType(t Type) int {
	return b.Count(func(d Deviation) bool { return d.Type == t })
}

func (b *Bag) CountSubject(s Subject) int {
	return b.Count(func(d Deviation) bool { return d.Subject == s })
}

// GroupBy partitions the deviations by key, preserving order within groups.
func GroupBy[K comparable](ds []Deviation, key func(Deviation) K) map[K][]Deviation {
	out := make(map[K][]Deviation)
	for _, d := range ds {
		k := key(d)
		out[k] = append(out[k], d)
	}
	return out
}

// Summary holds the statistics breakdown of a set of deviations.
type Summary struct {
	Total     int             `json:"total"`
	ByLevel   map[Level]int   `json:"by_level"`
	ByType    map[Type]int    `json:"by_type"`
	BySubject map[Subject]int `json:"by_subject"`
}

// Summarize counts ds by level, type and subject. Every defined value is
// present in the maps, with zero counts where nothing matched.
func Summarize(ds []Deviation) Summary {
	s := Summary{
		Total:     len(ds),
		ByLevel:   make(map[Level]int, len(Levels)),
		ByType:    make(map[Type]int, len(Types)),
		BySubject: make(map[Subject]int, len(Subjects)),
	}
	for _, l := range Levels {
		s.ByLevel[l] = 0
	}
	for _, t := range Types {
		s.ByType[t] = 0
	}
	for _, sub := range Subjects {
		s.BySubject[sub] = 0
	}
	for _, d := range ds {
		s.ByLevel[d.Level]++
		s.ByType[d.Type]++
		s.BySubject[d.Subject]++
	}
	return s
}

// Summary returns the statistics breakdown of the bag.
func (b *Bag) Summary() Summary {
	return Summarize(b.items)
}
