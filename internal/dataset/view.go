package dataset

import "sync"

// DefaultMaxPoints caps the number of rows handed to the chart and to
// model prompts.
const DefaultMaxPoints = 100

// View memoizes the display dataset: sort by the active key, then
// downsample. It recomputes only when the raw dataset pointer or the key
// differs from the last call, so a freshly parsed file (a new Dataset
// allocation) invalidates the cache even if its content is identical, and
// repeated reads with unchanged inputs return the exact same slice.
type View struct {
	mu        sync.Mutex
	sorter    *Sorter
	maxPoints int

	lastRaw *Dataset
	lastKey string
	lastOut Dataset
	primed  bool
}

func NewView(maxPoints int) *View {
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}
	return &View{sorter: NewSorter(), maxPoints: maxPoints}
}

// Display returns the derived dataset for the given raw dataset and active
// X-axis key. An unset key yields an empty dataset regardless of content.
func (v *View) Display(raw *Dataset, key string) Dataset {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.primed && raw == v.lastRaw && key == v.lastKey {
		return v.lastOut
	}
	out := Dataset{}
	if raw != nil && key != "" {
		sorted, err := v.sorter.SortByKey(*raw, key)
		if err == nil {
			if sampled, err := Sample(sorted, v.maxPoints); err == nil {
				out = sampled
			}
		}
	}
	v.lastRaw = raw
	v.lastKey = key
	v.lastOut = out
	v.primed = true
	return out
}
