package stars

import "sort"

// Result is the outcome of looking up one repository. Exactly one of URL and
// Err is set.
type Result struct {
	// Repository is the identifier as read from the input, in owner/name
	// format.
	Repository string

	// Stars is the stargazers count, zero when the lookup failed.
	Stars uint32

	// URL links to the repository page on success.
	URL string

	// Err describes why the lookup failed.
	Err error
}

// OK reports whether the lookup succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Detail is the third report column: the repository link, or the failure
// description when there is no link to give.
func (r Result) Detail() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.URL
}

// SortByStars orders results in place, most stars first. Ties keep their
// relative order.
func SortByStars(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Stars > results[j].Stars
	})
}
