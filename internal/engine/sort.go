package engine

import "sort"

// SortPostings orders postings by the requested key, descending, with
// id ascending as the deterministic tie-break (the source behavior
// leaves equal keys unordered; the tie-break makes pagination
// reproducible).
func SortPostings(postings []JobPosting, key SortKey) {
	less := func(a, b *JobPosting) bool {
		switch key {
		case SortSalary:
			if a.SalaryMax != b.SalaryMax {
				return a.SalaryMax > b.SalaryMax // missing salary sorts as 0
			}
		case SortRelevance:
			if a.MatchPercentage != b.MatchPercentage {
				return a.MatchPercentage > b.MatchPercentage
			}
		default: // SortDate
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		return a.ID < b.ID
	}
	sort.SliceStable(postings, func(i, j int) bool {
		return less(&postings[i], &postings[j])
	})
}

// Paginate slices one page out of an already-sorted candidate set.
// An out-of-range page yields an empty slice, not an error.
func Paginate(postings []JobPosting, page int) []JobPosting {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize
	if offset >= len(postings) {
		return []JobPosting{}
	}
	end := offset + PageSize
	if end > len(postings) {
		end = len(postings)
	}
	return postings[offset:end]
}
