package candidate

import "strings"

// Find resolves ref to candidate records. An exact ID match wins, then an
// exact (case-insensitive) name match, then every record whose name contains
// ref.
func Find(records []Candidate, ref string) ([]Candidate, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrNotFound
	}

	for _, c := range records {
		if c.ID == ref {
			return []Candidate{c}, nil
		}
	}

	var exact []Candidate
	for _, c := range records {
		if strings.EqualFold(c.Name, ref) {
			exact = append(exact, c)
		}
	}
	if len(exact) > 0 {
		return exact, nil
	}

	lower := strings.ToLower(ref)
	var matches []Candidate
	for _, c := range records {
		if strings.Contains(strings.ToLower(c.Name), lower) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return nil, ErrNotFound
	}
	return matches, nil
}
