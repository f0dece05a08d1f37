package candidate

import "strings"

// splitFrontmatter separates a leading "---" YAML block from the Markdown body.
// ok is false when the content has no frontmatter.
func splitFrontmatter(content string) (front, body string, ok bool) {
	s := strings.TrimPrefix(content, "\ufeff")
	if !strings.HasPrefix(s, "---") {
		return "", content, false
	}

	parts := strings.SplitN(s, "---", 3)
	if len(parts) < 3 {
		return "", content, false
	}
	return strings.TrimSpace(parts[1]), strings.TrimPrefix(parts[2], "\n"), true
}

// inferSummary returns the first paragraph of body, skipping headings.
func inferSummary(body string) string {
	var para []string
	for _, ln := range strings.Split(body, "\n") {
		ln = strings.TrimSpace(ln)
		if strings.HasPrefix(ln, "#") {
			if len(para) > 0 {
				break
			}
			continue
		}
		if ln == "" {
			if len(para) > 0 {
				break
			}
			continue
		}
		para = append(para, ln)
	}
	return strings.Join(para, " ")
}
