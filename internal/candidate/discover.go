package candidate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// IsCandidateFile reports whether name has an extension Discover loads.
func IsCandidateFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// InvalidFile is a candidate file that failed to parse or validate.
type InvalidFile struct {
	Path string
	Err  error
}

// Discover scans dir recursively and returns every valid candidate record, in
// lexical file order. Files that fail to parse or validate are skipped and
// logged at warn level; use Scan to get them back. A missing dir yields an
// empty list.
func Discover(dir string) ([]Candidate, error) {
	recs, invalid, err := Scan(dir)
	if err != nil {
		return nil, err
	}
	for _, inv := range invalid {
		slog.Warn("skipping invalid candidate file", "path", inv.Path, "error", inv.Err)
	}
	return recs, nil
}

// Scan is Discover with the rejected files reported instead of logged. Hidden
// files and directories and import conflict copies are skipped. Only I/O
// failures while walking dir are returned as an error.
func Scan(dir string) ([]Candidate, []InvalidFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Candidate{}, nil, nil
		}
		return nil, nil, fmt.Errorf("cannot stat candidates directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("candidates path is not a directory: %s", dir)
	}

	out := []Candidate{}
	var invalid []InvalidFile
	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsCandidateFile(d.Name()) {
			return nil
		}
		// Conflict copies left by an import are not live records.
		if strings.Contains(d.Name(), ".conflict-") {
			return nil
		}

		recs, err := LoadFile(path)
		if err != nil {
			invalid = append(invalid, InvalidFile{Path: path, Err: err})
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		for i := range recs {
			recs[i].Source = filepath.ToSlash(rel)
		}
		out = append(out, recs...)
		return nil
	}

	if err := filepath.WalkDir(dir, walkFn); err != nil {
		return nil, nil, fmt.Errorf("cannot scan candidates: %w", err)
	}
	return out, invalid, nil
}

// LoadFile parses one candidate file. Markdown files hold a single record in
// their frontmatter; YAML and JSON files hold a record or a list of records,
// optionally across several YAML documents.
func LoadFile(path string) ([]Candidate, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var recs []Candidate
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md":
		c, err := parseMarkdown(string(b))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		recs = []Candidate{c}
	case ".yaml", ".yml", ".json":
		recs, err = parseDocuments(b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported candidate file type: %s", path)
	}

	for i := range recs {
		normalize(&recs[i])
		if err := Validate(recs[i]); err != nil {
			return nil, fmt.Errorf("%s (record %d): %w", path, i+1, err)
		}
	}
	return recs, nil
}

func parseMarkdown(content string) (Candidate, error) {
	front, body, ok := splitFrontmatter(content)
	if !ok {
		return Candidate{}, errors.New("missing YAML frontmatter")
	}
	var c Candidate
	if err := yaml.Unmarshal([]byte(front), &c); err != nil {
		return Candidate{}, fmt.Errorf("invalid frontmatter: %w", err)
	}
	if strings.TrimSpace(c.Summary) == "" {
		c.Summary = inferSummary(body)
	}
	return c, nil
}

func parseDocuments(b []byte) ([]Candidate, error) {
	var out []Candidate
	dec := yaml.NewDecoder(bytes.NewReader(b))
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid document: %w", err)
		}
		if len(doc.Content) == 0 {
			continue
		}
		root := doc.Content[0]
		switch root.Kind {
		case yaml.SequenceNode:
			var list []Candidate
			if err := root.Decode(&list); err != nil {
				return nil, fmt.Errorf("invalid candidate list: %w", err)
			}
			out = append(out, list...)
		case yaml.MappingNode:
			var c Candidate
			if err := root.Decode(&c); err != nil {
				return nil, fmt.Errorf("invalid candidate: %w", err)
			}
			out = append(out, c)
		default:
			return nil, fmt.Errorf("line %d: expected a candidate or a list of candidates", root.Line)
		}
	}
	return out, nil
}

func normalize(c *Candidate) {
	c.Name = strings.TrimSpace(c.Name)
	c.Title = strings.TrimSpace(c.Title)
	c.Location = strings.TrimSpace(c.Location)
	c.Summary = strings.TrimSpace(c.Summary)
	if c.ID == "" {
		c.ID = DeriveID(*c)
	}
}
