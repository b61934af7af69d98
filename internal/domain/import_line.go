package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type ImportLineKind string

const (
	LineHashTriple ImportLineKind = "hash_triple"
	LineShareLink  ImportLineKind = "share_link"
)

// ImportLine is either a HashTriple (Filename, Size, SHA256 set) or a
// ShareLink (QuickKey set).
type ImportLine struct {
	Kind     ImportLineKind
	Number   int
	Filename string
	Size     uint64
	SHA256   string
	QuickKey string
}

func (l ImportLine) Identifier() string {
	if l.Kind == LineShareLink {
		return l.QuickKey
	}
	return l.Filename
}

var hashTriplePattern = regexp.MustCompile(`^(.+);(\d+);([0-9a-fA-F]{64})$`)

type LineClassifier struct {
	shareLink *regexp.Regexp
}

// NewLineClassifier builds a classifier for share links on host. A leading
// "www." on host is optional in matched links.
func NewLineClassifier(host string) (*LineClassifier, error) {
	bare := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
	if bare == "" {
		return nil, fmt.Errorf("service host is required")
	}

	pattern, err := regexp.Compile(`^https?://(www\.)?` + regexp.QuoteMeta(bare) + `/file/([A-Za-z0-9]+)`)
	if err != nil {
		return nil, fmt.Errorf("compile share link pattern: %w", err)
	}

	return &LineClassifier{shareLink: pattern}, nil
}

// Classify parses an already-trimmed line. Lines matching neither grammar
// return ErrUnrecognizedLine.
func (c *LineClassifier) Classify(number int, line string) (ImportLine, error) {
	if m := hashTriplePattern.FindStringSubmatch(line); m != nil {
		size, err := strconv.ParseUint(m[2], 10, 64)
		if err != nil {
			return ImportLine{}, fmt.Errorf("%w: size %q: %v", ErrUnrecognizedLine, m[2], err)
		}
		return ImportLine{
			Kind:     LineHashTriple,
			Number:   number,
			Filename: m[1],
			Size:     size,
			SHA256:   strings.ToLower(m[3]),
		}, nil
	}

	if m := c.shareLink.FindStringSubmatch(line); m != nil {
		return ImportLine{Kind: LineShareLink, Number: number, QuickKey: m[2]}, nil
	}

	return ImportLine{}, ErrUnrecognizedLine
}
