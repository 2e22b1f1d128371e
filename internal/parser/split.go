package parser

import (
	"regexp"
	"strings"
)

// Keywords that open an entity: at the start of a line, or anywhere else on
// it when followed by a name. The alternation is leftmost so the "class" of
// an "abstract class" header never starts a chunk of its own.
var entityKeyword = regexp.MustCompile(`(?m)^[ \t]*(abstract[ \t]+class|class|interface)\b` +
	`|[\s{};](abstract[ \t]+class|class|interface)[ \t]+[\w.]`)

var relationLine = regexp.MustCompile(`(?m)^[ \t]*([\w.]+)[ \t]+([<>x\-o|*.]{2,4})[ \t]+([\w.]+)[ \t]*$`)

// Chunk is the text of one entity, from its keyword up to the next one.
type Chunk struct {
	Keyword string // "class", "abstract class" or "interface"
	Text    string
	Offset  int // byte offset of Text in the diagram
}

// IsInterface reports whether the chunk was opened by the interface keyword.
func (c Chunk) IsInterface() bool { return c.Keyword == "interface" }

// RelationLine is one line shaped like "<name> <symbol> <name>".
type RelationLine struct {
	Source      string
	Symbol      string
	Destination string
	Offset      int
}

// SplitEntities cuts text into entity chunks. Text before the first keyword
// is preamble and belongs to no chunk; blank chunks are dropped.
func SplitEntities(text string) []Chunk {
	type keyword struct{ start, end int }
	var kws []keyword
	for _, loc := range entityKeyword.FindAllStringSubmatchIndex(text, -1) {
		kw := keyword{loc[2], loc[3]}
		if kw.start < 0 {
			kw = keyword{loc[4], loc[5]}
		}
		if !inProse(text, kw.start) {
			kws = append(kws, kw)
		}
	}
	chunks := make([]Chunk, 0, len(kws))
	for i, kw := range kws {
		end := len(text)
		if i+1 < len(kws) {
			end = kws[i+1].start
		}
		body := text[kw.start:end]
		if strings.TrimSpace(body) == "" {
			continue
		}
		chunks = append(chunks, Chunk{
			Keyword: strings.Join(strings.Fields(text[kw.start:kw.end]), " "),
			Text:    body,
			Offset:  kw.start,
		})
	}
	return chunks
}

// Line prefixes whose text is prose, never an entity declaration.
var proseLinePrefixes = []string{"'", "/'", "title ", "note ", "legend", "header ", "footer ", "caption "}

// inProse reports whether off lies on a comment or free-text directive line.
func inProse(text string, off int) bool {
	lineStart := strings.LastIndexByte(text[:off], '\n') + 1
	line := strings.TrimLeft(text[lineStart:off], " \t")
	for _, p := range proseLinePrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// SplitRelations returns every relation-shaped line in text, in order.
// Lines of any other shape are ignored.
func SplitRelations(text string) []RelationLine {
	locs := relationLine.FindAllStringSubmatchIndex(text, -1)
	out := make([]RelationLine, 0, len(locs))
	for _, loc := range locs {
		out = append(out, RelationLine{
			Source:      text[loc[2]:loc[3]],
			Symbol:      text[loc[4]:loc[5]],
			Destination: text[loc[6]:loc[7]],
			Offset:      loc[2],
		})
	}
	return out
}
