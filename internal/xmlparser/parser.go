// Package xmlparser implements the Safe Parser: defensive XML parsing
// that refuses XML-bomb and external-entity attacks, plus the S1000D
// entity pre-pass that safelists graphic (ICN-) entity declarations
// before stripping a document's internal DTD subset.
package xmlparser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/redhat-ai-americas/xml-analyzer/internal/xmlmodel"
)

// Document is the result of a successful parse: the root element, the
// namespace prefix→URI map collected across the whole tree, the raw
// bytes (for chunking strategies that re-slice source), and any
// S1000D entities that survived the safe-list pass.
type Document struct {
	Root       *Node
	Namespaces map[string]string
	Raw        []byte
	Entities   []S1000DEntity
}

// S1000DEntity is one graphic-asset entity declaration that passed the
// safe-list check in the S1000D pre-pass.
type S1000DEntity struct {
	Name     string
	SystemID string
	Notation string
}

// Option configures a parse.
type Option func(*options)

type options struct {
	sizeLimit SizeLimit
}

// WithSizeLimit sets the file-size ceiling. SizeLimitUnbounded (the
// zero value) means no ceiling, matching spec.md §4.1's default.
func WithSizeLimit(limit SizeLimit) Option {
	return func(o *options) { o.sizeLimit = limit }
}

// ParseFile reads path, enforces the size ceiling, runs the S1000D
// pre-pass if applicable, and parses the result into a Document.
func ParseFile(path string, opts ...Option) (*Document, error) {
	cfg := options{}
	for _, o := range opts {
		o(&cfg)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &xmlmodel.IoError{Path: path, Err: err}
	}
	if cfg.sizeLimit != SizeLimitUnbounded && info.Size() > cfg.sizeLimit.Bytes() {
		return nil, &xmlmodel.SizeError{Path: path, SizeBytes: info.Size(), LimitMB: float64(cfg.sizeLimit)}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &xmlmodel.IoError{Path: path, Err: err}
	}
	return ParseBytes(path, raw)
}

// ParseBytes runs the S1000D pre-pass and safe parse over in-memory
// content. path is used only for error messages.
func ParseBytes(path string, raw []byte) (*Document, error) {
	raw = stripBOM(raw)

	if err := checkDoctypeSafety(path, raw); err != nil {
		return nil, err
	}
	if err := checkEntityBomb(path, raw); err != nil {
		return nil, err
	}

	content := raw
	var entities []S1000DEntity
	if isS1000D(raw) {
		stripped, found, err := extractS1000DEntities(path, raw)
		if err != nil {
			return nil, err
		}
		content = stripped
		entities = found
	}

	root, namespaces, err := decodeTree(path, content)
	if err != nil {
		return nil, err
	}

	return &Document{Root: root, Namespaces: namespaces, Raw: raw, Entities: entities}, nil
}

func stripBOM(b []byte) []byte {
	switch {
	case bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}):
		return b[3:]
	default:
		return b
	}
}

var s1000dDoctypeRE = regexp.MustCompile(`(?i)<!DOCTYPE\s+(dmodule|pm|dml|scormContentPackage|comrep)\b`)

// isS1000D reports whether an S1000D DOCTYPE marker appears in the
// leading portion of the document, per spec.md §4.1.
func isS1000D(raw []byte) bool {
	head := raw
	if len(head) > 500 {
		head = head[:500]
	}
	return s1000dDoctypeRE.Find(head) != nil
}

var externalSystemDoctypeRE = regexp.MustCompile(`(?is)<!DOCTYPE\s+[^\[>]*\bSYSTEM\s+"([^"]*)"[^\[>]*>`)

// checkDoctypeSafety rejects a top-level DOCTYPE that names an
// external SYSTEM identifier with no internal subset (an attempted
// external-DTD fetch): `<!DOCTYPE foo SYSTEM "http://evil">`. S1000D's
// own DOCTYPE always carries an internal `[...]` subset and is handled
// separately by extractS1000DEntities.
func checkDoctypeSafety(path string, raw []byte) error {
	m := externalSystemDoctypeRE.FindSubmatch(raw)
	if m == nil {
		return nil
	}
	return &xmlmodel.ParseError{
		Path: path,
		Kind: xmlmodel.ParseErrorUnsafeEntity,
		Err:  fmt.Errorf("external DTD fetch attempt: SYSTEM %q", string(m[1])),
	}
}

var (
	doctypeBlockRE = regexp.MustCompile(`(?is)<!DOCTYPE\s+(\w+)\s*\[(.*?)\]\s*>`)
	entityDeclRE   = regexp.MustCompile(`(?is)<!ENTITY\s+([\w.-]+)\s+(SYSTEM\s+"([^"]*)"(?:\s+NDATA\s+([\w.-]+))?|"([^"]*)")\s*>`)
	entityRefRE    = regexp.MustCompile(`&([\w.-]+);`)
)

var safeGraphicExts = map[string]bool{
	"cgm": true, "jpg": true, "jpeg": true, "png": true,
	"tif": true, "tiff": true, "svg": true, "gif": true, "bmp": true,
}

// checkEntityBomb scans any DOCTYPE internal subset — S1000D or
// otherwise — for a billion-laughs shape: a general (non-SYSTEM)
// entity whose replacement text holds two or more references to
// declared entities, whether the same entity repeated or several
// different ones. That pattern is what makes the attack exponential. This
// runs unconditionally in ParseBytes, before the S1000D-specific pass,
// since a classic billion-laughs payload names an arbitrary root
// element and must not slip past undetected just because its DOCTYPE
// isn't one of S1000D's (spec.md §8, "Billion-laughs XML →
// ParseError(xml-bomb)").
func checkEntityBomb(path string, raw []byte) error {
	loc := doctypeBlockRE.FindSubmatchIndex(raw)
	if loc == nil {
		return nil
	}
	subset := raw[loc[4]:loc[5]]

	declNames := map[string]bool{}
	for _, m := range entityDeclRE.FindAllSubmatch(subset, -1) {
		declNames[string(m[1])] = true
	}
	for _, m := range entityDeclRE.FindAllSubmatch(subset, -1) {
		name := string(m[1])
		systemID := string(m[3])
		value := string(m[5])
		if systemID != "" {
			continue // SYSTEM/NDATA entity: not a text-expansion entity
		}
		refs := entityRefRE.FindAllSubmatch([]byte(value), -1)
		declaredRefs := 0
		for _, r := range refs {
			if declNames[string(r[1])] {
				declaredRefs++
			}
		}
		if declaredRefs >= 2 {
			return &xmlmodel.ParseError{
				Path: path,
				Kind: xmlmodel.ParseErrorXMLBomb,
				Err:  fmt.Errorf("entity %q expands %d entity references", name, declaredRefs),
			}
		}
	}
	return nil
}

// extractS1000DEntities scans the DOCTYPE internal subset for ENTITY
// declarations, classifies each against the graphic-entity safe-list,
// and returns the document with the entire DOCTYPE block replaced by
// `<!DOCTYPE dmodule>`, plus the subset's safe entities. The bomb scan
// itself already ran in checkEntityBomb by the time this is called.
func extractS1000DEntities(path string, raw []byte) ([]byte, []S1000DEntity, error) {
	loc := doctypeBlockRE.FindSubmatchIndex(raw)
	if loc == nil {
		// S1000D marker matched but no internal subset found; nothing
		// to strip or classify.
		return raw, nil, nil
	}
	subset := raw[loc[4]:loc[5]]

	var safe []S1000DEntity
	for _, m := range entityDeclRE.FindAllSubmatch(subset, -1) {
		name := string(m[1])
		systemID := string(m[3])
		notation := string(m[4])
		if systemID == "" {
			continue
		}
		if isSafeGraphicEntity(name, systemID, notation) {
			safe = append(safe, S1000DEntity{Name: name, SystemID: systemID, Notation: notation})
		}
	}

	rootName := string(raw[loc[2]:loc[3]])
	replacement := []byte(fmt.Sprintf("<!DOCTYPE %s>", rootName))
	out := make([]byte, 0, len(raw)-(loc[1]-loc[0])+len(replacement))
	out = append(out, raw[:loc[0]]...)
	out = append(out, replacement...)
	out = append(out, raw[loc[1]:]...)
	return out, safe, nil
}

func isSafeGraphicEntity(name, systemID, notation string) bool {
	if !strings.HasPrefix(name, "ICN-") {
		return false
	}
	if strings.Contains(systemID, "..") {
		return false
	}
	isURL := strings.HasPrefix(systemID, "http://") || strings.HasPrefix(systemID, "https://")
	if strings.Contains(systemID, "://") && !isURL {
		return false
	}
	ext := fileExt(systemID)
	if !safeGraphicExts[ext] {
		return false
	}
	if notation != "" && !safeGraphicExts[strings.ToLower(notation)] {
		return false
	}
	return true
}

func fileExt(sysid string) string {
	i := strings.LastIndexByte(sysid, '.')
	if i < 0 || i == len(sysid)-1 {
		return ""
	}
	return strings.ToLower(sysid[i+1:])
}

// decodeTree runs encoding/xml's token decoder over content and builds
// the generic Node tree, tracking namespace declarations and
// approximate line numbers from byte offsets.
func decodeTree(path string, content []byte) (*Node, map[string]string, error) {
	lineOf := lineIndex(content)

	dec := xml.NewDecoder(bytes.NewReader(content))
	dec.Strict = true
	// A custom document (not S1000D) may still declare a DOCTYPE with
	// an internal subset of harmless notation/attlist declarations
	// that reference no entities; encoding/xml has no DTD support at
	// all, so such directives are simply skipped as Directive tokens.

	namespaces := map[string]string{}
	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, &xmlmodel.ParseError{Path: path, Kind: xmlmodel.ParseErrorMalformed, Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{
				Local:     t.Name.Local,
				Namespace: t.Name.Space,
				StartLine: lineOf(int(dec.InputOffset())),
			}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" {
					namespaces[a.Name.Local] = a.Value
				} else if a.Name.Local == "xmlns" && a.Name.Space == "" {
					namespaces[""] = a.Value
				}
				n.Attrs = append(n.Attrs, Attr{Space: a.Name.Space, Local: a.Name.Local, Value: a.Value})
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				n.Parent = parent
				parent.Children = append(parent.Children, n)
			} else if root == nil {
				root = n
			}
			stack = append(stack, n)

		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			cur := stack[len(stack)-1]
			cur.EndLine = lineOf(int(dec.InputOffset()))
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, nil, &xmlmodel.ParseError{Path: path, Kind: xmlmodel.ParseErrorMalformed, Err: fmt.Errorf("no root element")}
	}
	return root, namespaces, nil
}

// lineIndex returns a function mapping a byte offset into content to a
// 1-based line number.
func lineIndex(content []byte) func(int) int {
	offsets := []int{0}
	for i, b := range content {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return func(pos int) int {
		lo, hi := 0, len(offsets)-1
		for lo < hi {
			mid := (lo + hi + 1) / 2
			if offsets[mid] <= pos {
				lo = mid
			} else {
				hi = mid - 1
			}
		}
		return lo + 1
	}
}
