// Package scene parses tile and block definition XML into the entities
// that drive mesh assembly.
package scene

import (
	"encoding/xml"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Scene definition errors.
var (
	ErrMissingAttribute = errors.New("missing required attribute")
	ErrInvalidAttribute = errors.New("invalid attribute value")
	ErrMissingElement   = errors.New("missing required element")
	ErrInvalidXML       = errors.New("invalid definition XML")
)

// meshPrefix is stripped from mesh references; meshes resolve relative to
// the mesh root folder.
const meshPrefix = "meshes/"

// LegacyMeshNames maps mesh names found in older definitions to the asset
// that replaced them.
var LegacyMeshNames = map[string]string{
	"component_robotic_pivot_b_no_trans.mesh": "assets_meshes_component_robotic_pivot_b_no_trans.mesh",
}

// digitKey matches an attribute name made of two digits, as written by the
// game for matrix cells ("00" .. "33").
var digitKey = regexp.MustCompile(`(\s)(\d\d)=`)

// NormalizeKeys prefixes every two-digit attribute name with 't' so the
// document only contains names a strict XML parser accepts. It runs on raw
// text before any parsing.
func NormalizeKeys(raw []byte) []byte {
	return digitKey.ReplaceAll(raw, []byte("${1}t${2}="))
}

// element is a generic XML node.
type element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []element  `xml:",any"`
}

func parseDocument(raw []byte) (*element, error) {
	var root element
	if err := xml.Unmarshal(NormalizeKeys(raw), &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidXML, err)
	}
	return &root, nil
}

func (e *element) name() string {
	return e.XMLName.Local
}

// child returns the first child named name.
func (e *element) child(name string) *element {
	for i := range e.Children {
		if e.Children[i].name() == name {
			return &e.Children[i]
		}
	}
	return nil
}

func (e *element) requireChild(name string) (*element, error) {
	c := e.child(name)
	if c == nil {
		return nil, fmt.Errorf("%w: <%s> in <%s>", ErrMissingElement, name, e.name())
	}
	return c, nil
}

func (e *element) attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (e *element) requireAttr(name string) (string, error) {
	v, ok := e.attr(name)
	if !ok {
		return "", fmt.Errorf("%w: %q on <%s>", ErrMissingAttribute, name, e.name())
	}
	return v, nil
}

func (e *element) requireInt(name string) (int, error) {
	v, err := e.requireAttr(name)
	if err != nil {
		return 0, err
	}
	return e.parseInt(name, v)
}

// intOr returns the integer attribute, or def when it is absent.
func (e *element) intOr(name string, def int) (int, error) {
	v, ok := e.attr(name)
	if !ok {
		return def, nil
	}
	return e.parseInt(name, v)
}

func (e *element) parseInt(name, v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q on <%s>", ErrInvalidAttribute, name, v, e.name())
	}
	return n, nil
}

// meshReference strips the meshes/ prefix and applies legacy renames.
func meshReference(name string) string {
	name = strings.TrimPrefix(name, meshPrefix)
	if renamed, ok := LegacyMeshNames[name]; ok {
		return renamed
	}
	return name
}
