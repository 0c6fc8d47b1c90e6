// Package ucd is the engine's Unicode data provider: Unicode general
// categories, block names, and simple case variants, exposed as the
// interface spec.md section 6 describes as an external collaborator. It is
// the sole place internal/engine reaches for anything Unicode-specific
// beyond the pure set algebra in internal/charclass.
package ucd

import (
	"fmt"
	"unicode"

	"github.com/coregx/regexml/internal/charclass"
)

// Block is a named, contiguous range of the Unicode code-point space.
type Block struct {
	Name       string
	Start, End rune
}

// excludedBlocks lists blocks with no representation in the XML character
// abstraction: XML instance documents never contain a lone UTF-16 surrogate
// half, so these block names are not resolvable via LookupBlock even though they
// appear in the raw table.
var excludedBlocks = map[string]bool{
	"High Surrogates":            true,
	"Low Surrogates":             true,
	"High Private Use Surrogates": true,
}

// BlockTable returns the full ordered list of recognized Unicode blocks,
// including the surrogate blocks that LookupBlock refuses to resolve.
func BlockTable() []Block {
	return allBlocks
}

var blockIndex map[string]Block

func normalizeBlockName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		if r == ' ' || r == '_' {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

func init() {
	blockIndex = make(map[string]Block, len(allBlocks))
	for _, b := range allBlocks {
		if excludedBlocks[b.Name] {
			continue
		}
		blockIndex[normalizeBlockName(b.Name)] = b
	}
}

// LookupBlock resolves a Unicode block by name, ignoring spaces and
// underscores in the comparison (e.g. "BasicLatin" and "Basic_Latin" both
// resolve to "Basic Latin"). Surrogate blocks are never resolvable.
func LookupBlock(name string) (charclass.Set, error) {
	b, ok := blockIndex[normalizeBlockName(name)]
	if !ok {
		return charclass.Set{}, fmt.Errorf("Unknown block: %s", name)
	}
	return charclass.FromRange(b.Start, b.End), nil
}

// categoryTables maps the 30 individual Unicode general-category codes to
// the stdlib unicode.RangeTable that defines them. "Cn" (unassigned) has no
// such table in the standard library; it is computed lazily by
// categoryCn as the complement of everything else.
var categoryTables = map[string]*unicode.RangeTable{
	"Lu": unicode.Lu, "Ll": unicode.Ll, "Lt": unicode.Lt, "Lm": unicode.Lm, "Lo": unicode.Lo,
	"Mn": unicode.Mn, "Mc": unicode.Mc, "Me": unicode.Me,
	"Nd": unicode.Nd, "Nl": unicode.Nl, "No": unicode.No,
	"Pc": unicode.Pc, "Pd": unicode.Pd, "Ps": unicode.Ps, "Pe": unicode.Pe,
	"Pi": unicode.Pi, "Pf": unicode.Pf, "Po": unicode.Po,
	"Sm": unicode.Sm, "Sc": unicode.Sc, "Sk": unicode.Sk, "So": unicode.So,
	"Zs": unicode.Zs, "Zl": unicode.Zl, "Zp": unicode.Zp,
	"Cc": unicode.Cc, "Cf": unicode.Cf, "Co": unicode.Co, "Cs": unicode.Cs,
}

// compositeGroups maps the 7 composite general-category groups to the
// individual categories they roll up.
var compositeGroups = map[string][]string{
	"L": {"Lu", "Ll", "Lt", "Lm", "Lo"},
	"M": {"Mn", "Mc", "Me"},
	"N": {"Nd", "Nl", "No"},
	"P": {"Pc", "Pd", "Ps", "Pe", "Pi", "Pf", "Po"},
	"S": {"Sm", "Sc", "Sk", "So"},
	"Z": {"Zs", "Zl", "Zp"},
	"C": {"Cc", "Cf", "Co", "Cs", "Cn"},
}

var unassignedOnce, assignedOnce = false, false
var unassignedSetCache charclass.Set
var assignedSetCache charclass.Set

// assignedSet returns the union of every individually-tabulated category
// (everything except Cn).
func assignedSet() charclass.Set {
	if assignedOnce {
		return assignedSetCache
	}
	s := charclass.Empty()
	for _, rt := range categoryTables {
		s = charclass.Union(s, rangeTableToSet(rt))
	}
	assignedSetCache = s
	assignedOnce = true
	return s
}

// categoryCn ("unassigned") has no RangeTable in the standard library; it is
// everything in [0, MaxRune] not covered by any other category.
func categoryCn() charclass.Set {
	if unassignedOnce {
		return unassignedSetCache
	}
	unassignedSetCache = charclass.Difference(charclass.All(), assignedSet())
	unassignedOnce = true
	return unassignedSetCache
}

// GeneralCategorySet returns the code-point set for one of the 30 general
// categories or the 7 composite groups (L, M, N, P, Z, S, C). "Cs" is
// rejected: surrogate code points have no representation in the XML
// character abstraction that regex patterns operate over.
func GeneralCategorySet(name string) (charclass.Set, error) {
	if name == "Cs" {
		return charclass.Set{}, fmt.Errorf("Unknown unicode general category %s", name)
	}
	if name == "Cn" {
		return categoryCn(), nil
	}
	if rt, ok := categoryTables[name]; ok {
		return rangeTableToSet(rt), nil
	}
	if members, ok := compositeGroups[name]; ok {
		s := charclass.Empty()
		for _, m := range members {
			if rt, ok := categoryTables[m]; ok {
				s = charclass.Union(s, rangeTableToSet(rt))
				continue
			}
			sub, err := GeneralCategorySet(m)
			if err != nil {
				return charclass.Set{}, err
			}
			s = charclass.Union(s, sub)
		}
		return s, nil
	}
	return charclass.Set{}, fmt.Errorf("Unknown unicode general category %s", name)
}

// rangeTableToSet converts a stdlib unicode.RangeTable into a charclass.Set,
// expanding stride>1 entries one code point at a time since a Set cannot
// represent a stride directly.
func rangeTableToSet(rt *unicode.RangeTable) charclass.Set {
	s := charclass.Empty()
	for _, r16 := range rt.R16 {
		if r16.Stride == 1 {
			s = charclass.Union(s, charclass.FromRange(rune(r16.Lo), rune(r16.Hi)))
			continue
		}
		for c := rune(r16.Lo); c <= rune(r16.Hi); c += rune(r16.Stride) {
			s = charclass.Union(s, charclass.FromRune(c))
		}
	}
	for _, r32 := range rt.R32 {
		if r32.Stride == 1 {
			s = charclass.Union(s, charclass.FromRange(rune(r32.Lo), rune(r32.Hi)))
			continue
		}
		for c := rune(r32.Lo); c <= rune(r32.Hi); c += rune(r32.Stride) {
			s = charclass.Union(s, charclass.FromRune(c))
		}
	}
	return s
}

// SimpleLowercase returns the simple (one-to-one) lowercase mapping of r,
// used for case-insensitive equality.
func SimpleLowercase(r rune) rune {
	return unicode.ToLower(r)
}

// CaseClosure returns the set of all simple case variants of r: r itself,
// its simple uppercase, lowercase and titlecase forms. This is the "simple"
// case closure (one code point maps to one code point in each direction),
// not the full Unicode case-folding closure that can map a single code
// point to a multi-code-point sequence.
func CaseClosure(r rune) charclass.Set {
	variants := []rune{r, unicode.ToUpper(r), unicode.ToLower(r), unicode.ToTitle(r)}
	return charclass.FromRunes(variants)
}
