package charclass

import "sort"

// Fixed code-point ranges from the XML 1.0 (Fifth Edition) NameStartChar and
// NameChar productions, used to build the \i, \I, \c, \C escapes. These are
// a closed set of ranges defined by the XML grammar itself, not derived from
// the Unicode general-category/block data provider, so they live here
// rather than in internal/ucd.
var nameStartCharRanges = []Range{
	{':', ':'},
	{'A', 'Z'},
	{'_', '_'},
	{'a', 'z'},
	{0xC0, 0xD6},
	{0xD8, 0xF6},
	{0xF8, 0x2FF},
	{0x370, 0x37D},
	{0x37F, 0x1FFF},
	{0x200C, 0x200D},
	{0x2070, 0x218F},
	{0x2C00, 0x2FEF},
	{0x3001, 0xD7FF},
	{0xF900, 0xFDCF},
	{0xFDF0, 0xFFFD},
	{0x10000, 0xEFFFF},
}

var nameCharExtraRanges = []Range{
	{'-', '-'},
	{'.', '.'},
	{'0', '9'},
	{0xB7, 0xB7},
	{0x300, 0x36F},
	{0x203F, 0x2040},
}

// XMLNameStartChar returns the \i escape: code points allowed to start an
// XML Name.
func XMLNameStartChar() Set {
	return Set{ranges: normalize(append([]Range(nil), nameStartCharRanges...))}
}

// XMLNameChar returns the \c escape: code points allowed anywhere in an XML
// Name, a superset of XMLNameStartChar.
func XMLNameChar() Set {
	sorted := append(append([]Range(nil), nameStartCharRanges...), nameCharExtraRanges...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Lo < sorted[j].Lo })
	return Set{ranges: normalize(sorted)}
}

// Whitespace returns the \s escape: tab, newline, carriage return, space.
func Whitespace() Set {
	return FromRunes([]rune{'\t', '\n', '\r', ' '})
}
