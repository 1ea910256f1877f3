package text

// Character classification used by the normalizer. The tables follow the
// BERT reference tokenizer and are part of the behavioral contract: they
// intentionally differ from the general Unicode categories in places (for
// example U+2028/U+2029 count as punctuation here and are dropped by the
// cleaner before classification matters).

// IsWhitespace reports whether cp is treated as whitespace.
func IsWhitespace(cp rune) bool {
	switch cp {
	case 0x0020, 0x0009, 0x000A, 0x000D, 0x00A0, 0x1680, 0x202F, 0x205F, 0x3000:
		return true
	}
	return cp >= 0x2000 && cp <= 0x200A
}

// IsControl reports whether cp is a control or format character that the
// cleaner removes. Tab, LF and CR are excluded; they count as whitespace.
func IsControl(cp rune) bool {
	switch {
	case cp == 0x0009 || cp == 0x000A || cp == 0x000D:
		return false
	case cp <= 0x001F:
		return true
	case cp >= 0x007F && cp <= 0x009F:
		return true
	case cp >= 0x200B && cp <= 0x200F:
		return true
	case cp >= 0x202A && cp <= 0x202E:
		return true
	case cp >= 0x2060 && cp <= 0x2064:
		return true
	}
	return false
}

// IsPunct reports whether cp is punctuation for word splitting. Covers the
// ASCII punctuation ranges, General Punctuation, CJK symbols and the
// fullwidth/compat blocks, plus a handful of explicit quotation and
// separator code points.
func IsPunct(cp rune) bool {
	switch {
	case cp >= 0x0021 && cp <= 0x002F:
		return true
	case cp >= 0x003A && cp <= 0x0040:
		return true
	case cp >= 0x005B && cp <= 0x0060:
		return true
	case cp >= 0x007B && cp <= 0x007E:
		return true
	case cp >= 0x2000 && cp <= 0x206F: // General Punctuation
		return true
	case cp >= 0x3000 && cp <= 0x303F: // CJK Symbols and Punctuation
		return true
	case cp >= 0xFF00 && cp <= 0xFFEF: // Halfwidth and Fullwidth Forms
		return true
	case cp >= 0xFE30 && cp <= 0xFE4F: // CJK Compatibility Forms
		return true
	}
	switch cp {
	case 0x201C, 0x201D, 0x2018, 0x2019,
		0x300C, 0x300D, 0x300E, 0x300F,
		0xFF5F, 0xFF60,
		0x2E80, 0x2E99, 0x2E9B, 0x2EF3,
		0x2028, 0x2029,
		0x30FB, 0x00B7:
		return true
	}
	return false
}

// IsCJK reports whether cp is a CJK ideograph that the normalizer isolates
// into its own word when CJK tokenization is enabled.
func IsCJK(cp rune) bool {
	switch {
	case cp >= 0x4E00 && cp <= 0x9FFF:
		return true
	case cp >= 0x3400 && cp <= 0x4DBF:
		return true
	case cp >= 0xF900 && cp <= 0xFAFF:
		return true
	case cp >= 0x20000 && cp <= 0x2A6DF:
		return true
	case cp >= 0x2A700 && cp <= 0x2B73F:
		return true
	case cp >= 0x2B740 && cp <= 0x2B81F:
		return true
	case cp >= 0x2B820 && cp <= 0x2CEAF:
		return true
	case cp >= 0x2F800 && cp <= 0x2FA1F:
		return true
	}
	return false
}
