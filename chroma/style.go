package chroma

import (
	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/emoscope"
)

// Style is the rendering style chosen for one token.
type Style struct {
	Foreground string
	Bold       bool
}

// StyleFunc maps chroma token types to styles.
type StyleFunc func(chromalib.TokenType) Style

// StyleFromPalette returns a function that maps chroma token types to styles
// based on the provided palette colors.
func StyleFromPalette(p emoscope.Palette) StyleFunc {
	return func(tt chromalib.TokenType) Style {
		switch tt {
		// Object keys
		case chromalib.NameTag, chromalib.NameAttribute, chromalib.Name:
			return Style{Foreground: p.Name}

		// true, false, null
		case chromalib.Keyword, chromalib.KeywordConstant, chromalib.KeywordDeclaration,
			chromalib.KeywordNamespace, chromalib.KeywordPseudo, chromalib.KeywordReserved,
			chromalib.KeywordType:
			return Style{Foreground: p.Keyword, Bold: true}

		case chromalib.String, chromalib.StringAffix, chromalib.StringBacktick, chromalib.StringChar,
			chromalib.StringDelimiter, chromalib.StringDoc, chromalib.StringDouble,
			chromalib.StringEscape, chromalib.StringHeredoc, chromalib.StringInterpol,
			chromalib.StringOther, chromalib.StringRegex, chromalib.StringSingle,
			chromalib.StringSymbol:
			return Style{Foreground: p.String}

		case chromalib.Number, chromalib.NumberBin, chromalib.NumberFloat, chromalib.NumberHex,
			chromalib.NumberInteger, chromalib.NumberIntegerLong, chromalib.NumberOct:
			return Style{Foreground: p.Number}

		case chromalib.Punctuation, chromalib.Operator:
			return Style{Foreground: p.Punctuation}

		default:
			return Style{Foreground: p.Foreground}
		}
	}
}
