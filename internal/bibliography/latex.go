package bibliography

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// accentRe matches LaTeX accent commands in the forms \'e, \'{e}, {\'e} and
// {\'{e}}. The accent command character is captured first, the accented
// letter second.
var accentRe = regexp.MustCompile("\\\\(['`\"^~=.uvHc])\\{?([a-zA-Z])\\}?")

// combiningMarks maps LaTeX accent commands to Unicode combining marks.
var combiningMarks = map[string]string{
	"'": "\u0301", // acute
	"`": "\u0300", // grave
	`"`: "\u0308", // diaeresis
	"^": "\u0302", // circumflex
	"~": "\u0303", // tilde
	"=": "\u0304", // macron
	".": "\u0307", // dot above
	"u": "\u0306", // breve
	"v": "\u030c", // caron
	"H": "\u030b", // double acute
	"c": "\u0327", // cedilla
}

var latexLiterals = strings.NewReplacer(
	`\&`, "&",
	`\%`, "%",
	`\$`, "$",
	`\_`, "_",
	`\#`, "#",
	`\ss`, "ß",
	`\ae`, "æ",
	`\AE`, "Æ",
	`\oe`, "œ",
	`\OE`, "Œ",
	`\aa`, "å",
	`\AA`, "Å",
	`\o`, "ø",
	`\O`, "Ø",
	`\l`, "ł",
	`\L`, "Ł",
	`~`, " ",
	"---", "—",
	"--", "–",
)

// decodeLaTeX resolves LaTeX escape and accent sequences in a BibTeX field
// value to plain Unicode and strips the grouping braces BibTeX uses for
// case protection.
func decodeLaTeX(s string) string {
	if !strings.ContainsAny(s, "\\{}~-") {
		return s
	}

	s = accentRe.ReplaceAllStringFunc(s, func(m string) string {
		parts := accentRe.FindStringSubmatch(m)
		mark, ok := combiningMarks[parts[1]]
		if !ok {
			return parts[2]
		}
		return parts[2] + mark
	})

	s = latexLiterals.Replace(s)
	s = strings.ReplaceAll(s, "{", "")
	s = strings.ReplaceAll(s, "}", "")

	// Compose base letter + combining mark pairs into single code points.
	return norm.NFC.String(s)
}
