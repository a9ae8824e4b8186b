package comments

import (
	"path/filepath"
	"regexp"
	"strings"
)

// style holds the comment regexes for one family of languages. Line patterns
// strip to end of line; block patterns span lines.
type style struct {
	line  *regexp.Regexp
	block *regexp.Regexp
}

var (
	slashLine  = regexp.MustCompile(`(?m)^[ \t]*//[^\n]*\n?|[ \t]//[^\n]*`)
	hashLine   = regexp.MustCompile(`(?m)^[ \t]*#[^\n]*\n?|[ \t]#[^\n]*`)
	dashLine   = regexp.MustCompile(`(?m)^[ \t]*--[^\n]*\n?|[ \t]--[^\n]*`)
	semiLine   = regexp.MustCompile(`(?m)^[ \t]*;[^\n]*\n?`)
	starBlock  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	htmlBlock  = regexp.MustCompile(`(?s)<!--.*?-->`)
	tripleQuot = regexp.MustCompile(`(?s)'''.*?'''|""".*?"""`)
)

var cStyle = style{line: slashLine, block: starBlock}

// styles maps a file extension to its comment syntax. Extensions not listed
// pass through Strip unchanged.
var styles = map[string]style{
	".go":    cStyle,
	".c":     cStyle,
	".h":     cStyle,
	".cpp":   cStyle,
	".hpp":   cStyle,
	".cs":    cStyle,
	".java":  cStyle,
	".js":    cStyle,
	".jsx":   cStyle,
	".ts":    cStyle,
	".tsx":   cStyle,
	".kt":    cStyle,
	".swift": cStyle,
	".rs":    cStyle,
	".scala": cStyle,
	".css":   {block: starBlock},
	".py":    {line: hashLine, block: tripleQuot},
	".rb":    {line: hashLine},
	".sh":    {line: hashLine},
	".bash":  {line: hashLine},
	".yml":   {line: hashLine},
	".yaml":  {line: hashLine},
	".toml":  {line: hashLine},
	".pl":    {line: hashLine},
	".r":     {line: hashLine},
	".sql":   {line: dashLine, block: starBlock},
	".lua":   {line: dashLine},
	".hs":    {line: dashLine},
	".lisp":  {line: semiLine},
	".clj":   {line: semiLine},
	".html":  {block: htmlBlock},
	".xml":   {block: htmlBlock},
	".md":    {block: htmlBlock},
	".php":   {line: slashLine, block: starBlock},
}

// Strip removes comments from content according to the file's extension.
// Unknown extensions are returned unchanged. Heuristic by design: string
// literals containing comment markers are stripped along with real comments,
// which is acceptable for a token-budget trim.
func Strip(path, content string) string {
	ext := strings.ToLower(filepath.Ext(path))
	st, ok := styles[ext]
	if !ok {
		return content
	}
	out := content
	if st.block != nil {
		out = st.block.ReplaceAllString(out, "")
	}
	if st.line != nil {
		out = st.line.ReplaceAllString(out, "")
	}
	return out
}

// Supported reports whether Strip knows the file's comment syntax.
func Supported(path string) bool {
	_, ok := styles[strings.ToLower(filepath.Ext(path))]
	return ok
}
