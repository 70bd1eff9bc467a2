package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gobwas/glob"
)

const (
	windowsSeparator        = "\\"
	// gobwasSpecialCharacters are escaped when they appear as literals outside a class.
	gobwasSpecialCharacters = "*?[]{},\\!"
	// gobwasClassReserved cannot appear verbatim inside a gobwas class.
	gobwasClassReserved     = "\\]-!"
	// regexpNothing is a class that matches no character.
	regexpNothing           = `[^\x00-\x{10FFFF}]`
)

// patternMatcher is satisfied by compiled gobwas globs and by regexpPattern.
type patternMatcher interface {
	Match(value string) bool
}

// regexpPattern adapts an anchored regular expression to patternMatcher.
type regexpPattern struct {
	expression *regexp.Regexp
}

func (pattern regexpPattern) Match(value string) bool {
	return pattern.expression.MatchString(value)
}

// compiledPattern keeps one ignore pattern together with its compiled forms.
// A nil matcher marks a pattern that failed to compile and therefore never matches.
type compiledPattern struct {
	source          string
	whole           patternMatcher
	isDirectoryRule bool
	directoryName   patternMatcher
}

// Matcher decides whether scan entries are excluded by a set of shell-glob patterns.
// Patterns are matched against the whole slash-separated relative path, so "*"
// crosses segment boundaries.
type Matcher struct {
	patterns []compiledPattern
}

// NewMatcher compiles the provided patterns. Patterns that cannot be compiled are kept
// but never match.
func NewMatcher(patterns []string) *Matcher {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range DeduplicatePatterns(patterns) {
		entry := compiledPattern{source: pattern, whole: compileShellGlob(pattern)}
		if strings.HasSuffix(pattern, pathSegmentSeparator) {
			entry.isDirectoryRule = true
			entry.directoryName = compileShellGlob(strings.TrimSuffix(pattern, pathSegmentSeparator))
		}
		compiled = append(compiled, entry)
	}
	return &Matcher{patterns: compiled}
}

// Len returns the number of distinct patterns.
func (matcher *Matcher) Len() int {
	if matcher == nil {
		return 0
	}
	return len(matcher.patterns)
}

// ShouldIgnore reports whether a root-relative path is excluded. relativePath joins the
// real entry names with "/". A pattern excludes the path when it matches the full
// relative path, when it matches the base name, or, for patterns ending with a slash,
// when the entry is a directory whose name matches or when any ancestor directory of
// the path matches.
func (matcher *Matcher) ShouldIgnore(relativePath string, isDirectory bool) bool {
	if matcher == nil || len(matcher.patterns) == 0 {
		return false
	}
	fullPath := strings.ReplaceAll(relativePath, windowsSeparator, pathSegmentSeparator)
	baseName := relativePath[strings.LastIndex(relativePath, pathSegmentSeparator)+1:]
	ancestors := ancestorDirectories(relativePath)

	for _, pattern := range matcher.patterns {
		if pattern.whole == nil {
			continue
		}
		if pattern.whole.Match(fullPath) {
			return true
		}
		if pattern.isDirectoryRule {
			if isDirectory && pattern.directoryName != nil && pattern.directoryName.Match(baseName) {
				return true
			}
			for _, ancestor := range ancestors {
				if pattern.whole.Match(ancestor) {
					return true
				}
			}
		}
		if pattern.whole.Match(baseName) {
			return true
		}
	}
	return false
}

// ancestorDirectories returns every proper ancestor prefix of relativePath with a
// trailing slash, nearest first. "a/b/c" yields "a/b/" and "a/". The scan root is
// not an ancestor.
func ancestorDirectories(relativePath string) []string {
	var ancestors []string
	remaining := relativePath
	for {
		separatorIndex := strings.LastIndex(remaining, pathSegmentSeparator)
		if separatorIndex <= 0 {
			return ancestors
		}
		remaining = remaining[:separatorIndex]
		ancestors = append(ancestors, remaining+pathSegmentSeparator)
	}
}

type globTokenKind int

const (
	literalToken globTokenKind = iota
	anySequenceToken
	anyCharacterToken
	classToken
)

// globToken is one element of a parsed shell glob.
type globToken struct {
	kind    globTokenKind
	literal rune
	class   characterClass
}

// runeRange is an inclusive character range; lo never exceeds hi.
type runeRange struct {
	lo rune
	hi rune
}

// characterClass is a parsed "[...]" expression.
type characterClass struct {
	negated    bool
	characters []rune
	ranges     []runeRange
}

// compileShellGlob compiles pattern with fnmatch semantics: no path separators, braces
// and backslashes are literal, and an unterminated character class is a literal bracket.
// Classes gobwas cannot express send the whole pattern to regexp.
func compileShellGlob(pattern string) patternMatcher {
	if !utf8.ValidString(pattern) {
		return nil
	}
	tokens := parseShellGlob(pattern)
	if translated, ok := gobwasSyntax(tokens); ok {
		compiled, compileError := glob.Compile(translated)
		if compileError == nil {
			return compiled
		}
	}
	expression, compileError := regexp.Compile(regexpSyntax(tokens))
	if compileError != nil {
		return nil
	}
	return regexpPattern{expression: expression}
}

// parseShellGlob splits pattern into literals, wildcards and character classes.
func parseShellGlob(pattern string) []globToken {
	characters := []rune(pattern)
	var tokens []globToken
	for index := 0; index < len(characters); index++ {
		switch characters[index] {
		case '*':
			if len(tokens) == 0 || tokens[len(tokens)-1].kind != anySequenceToken {
				tokens = append(tokens, globToken{kind: anySequenceToken})
			}
		case '?':
			tokens = append(tokens, globToken{kind: anyCharacterToken})
		case '[':
			closing := classEnd(characters, index)
			if closing < 0 {
				tokens = append(tokens, globToken{kind: literalToken, literal: '['})
				continue
			}
			tokens = append(tokens, globToken{kind: classToken, class: parseClass(characters[index+1 : closing])})
			index = closing
		default:
			tokens = append(tokens, globToken{kind: literalToken, literal: characters[index]})
		}
	}
	return tokens
}

// classEnd returns the index of the bracket closing the class opened at start, or -1.
// A leading "!" and a "]" immediately after it belong to the class.
func classEnd(characters []rune, start int) int {
	position := start + 1
	if position < len(characters) && characters[position] == '!' {
		position++
	}
	if position < len(characters) && characters[position] == ']' {
		position++
	}
	for ; position < len(characters); position++ {
		if characters[position] == ']' {
			return position
		}
	}
	return -1
}

// parseClass reads the body of a class. "x-y" is a range, any other "-" is literal,
// and reversed ranges match nothing.
func parseClass(body []rune) characterClass {
	var class characterClass
	if len(body) > 0 && body[0] == '!' {
		class.negated = true
		body = body[1:]
	}
	for position := 0; position < len(body); {
		if position+2 < len(body) && body[position+1] == '-' {
			if body[position] <= body[position+2] {
				class.ranges = append(class.ranges, runeRange{lo: body[position], hi: body[position+2]})
			}
			position += 3
			continue
		}
		class.characters = append(class.characters, body[position])
		position++
	}
	return class
}

// gobwasSyntax renders tokens for gobwas/glob. It reports false when a class holds
// more than a plain character list or a single range.
func gobwasSyntax(tokens []globToken) (string, bool) {
	var builder strings.Builder
	for _, token := range tokens {
		switch token.kind {
		case anySequenceToken:
			builder.WriteByte('*')
		case anyCharacterToken:
			builder.WriteByte('?')
		case literalToken:
			if strings.ContainsRune(gobwasSpecialCharacters, token.literal) {
				builder.WriteByte('\\')
			}
			builder.WriteRune(token.literal)
		case classToken:
			rendered, ok := gobwasClass(token.class)
			if !ok {
				return "", false
			}
			builder.WriteString(rendered)
		}
	}
	return builder.String(), true
}

func gobwasClass(class characterClass) (string, bool) {
	var body string
	switch {
	case len(class.ranges) == 0 && len(class.characters) > 0:
		if strings.ContainsAny(string(class.characters), gobwasClassReserved) {
			return "", false
		}
		body = string(class.characters)
	case len(class.ranges) == 1 && len(class.characters) == 0:
		lo, hi := class.ranges[0].lo, class.ranges[0].hi
		if strings.ContainsRune(gobwasClassReserved, lo) || strings.ContainsRune(gobwasClassReserved, hi) {
			return "", false
		}
		body = string(lo) + "-" + string(hi)
	default:
		return "", false
	}
	if class.negated {
		return "[!" + body + "]", true
	}
	return "[" + body + "]", true
}

// regexpSyntax renders tokens as an anchored regular expression in which "." also
// matches newlines.
func regexpSyntax(tokens []globToken) string {
	var builder strings.Builder
	builder.WriteString(`^(?s:`)
	for _, token := range tokens {
		switch token.kind {
		case anySequenceToken:
			builder.WriteString(`.*`)
		case anyCharacterToken:
			builder.WriteByte('.')
		case literalToken:
			builder.WriteString(regexp.QuoteMeta(string(token.literal)))
		case classToken:
			builder.WriteString(regexpClass(token.class))
		}
	}
	builder.WriteString(`)$`)
	return builder.String()
}

func regexpClass(class characterClass) string {
	if len(class.characters) == 0 && len(class.ranges) == 0 {
		if class.negated {
			return "."
		}
		return regexpNothing
	}
	var builder strings.Builder
	builder.WriteByte('[')
	if class.negated {
		builder.WriteByte('^')
	}
	for _, character := range class.characters {
		builder.WriteString(regexpClassRune(character))
	}
	for _, span := range class.ranges {
		builder.WriteString(regexpClassRune(span.lo))
		builder.WriteByte('-')
		builder.WriteString(regexpClassRune(span.hi))
	}
	builder.WriteByte(']')
	return builder.String()
}

// regexpClassRune escapes ASCII punctuation so it is literal inside a class.
func regexpClassRune(character rune) string {
	if character < utf8.RuneSelf && !isAlphanumeric(character) {
		return `\` + string(character)
	}
	return string(character)
}

func isAlphanumeric(character rune) bool {
	return ('a' <= character && character <= 'z') ||
		('A' <= character && character <= 'Z') ||
		('0' <= character && character <= '9')
}
