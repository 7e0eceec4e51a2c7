package workload

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes
const (
	whitespaceCode = iota
	numberCode
	commaCode
	commentCode
)

// Token definitions
var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	numberToken     = parsly.NewToken(numberCode, "Number", &numberMatcher{})
	commaToken      = parsly.NewToken(commaCode, ",", matcher.NewByte(','))
	commentToken    = parsly.NewToken(commentCode, "Comment", &commentMatcher{})
)

// numberMatcher matches an unsigned decimal integer
type numberMatcher struct{}

func (m *numberMatcher) Match(cursor *parsly.Cursor) int {
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if !isDigit(cursor.Input[i]) {
			break
		}
		matched++
	}
	return matched
}

// commentMatcher matches '#' up to the end of input
type commentMatcher struct{}

func (m *commentMatcher) Match(cursor *parsly.Cursor) int {
	if cursor.Pos >= cursor.InputSize || cursor.Input[cursor.Pos] != '#' {
		return 0
	}
	return cursor.InputSize - cursor.Pos
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
