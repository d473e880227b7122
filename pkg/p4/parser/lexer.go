// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package parser

import (
	"slices"

	"github.com/consensys/go-p4c/pkg/util/source"
	"github.com/consensys/go-p4c/pkg/util/source/lex"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace
const WHITESPACE uint = 1

// COMMENT signals "// ... \n"
const COMMENT uint = 2

// LBRACE signals "("
const LBRACE uint = 3

// RBRACE signals ")"
const RBRACE uint = 4

// LCURLY signals "{"
const LCURLY uint = 5

// RCURLY signals "}"
const RCURLY uint = 6

// LSQUARE signals "["
const LSQUARE uint = 7

// RSQUARE signals "]"
const RSQUARE uint = 8

// COMMA signals ","
const COMMA uint = 9

// SEMICOLON signals ";"
const SEMICOLON uint = 10

// DOT signals "."
const DOT uint = 11

// AT signals "@"
const AT uint = 12

// NUMBER signals an integer literal
const NUMBER uint = 13

// STRING signals a quoted string
const STRING uint = 14

// IDENTIFIER signals a name
const IDENTIFIER uint = 20

// KEYWORD_HEADER signals a header type declaration
const KEYWORD_HEADER uint = 21

// KEYWORD_STRUCT signals a struct type declaration
const KEYWORD_STRUCT uint = 22

// KEYWORD_EXTERN signals an extern declaration
const KEYWORD_EXTERN uint = 23

// KEYWORD_ACTION signals an action declaration
const KEYWORD_ACTION uint = 24

// KEYWORD_CONTROL signals a control declaration
const KEYWORD_CONTROL uint = 25

// KEYWORD_APPLY signals the body of a control
const KEYWORD_APPLY uint = 26

// KEYWORD_IF signals a conditional statement
const KEYWORD_IF uint = 27

// KEYWORD_ELSE signals the false branch of a conditional
const KEYWORD_ELSE uint = 28

// KEYWORD_RETURN signals a return statement
const KEYWORD_RETURN uint = 29

// KEYWORD_BIT signals an unsigned bit-string type
const KEYWORD_BIT uint = 30

// KEYWORD_INT signals a signed bit-string type
const KEYWORD_INT uint = 31

// KEYWORD_BOOL signals the boolean type
const KEYWORD_BOOL uint = 32

// KEYWORD_TUPLE signals a tuple type
const KEYWORD_TUPLE uint = 33

// KEYWORD_VOID signals the absence of a return value
const KEYWORD_VOID uint = 34

// KEYWORD_IN signals an input parameter
const KEYWORD_IN uint = 35

// KEYWORD_OUT signals an output parameter
const KEYWORD_OUT uint = 36

// KEYWORD_INOUT signals an input / output parameter
const KEYWORD_INOUT uint = 37

// KEYWORD_TRUE signals the literal "true"
const KEYWORD_TRUE uint = 38

// KEYWORD_FALSE signals the literal "false"
const KEYWORD_FALSE uint = 39

// EQUALS signals "="
const EQUALS uint = 50

// EQUALS_EQUALS signals "=="
const EQUALS_EQUALS uint = 51

// NOT_EQUALS signals "!="
const NOT_EQUALS uint = 52

// LESS_THAN signals "<"
const LESS_THAN uint = 53

// LESS_THAN_EQUALS signals "<="
const LESS_THAN_EQUALS uint = 54

// GREATER_THAN signals ">"
const GREATER_THAN uint = 55

// GREATER_THAN_EQUALS signals ">="
const GREATER_THAN_EQUALS uint = 56

// ADD signals "+"
const ADD uint = 57

// SUB signals "-"
const SUB uint = 58

// MUL signals "*"
const MUL uint = 59

// AMPERSAND signals "&"
const AMPERSAND uint = 60

// AND signals "&&"
const AND uint = 61

// BAR signals "|"
const BAR uint = 62

// OR signals "||"
const OR uint = 63

// CARET signals "^"
const CARET uint = 64

// BANG signals "!"
const BANG uint = 65

// TILDE signals "~"
const TILDE uint = 66

// KEYWORDS maps reserved words onto their token kinds.  Keywords are lexed as
// identifiers first, and then promoted.
var KEYWORDS = map[string]uint{
	"header":  KEYWORD_HEADER,
	"struct":  KEYWORD_STRUCT,
	"extern":  KEYWORD_EXTERN,
	"action":  KEYWORD_ACTION,
	"control": KEYWORD_CONTROL,
	"apply":   KEYWORD_APPLY,
	"if":      KEYWORD_IF,
	"else":    KEYWORD_ELSE,
	"return":  KEYWORD_RETURN,
	"bit":     KEYWORD_BIT,
	"int":     KEYWORD_INT,
	"bool":    KEYWORD_BOOL,
	"tuple":   KEYWORD_TUPLE,
	"void":    KEYWORD_VOID,
	"in":      KEYWORD_IN,
	"out":     KEYWORD_OUT,
	"inout":   KEYWORD_INOUT,
	"true":    KEYWORD_TRUE,
	"false":   KEYWORD_FALSE,
}

// Rule for describing whitespace
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\r'), lex.Unit('\n')))

var alphanumeric lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

// Rule for describing numbers.  This is deliberately liberal, accepting
// width-prefixed ("8w3"), hexadecimal ("0xff") and binary ("0b101") forms, with
// malformed literals being reported by the parser.
var number lex.Scanner[rune] = lex.Optional(lex.Within('0', '9'), lex.Many(alphanumeric))

var identifierStart lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

// Rule for describing identifiers
var identifier lex.Scanner[rune] = lex.Optional(identifierStart, lex.Many(alphanumeric))

// Rule for describing strings in quotes
var strung lex.Scanner[rune] = lex.Sequence(lex.Unit('"'), lex.Many(lex.Not('"')), lex.Unit('"'))

// Comments start with "//" and continue until a newline or EOF.
var comment lex.Scanner[rune] = lex.Optional(lex.Unit('/', '/'), lex.Until('\n'))

// lexing rules
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(comment, COMMENT),
	lex.Rule(lex.Unit('('), LBRACE),
	lex.Rule(lex.Unit(')'), RBRACE),
	lex.Rule(lex.Unit('{'), LCURLY),
	lex.Rule(lex.Unit('}'), RCURLY),
	lex.Rule(lex.Unit('['), LSQUARE),
	lex.Rule(lex.Unit(']'), RSQUARE),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(lex.Unit(';'), SEMICOLON),
	lex.Rule(lex.Unit('.'), DOT),
	lex.Rule(lex.Unit('@'), AT),
	lex.Rule(lex.Unit('=', '='), EQUALS_EQUALS),
	lex.Rule(lex.Unit('!', '='), NOT_EQUALS),
	lex.Rule(lex.Unit('<', '='), LESS_THAN_EQUALS),
	lex.Rule(lex.Unit('>', '='), GREATER_THAN_EQUALS),
	lex.Rule(lex.Unit('&', '&'), AND),
	lex.Rule(lex.Unit('|', '|'), OR),
	lex.Rule(lex.Unit('<'), LESS_THAN),
	lex.Rule(lex.Unit('>'), GREATER_THAN),
	lex.Rule(lex.Unit('='), EQUALS),
	lex.Rule(lex.Unit('+'), ADD),
	lex.Rule(lex.Unit('-'), SUB),
	lex.Rule(lex.Unit('*'), MUL),
	lex.Rule(lex.Unit('&'), AMPERSAND),
	lex.Rule(lex.Unit('|'), BAR),
	lex.Rule(lex.Unit('^'), CARET),
	lex.Rule(lex.Unit('!'), BANG),
	lex.Rule(lex.Unit('~'), TILDE),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(number, NUMBER),
	lex.Rule(strung, STRING),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// Lex a given source file into a sequence of zero or more tokens, along with
// any syntax errors arising.  Whitespace and comments are dropped, and
// identifiers which are reserved words are promoted to keywords.
func Lex(srcfile *source.File) ([]lex.Token, []source.SyntaxError) {
	var (
		lexer = lex.NewLexer(srcfile.Contents(), rules...)
		// Lex as many tokens as possible
		tokens = lexer.Collect()
	)
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start, end := lexer.Index(), lexer.Index()+lexer.Remaining()
		err := srcfile.SyntaxError(source.NewSpan(int(start), int(end)), "unknown text encountered")
		// errors
		return nil, []source.SyntaxError{*err}
	}
	// Remove whitespace and comments
	tokens = slices.DeleteFunc(tokens, func(t lex.Token) bool {
		return t.Kind == WHITESPACE || t.Kind == COMMENT
	})
	// Promote keywords
	for i, t := range tokens {
		if t.Kind == IDENTIFIER {
			text := string(srcfile.Contents()[t.Span.Start():t.Span.End()])
			//
			if kind, ok := KEYWORDS[text]; ok {
				tokens[i].Kind = kind
			}
		}
	}
	// Done
	return tokens, nil
}
