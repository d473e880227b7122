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
	"strconv"
	"strings"

	"github.com/consensys/go-p4c/pkg/p4/ast"
	"github.com/consensys/go-p4c/pkg/p4/ast/data"
	"github.com/consensys/go-p4c/pkg/util"
	"github.com/consensys/go-p4c/pkg/util/source"
	"github.com/consensys/go-p4c/pkg/util/source/lex"
)

// Parse accepts a given source file and parses it into a program, along with a
// source map which maps every node of the program back to its originating
// span.  Parsing stops at the first syntax error encountered.
func Parse(srcfile *source.File) (*ast.Program, *source.Map[any], []source.SyntaxError) {
	parser := NewParser(srcfile)
	// Parse declarations
	program, errs := parser.Parse()
	//
	return program, parser.srcmap, errs
}

// BINOPS captures the binary operators in order of increasing precedence.
// Operators within the same group have the same precedence, and all are left
// associative.
var BINOPS = [][]uint{
	{OR},
	{AND},
	{EQUALS_EQUALS, NOT_EQUALS},
	{LESS_THAN, LESS_THAN_EQUALS, GREATER_THAN, GREATER_THAN_EQUALS},
	{BAR},
	{CARET},
	{AMPERSAND},
	{ADD, SUB},
	{MUL},
}

var binOpOfToken = map[uint]ast.BinOp{
	OR:                  ast.LOR,
	AND:                 ast.LAND,
	EQUALS_EQUALS:       ast.EQ,
	NOT_EQUALS:          ast.NEQ,
	LESS_THAN:           ast.LT,
	LESS_THAN_EQUALS:    ast.LTEQ,
	GREATER_THAN:        ast.GT,
	GREATER_THAN_EQUALS: ast.GTEQ,
	BAR:                 ast.BOR,
	CARET:               ast.BXOR,
	AMPERSAND:           ast.BAND,
	ADD:                 ast.ADD,
	SUB:                 ast.SUB,
	MUL:                 ast.MUL,
}

// ============================================================================
// Parser
// ============================================================================

// Parser is a recursive descent parser for P4 source files.
type Parser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Source mapping
	srcmap *source.Map[any]
	// Position within the tokens
	index int
	// Types declared so far
	env Environment
}

// NewParser constructs a new parser for a given source file.
func NewParser(srcfile *source.File) *Parser {
	// Construct (initially empty) source mapping
	srcmap := source.NewSourceMap[any](*srcfile)
	//
	return &Parser{srcfile, nil, srcmap, 0, Environment{}}
}

// Parse the given source file into a program, or some number of syntax errors.
func (p *Parser) Parse() (*ast.Program, []source.SyntaxError) {
	var (
		decls  []ast.Declaration
		decl   ast.Declaration
		errors []source.SyntaxError
	)
	// Convert source file into tokens
	if p.tokens, errors = Lex(p.srcfile); len(errors) > 0 {
		return nil, errors
	}
	// Continue going until all consumed
	for p.lookahead().Kind != END_OF {
		lookahead := p.lookahead()
		// Determine type of declaration
		switch lookahead.Kind {
		case KEYWORD_HEADER, KEYWORD_STRUCT:
			decl, errors = p.parseTypeDecl()
		case KEYWORD_EXTERN:
			decl, errors = p.parseExtern()
		case KEYWORD_ACTION:
			decl, errors = p.parseAction()
		case KEYWORD_CONTROL:
			decl, errors = p.parseControl()
		case AT:
			decl, errors = p.parseVariable()
		case KEYWORD_VOID, KEYWORD_BIT, KEYWORD_INT, KEYWORD_BOOL, KEYWORD_TUPLE, IDENTIFIER:
			decl, errors = p.parseFunctionOrVariable()
		default:
			errors = p.syntaxErrors(lookahead, "unknown declaration")
		}
		//
		if len(errors) > 0 {
			return nil, errors
		}
		//
		decls = append(decls, decl)
	}
	//
	return ast.NewProgram(decls...), nil
}

// Parse a header or struct declaration, which declares a new type.
func (p *Parser) parseTypeDecl() (ast.Declaration, []source.SyntaxError) {
	var (
		start    = p.index
		header   = p.match(KEYWORD_HEADER)
		name     string
		fields   []data.Field
		datatype data.StructLike
		errs     []source.SyntaxError
	)
	//
	if !header {
		if _, errs = p.expect(KEYWORD_STRUCT); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	lookahead := p.lookahead()
	//
	if name, errs = p.parseIdentifier(); len(errs) > 0 {
		return nil, errs
	} else if p.env.IsType(name) {
		return nil, p.syntaxErrors(lookahead, "type already declared")
	} else if _, errs = p.expect(LCURLY); len(errs) > 0 {
		return nil, errs
	}
	//
	for !p.match(RCURLY) {
		var (
			field     data.Field
			fieldTok  lex.Token
			typeStart = p.lookahead()
		)
		//
		if field.Type, errs = p.parseType(); len(errs) > 0 {
			return nil, errs
		} else if header && !data.IsScalar(field.Type) {
			return nil, p.syntaxErrors(typeStart, "header field must be bit, int or bool")
		}
		//
		fieldTok = p.lookahead()
		//
		if field.Name, errs = p.parseIdentifier(); len(errs) > 0 {
			return nil, errs
		} else if slices.ContainsFunc(fields, func(f data.Field) bool { return f.Name == field.Name }) {
			return nil, p.syntaxErrors(fieldTok, "duplicate field")
		} else if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
			return nil, errs
		}
		//
		fields = append(fields, field)
	}
	//
	if header {
		datatype = data.NewHeader(name, fields...)
	} else {
		datatype = data.NewStruct(name, fields...)
	}
	//
	p.env.DeclareType(datatype)
	decl := &ast.TypeDecl{Type: datatype}
	p.srcmap.Put(decl, p.spanOf(start, p.index-1))
	//
	return decl, nil
}

// Parse an extern function declaration, which has no body.
func (p *Parser) parseExtern() (ast.Declaration, []source.SyntaxError) {
	var (
		start  = p.index
		ret    data.Type
		name   string
		params []*ast.Parameter
		errs   []source.SyntaxError
	)
	//
	if _, errs = p.expect(KEYWORD_EXTERN); len(errs) > 0 {
		return nil, errs
	} else if ret, errs = p.parseReturnType(); len(errs) > 0 {
		return nil, errs
	} else if name, errs = p.parseIdentifier(); len(errs) > 0 {
		return nil, errs
	} else if params, errs = p.parseParameters(); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	decl := ast.NewExtern(name, ret, params...)
	p.srcmap.Put(decl, p.spanOf(start, p.index-1))
	//
	return decl, nil
}

// Parse an action declaration.
func (p *Parser) parseAction() (*ast.Action, []source.SyntaxError) {
	var (
		start  = p.index
		name   string
		params []*ast.Parameter
		body   *ast.Block
		errs   []source.SyntaxError
	)
	//
	if _, errs = p.expect(KEYWORD_ACTION); len(errs) > 0 {
		return nil, errs
	} else if name, errs = p.parseIdentifier(); len(errs) > 0 {
		return nil, errs
	} else if params, errs = p.parseParameters(); len(errs) > 0 {
		return nil, errs
	} else if body, errs = p.parseBlock(); len(errs) > 0 {
		return nil, errs
	}
	//
	decl := ast.NewAction(name, params, body)
	p.srcmap.Put(decl, p.spanOf(start, p.index-1))
	//
	return decl, nil
}

// Parse a control declaration, consisting of zero or more local declarations
// followed by an apply block.
func (p *Parser) parseControl() (ast.Declaration, []source.SyntaxError) {
	var (
		start  = p.index
		name   string
		params []*ast.Parameter
		locals []ast.Declaration
		local  ast.Declaration
		body   *ast.Block
		errs   []source.SyntaxError
	)
	//
	if _, errs = p.expect(KEYWORD_CONTROL); len(errs) > 0 {
		return nil, errs
	} else if name, errs = p.parseIdentifier(); len(errs) > 0 {
		return nil, errs
	} else if params, errs = p.parseParameters(); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(LCURLY); len(errs) > 0 {
		return nil, errs
	}
	// Parse locals
	for !p.match(KEYWORD_APPLY) {
		switch p.lookahead().Kind {
		case KEYWORD_ACTION:
			local, errs = p.parseAction()
		case AT, KEYWORD_BIT, KEYWORD_INT, KEYWORD_BOOL, KEYWORD_TUPLE, IDENTIFIER:
			local, errs = p.parseVariable()
		default:
			errs = p.syntaxErrors(p.lookahead(), "expected local declaration or apply")
		}
		//
		if len(errs) > 0 {
			return nil, errs
		}
		//
		locals = append(locals, local)
	}
	// Parse apply block
	if body, errs = p.parseBlock(); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(RCURLY); len(errs) > 0 {
		return nil, errs
	}
	//
	decl := ast.NewControl(name, params, locals, body)
	p.srcmap.Put(decl, p.spanOf(start, p.index-1))
	//
	return decl, nil
}

// Parse either a function or a variable declaration.  These both begin with a
// type followed by an identifier, and are distinguished by what follows.
func (p *Parser) parseFunctionOrVariable() (ast.Declaration, []source.SyntaxError) {
	var (
		start    = p.index
		datatype data.Type
		name     string
		errs     []source.SyntaxError
	)
	//
	if datatype, errs = p.parseReturnType(); len(errs) > 0 {
		return nil, errs
	} else if name, errs = p.parseIdentifier(); len(errs) > 0 {
		return nil, errs
	} else if !p.follows(LBRACE) {
		return p.parseVariableRest(start, nil, datatype, name)
	}
	//
	params, errs := p.parseParameters()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	body, errs := p.parseBlock()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	decl := ast.NewFunction(name, datatype, params, body)
	p.srcmap.Put(decl, p.spanOf(start, p.index-1))
	//
	return decl, nil
}

// Parse a variable declaration, including any annotations.
func (p *Parser) parseVariable() (*ast.Variable, []source.SyntaxError) {
	var (
		start       = p.index
		annotations []*ast.Annotation
		datatype    data.Type
		name        string
		errs        []source.SyntaxError
	)
	//
	if annotations, errs = p.parseAnnotations(); len(errs) > 0 {
		return nil, errs
	} else if datatype, errs = p.parseType(); len(errs) > 0 {
		return nil, errs
	} else if name, errs = p.parseIdentifier(); len(errs) > 0 {
		return nil, errs
	}
	//
	return p.parseVariableRest(start, annotations, datatype, name)
}

// Parse the remainder of a variable declaration after its name, namely an
// optional initialiser followed by a semi-colon.
func (p *Parser) parseVariableRest(start int, annotations []*ast.Annotation, datatype data.Type,
	name string) (*ast.Variable, []source.SyntaxError) {
	//
	if _, ok := datatype.(*data.Void); ok {
		return nil, p.syntaxErrors(p.tokens[start], "variable cannot have void type")
	}
	//
	decl := ast.NewVariable(name, datatype)
	decl.Annotations = annotations
	//
	if p.match(EQUALS) {
		init, errs := p.parseExpr()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		decl.Initializer = util.Some(init)
	}
	//
	if _, errs := p.expect(SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	p.srcmap.Put(decl, p.spanOf(start, p.index-1))
	//
	return decl, nil
}

// Parse zero or more annotations of the form "@label" or "@label(...)".  The
// contents of the braces are retained as raw source text.
func (p *Parser) parseAnnotations() ([]*ast.Annotation, []source.SyntaxError) {
	var annotations []*ast.Annotation
	//
	for p.follows(AT) {
		var (
			start = p.index
			label string
			body  string
			errs  []source.SyntaxError
		)
		//
		p.match(AT)
		//
		if label, errs = p.parseIdentifier(); len(errs) > 0 {
			return nil, errs
		} else if p.follows(LBRACE) {
			if body, errs = p.parseAnnotationBody(); len(errs) > 0 {
				return nil, errs
			}
		}
		//
		annotation := &ast.Annotation{Label: label, Body: body}
		p.srcmap.Put(annotation, p.spanOf(start, p.index-1))
		annotations = append(annotations, annotation)
	}
	//
	return annotations, nil
}

func (p *Parser) parseAnnotationBody() (string, []source.SyntaxError) {
	var (
		open  = p.lookahead()
		depth = 0
	)
	//
	for {
		lookahead := p.lookahead()
		//
		switch lookahead.Kind {
		case LBRACE:
			depth++
		case RBRACE:
			depth--
		case END_OF:
			return "", p.syntaxErrors(open, "unterminated annotation")
		}
		//
		p.index++
		//
		if depth == 0 {
			contents := p.srcfile.Contents()
			return string(contents[open.Span.End():lookahead.Span.Start()]), nil
		}
	}
}

// Parse a (possibly empty) list of parameters in braces.
func (p *Parser) parseParameters() ([]*ast.Parameter, []source.SyntaxError) {
	var (
		params []*ast.Parameter
		errs   []source.SyntaxError
	)
	//
	if _, errs = p.expect(LBRACE); len(errs) > 0 {
		return nil, errs
	} else if p.match(RBRACE) {
		return nil, nil
	}
	//
	for {
		var (
			start    = p.index
			dir      = ast.NONE
			datatype data.Type
			name     string
		)
		//
		switch {
		case p.match(KEYWORD_IN):
			dir = ast.IN
		case p.match(KEYWORD_OUT):
			dir = ast.OUT
		case p.match(KEYWORD_INOUT):
			dir = ast.INOUT
		}
		//
		if datatype, errs = p.parseType(); len(errs) > 0 {
			return nil, errs
		} else if name, errs = p.parseIdentifier(); len(errs) > 0 {
			return nil, errs
		}
		//
		param := ast.NewParameter(dir, datatype, name)
		p.srcmap.Put(param, p.spanOf(start, p.index-1))
		params = append(params, param)
		//
		if p.match(RBRACE) {
			return params, nil
		} else if _, errs = p.expect(COMMA); len(errs) > 0 {
			return nil, errs
		}
	}
}

// ============================================================================
// Types
// ============================================================================

func (p *Parser) parseReturnType() (data.Type, []source.SyntaxError) {
	if p.match(KEYWORD_VOID) {
		return &data.Void{}, nil
	}
	//
	return p.parseType()
}

// Parse a type, which may be followed by one or more array dimensions.
func (p *Parser) parseType() (data.Type, []source.SyntaxError) {
	var (
		datatype, errs = p.parseBaseType()
		size           uint
	)
	//
	for len(errs) == 0 && p.match(LSQUARE) {
		if size, errs = p.parseSize(); len(errs) > 0 {
			return nil, errs
		} else if _, errs = p.expect(RSQUARE); len(errs) > 0 {
			return nil, errs
		}
		//
		datatype = data.NewStack(datatype, size)
	}
	//
	return datatype, errs
}

func (p *Parser) parseBaseType() (data.Type, []source.SyntaxError) {
	var lookahead = p.lookahead()
	//
	switch lookahead.Kind {
	case KEYWORD_BIT, KEYWORD_INT:
		p.match(lookahead.Kind)
		//
		if _, errs := p.expect(LESS_THAN); len(errs) > 0 {
			return nil, errs
		}
		//
		width, errs := p.parseSize()
		if len(errs) > 0 {
			return nil, errs
		} else if _, errs = p.expect(GREATER_THAN); len(errs) > 0 {
			return nil, errs
		}
		//
		return data.NewBits(width, lookahead.Kind == KEYWORD_INT), nil
	case KEYWORD_BOOL:
		p.match(KEYWORD_BOOL)
		return &data.Bool{}, nil
	case KEYWORD_TUPLE:
		var elements []data.Type
		//
		p.match(KEYWORD_TUPLE)
		//
		if _, errs := p.expect(LESS_THAN); len(errs) > 0 {
			return nil, errs
		}
		//
		for {
			element, errs := p.parseType()
			if len(errs) > 0 {
				return nil, errs
			}
			//
			elements = append(elements, element)
			//
			if p.match(GREATER_THAN) {
				return data.NewTuple(elements...), nil
			} else if _, errs = p.expect(COMMA); len(errs) > 0 {
				return nil, errs
			}
		}
	case IDENTIFIER:
		name := p.string(lookahead)
		//
		if !p.env.IsType(name) {
			return nil, p.syntaxErrors(lookahead, "unknown type")
		}
		//
		p.match(IDENTIFIER)
		//
		return p.env.LookupType(name), nil
	default:
		return nil, p.syntaxErrors(lookahead, "expected type")
	}
}

// Parse a positive decimal size, such as a bit width or a stack size.
func (p *Parser) parseSize() (uint, []source.SyntaxError) {
	tok, errs := p.expect(NUMBER)
	//
	if len(errs) > 0 {
		return 0, errs
	}
	//
	size, err := strconv.ParseUint(p.string(tok), 10, 32)
	//
	if err != nil || size == 0 {
		return 0, p.syntaxErrors(tok, "invalid size")
	}
	//
	return uint(size), nil
}

// ============================================================================
// Statements
// ============================================================================

func (p *Parser) parseBlock() (*ast.Block, []source.SyntaxError) {
	var (
		start = p.index
		stmts []ast.Statement
	)
	//
	if _, errs := p.expect(LCURLY); len(errs) > 0 {
		return nil, errs
	}
	//
	for !p.match(RCURLY) {
		stmt, errs := p.parseStatement()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		stmts = append(stmts, stmt)
	}
	//
	block := ast.NewBlock(stmts...)
	p.srcmap.Put(block, p.spanOf(start, p.index-1))
	//
	return block, nil
}

func (p *Parser) parseStatement() (ast.Statement, []source.SyntaxError) {
	var lookahead = p.lookahead()
	//
	switch {
	case lookahead.Kind == LCURLY:
		return p.parseBlock()
	case lookahead.Kind == KEYWORD_IF:
		return p.parseIf()
	case lookahead.Kind == KEYWORD_RETURN:
		return p.parseReturn()
	case p.followsVariable():
		return p.parseVariable()
	default:
		return p.parseAssignmentOrCall()
	}
}

// Determine whether a variable declaration follows.  An identifier starts a
// declaration only when it names a type and is followed by either a variable
// name or an array dimension.
func (p *Parser) followsVariable() bool {
	switch p.lookahead().Kind {
	case AT, KEYWORD_BIT, KEYWORD_INT, KEYWORD_BOOL, KEYWORD_TUPLE:
		return true
	case IDENTIFIER:
		next := p.tokens[p.index+1].Kind
		return p.env.IsType(p.string(p.lookahead())) && (next == IDENTIFIER || next == LSQUARE)
	default:
		return false
	}
}

func (p *Parser) parseIf() (ast.Statement, []source.SyntaxError) {
	var (
		start = p.index
		stmt  ast.If
		errs  []source.SyntaxError
	)
	//
	if _, errs = p.expect(KEYWORD_IF); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(LBRACE); len(errs) > 0 {
		return nil, errs
	} else if stmt.Cond, errs = p.parseExpr(); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(RBRACE); len(errs) > 0 {
		return nil, errs
	} else if stmt.Then, errs = p.parseStatement(); len(errs) > 0 {
		return nil, errs
	} else if p.match(KEYWORD_ELSE) {
		if stmt.Else, errs = p.parseStatement(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	p.srcmap.Put(&stmt, p.spanOf(start, p.index-1))
	//
	return &stmt, nil
}

func (p *Parser) parseReturn() (ast.Statement, []source.SyntaxError) {
	var (
		start = p.index
		stmt  = &ast.Return{Value: util.None[ast.Expr]()}
	)
	//
	p.match(KEYWORD_RETURN)
	//
	if !p.follows(SEMICOLON) {
		value, errs := p.parseExpr()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		stmt.Value = util.Some(value)
	}
	//
	if _, errs := p.expect(SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	p.srcmap.Put(stmt, p.spanOf(start, p.index-1))
	//
	return stmt, nil
}

func (p *Parser) parseAssignmentOrCall() (ast.Statement, []source.SyntaxError) {
	var (
		start     = p.index
		lookahead = p.lookahead()
		stmt      ast.Statement
		lhs, errs = p.parseExpr()
	)
	//
	if len(errs) > 0 {
		return nil, errs
	} else if p.match(EQUALS) {
		rhs, errs := p.parseExpr()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		stmt = &ast.Assign{Target: lhs, Source: rhs}
	} else if call, ok := lhs.(*ast.Call); ok {
		stmt = &ast.CallStmt{Call: call}
	} else {
		return nil, p.syntaxErrors(lookahead, "expected assignment or call")
	}
	//
	if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	p.srcmap.Put(stmt, p.spanOf(start, p.index-1))
	//
	return stmt, nil
}

// ============================================================================
// Expressions
// ============================================================================

func (p *Parser) parseExpr() (ast.Expr, []source.SyntaxError) {
	return p.parseBinaryExpr(0)
}

// Parse a binary expression whose operators are at the given precedence level
// or higher.
func (p *Parser) parseBinaryExpr(level int) (ast.Expr, []source.SyntaxError) {
	if level == len(BINOPS) {
		return p.parseUnaryExpr()
	}
	//
	var (
		start     = p.index
		lhs, errs = p.parseBinaryExpr(level + 1)
	)
	//
	for len(errs) == 0 && p.follows(BINOPS[level]...) {
		var (
			op  = binOpOfToken[p.lookahead().Kind]
			rhs ast.Expr
		)
		//
		p.index++
		//
		if rhs, errs = p.parseBinaryExpr(level + 1); len(errs) > 0 {
			return nil, errs
		}
		//
		lhs = &ast.Binary{Op: op, Left: lhs, Right: rhs}
		p.srcmap.Put(lhs, p.spanOf(start, p.index-1))
	}
	//
	return lhs, errs
}

func (p *Parser) parseUnaryExpr() (ast.Expr, []source.SyntaxError) {
	var (
		start = p.index
		op    ast.UnOp
	)
	//
	switch {
	case p.match(BANG):
		op = ast.NOT
	case p.match(SUB):
		op = ast.NEG
	case p.match(TILDE):
		op = ast.CMPL
	default:
		return p.parsePostfixExpr()
	}
	//
	arg, errs := p.parseUnaryExpr()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	expr := &ast.Unary{Op: op, Expr: arg}
	p.srcmap.Put(expr, p.spanOf(start, p.index-1))
	//
	return expr, nil
}

func (p *Parser) parsePostfixExpr() (ast.Expr, []source.SyntaxError) {
	var (
		start      = p.index
		expr, errs = p.parseAtomicExpr()
	)
	//
	for len(errs) == 0 {
		switch {
		case p.match(DOT):
			var field string
			//
			if field, errs = p.parseIdentifier(); len(errs) > 0 {
				return nil, errs
			}
			//
			expr = ast.NewMember(expr, field)
		case p.match(LSQUARE):
			tok, errs := p.expect(NUMBER)
			if len(errs) > 0 {
				return nil, errs
			}
			//
			index, err := strconv.ParseUint(p.string(tok), 10, 32)
			if err != nil {
				return nil, p.syntaxErrors(tok, "invalid index")
			} else if _, errs = p.expect(RSQUARE); len(errs) > 0 {
				return nil, errs
			}
			//
			expr = &ast.Index{Expr: expr, Index: uint(index)}
		case p.follows(LBRACE):
			var args []ast.Expr
			//
			if args, errs = p.parseArguments(); len(errs) > 0 {
				return nil, errs
			}
			//
			expr = &ast.Call{Func: expr, Args: args}
		default:
			return expr, nil
		}
		//
		p.srcmap.Put(expr, p.spanOf(start, p.index-1))
	}
	//
	return nil, errs
}

func (p *Parser) parseAtomicExpr() (ast.Expr, []source.SyntaxError) {
	var (
		start     = p.index
		lookahead = p.lookahead()
		atom      ast.Expr
		errs      []source.SyntaxError
	)
	//
	switch lookahead.Kind {
	case IDENTIFIER:
		p.match(IDENTIFIER)
		atom = ast.NewPath(p.string(lookahead))
	case NUMBER:
		p.match(NUMBER)
		//
		if atom, errs = p.number(lookahead); len(errs) > 0 {
			return nil, errs
		}
	case KEYWORD_TRUE, KEYWORD_FALSE:
		p.match(lookahead.Kind)
		atom = &ast.Boolean{Value: lookahead.Kind == KEYWORD_TRUE}
	case LBRACE:
		p.match(LBRACE)
		//
		expr, errs := p.parseExpr()
		if len(errs) > 0 {
			return nil, errs
		} else if _, errs = p.expect(RBRACE); len(errs) > 0 {
			return nil, errs
		}
		// Don't add to source map, since it will already have been added.
		return expr, nil
	case LCURLY:
		var elements []ast.Expr
		//
		if elements, errs = p.parseExprList(LCURLY, RCURLY); len(errs) > 0 {
			return nil, errs
		}
		//
		atom = &ast.List{Elements: elements}
	default:
		return nil, p.syntaxErrors(lookahead, "unexpected token")
	}
	//
	p.srcmap.Put(atom, p.spanOf(start, p.index-1))
	//
	return atom, nil
}

func (p *Parser) parseArguments() ([]ast.Expr, []source.SyntaxError) {
	return p.parseExprList(LBRACE, RBRACE)
}

// Parse a sequence of zero or more expressions separated by a comma, and
// enclosed by the given braces.
func (p *Parser) parseExprList(lBrace, rBrace uint) ([]ast.Expr, []source.SyntaxError) {
	var (
		exprs []ast.Expr
		expr  ast.Expr
		errs  []source.SyntaxError
	)
	//
	if _, errs = p.expect(lBrace); len(errs) > 0 {
		return nil, errs
	} else if p.match(rBrace) {
		return nil, nil
	}
	//
	for {
		if expr, errs = p.parseExpr(); len(errs) > 0 {
			return nil, errs
		}
		//
		exprs = append(exprs, expr)
		//
		if p.match(rBrace) {
			return exprs, nil
		} else if _, errs = p.expect(COMMA); len(errs) > 0 {
			return nil, errs
		}
	}
}

func (p *Parser) parseIdentifier() (string, []source.SyntaxError) {
	tok, errs := p.expect(IDENTIFIER)
	//
	if len(errs) > 0 {
		return "", errs
	}
	//
	return p.string(tok), nil
}

// Get the text representing the given token as a string.
func (p *Parser) string(token lex.Token) string {
	start, end := token.Span.Start(), token.Span.End()
	return string(p.srcfile.Contents()[start:end])
}

// Parse an integer literal, such as "42", "0xff", "8w3" or "16w0b1010".
// Underscores may be used as separators.
func (p *Parser) number(token lex.Token) (*ast.Constant, []source.SyntaxError) {
	var (
		constant ast.Constant
		numstr   = strings.ReplaceAll(p.string(token), "_", "")
	)
	// Extract width (if present)
	if i := strings.IndexByte(numstr, 'w'); i > 0 && isDecimal(numstr[:i]) {
		width, err := strconv.ParseUint(numstr[:i], 10, 32)
		//
		if err != nil || width == 0 {
			return nil, p.syntaxErrors(token, "invalid width")
		}
		//
		constant.Width = uint(width)
		numstr = numstr[i+1:]
	}
	// Determine base
	switch {
	case strings.HasPrefix(numstr, "0x"), strings.HasPrefix(numstr, "0X"):
		constant.Base, numstr = 16, numstr[2:]
	case strings.HasPrefix(numstr, "0b"), strings.HasPrefix(numstr, "0B"):
		constant.Base, numstr = 2, numstr[2:]
	default:
		constant.Base = 10
	}
	//
	if _, ok := constant.Value.SetString(numstr, int(constant.Base)); !ok {
		return nil, p.syntaxErrors(token, "malformed numeric literal")
	} else if constant.Width != 0 && constant.Value.BitLen() > int(constant.Width) {
		return nil, p.syntaxErrors(token, "literal does not fit in width")
	}
	//
	return &constant, nil
}

func isDecimal(str string) bool {
	for _, c := range str {
		if c < '0' || c > '9' {
			return false
		}
	}
	//
	return true
}

// Lookahead returns the next token.  This must exist because EOF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

// Expect returns an error if the next token is not what was expected.
func (p *Parser) expect(kind uint) (lex.Token, []source.SyntaxError) {
	lookahead := p.lookahead()
	//
	if lookahead.Kind != kind {
		errs := p.syntaxErrors(lookahead, "unexpected token")
		return lookahead, errs
	}
	//
	p.index++
	//
	return lookahead, nil
}

// Match attempts to match the given token.
func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

// Follows checks whether one of the given token kinds is next.
func (p *Parser) follows(options ...uint) bool {
	return slices.Contains(options, p.lookahead().Kind)
}

func (p *Parser) spanOf(firstToken, lastToken int) source.Span {
	//
	start := p.tokens[firstToken].Span.Start()
	end := p.tokens[lastToken].Span.End()
	//
	return source.NewSpan(start, end)
}

func (p *Parser) syntaxErrors(token lex.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}
