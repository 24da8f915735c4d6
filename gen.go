package rex

import (
	"fmt"
	"io"

	"github.com/dave/jennifer/jen"
)

// Generated-table kind tags. The generator flattens lambda predicates to
// 256-bit membership masks and rejects lookahead, so the generated table
// needs fewer kinds than the engine.
const (
	genEpsilon = iota
	genAny
	genSymbol
	genRange
	genString
	genClass
)

// Generate compiles the pattern and writes a standalone Go source file to w:
// the NFA as a state table plus a self-contained accept function named
// <name>Accept. The generated file depends only on the standard library.
// Patterns using lookahead are not supported by the generator.
func Generate(w io.Writer, pattern, pkg, name string, opts ...CompileOption) error {
	if !validIdent(name) {
		return fmt.Errorf("name %q is not a valid identifier", name)
	}

	r, err := Compile(pattern, opts...)
	if err != nil {
		return err
	}

	a := r.auto
	idx := make(map[*state]int, len(a.states))
	for i, s := range a.states {
		idx[s] = i
	}

	stateType := lowerFirst(name) + "State"
	tableName := lowerFirst(name) + "States"

	f := jen.NewFile(pkg)
	f.HeaderComment(fmt.Sprintf("Code generated by rexgen from pattern %q. DO NOT EDIT.", pattern))

	f.Type().Id(stateType).Struct(
		jen.Id("kind").Uint8(),
		jen.Id("sym").Byte(),
		jen.Id("lo").Byte(),
		jen.Id("hi").Byte(),
		jen.Id("lit").String(),
		jen.Id("mask").Index(jen.Lit(32)).Byte(),
		jen.Id("next").Index().Int(),
	)

	var rows []jen.Code
	for _, s := range a.states {
		row, err := genRow(s, idx)
		if err != nil {
			return fmt.Errorf("pattern %q: %w", pattern, err)
		}
		rows = append(rows, row)
	}
	f.Var().Id(tableName).Op("=").Index().Id(stateType).Values(rows...)

	f.Comment(fmt.Sprintf("%sAccept reports whether input is wholly matched by the pattern %q.", name, pattern))
	f.Func().Id(name + "Accept").Params(jen.Id("input").String()).Bool().Block(
		genAcceptBody(tableName, idx[a.accept])...,
	)

	return f.Render(w)
}

// genRow renders one state as a table row.
func genRow(s *state, idx map[*state]int) (jen.Code, error) {
	d := jen.Dict{}
	switch s.kind {
	case kindEpsilon:
		// kind zero value
	case kindAny:
		d[jen.Id("kind")] = jen.Lit(genAny)
	case kindSymbol:
		d[jen.Id("kind")] = jen.Lit(genSymbol)
		d[jen.Id("sym")] = jen.Lit(s.sym)
	case kindRange:
		d[jen.Id("kind")] = jen.Lit(genRange)
		d[jen.Id("lo")] = jen.Lit(s.lo)
		d[jen.Id("hi")] = jen.Lit(s.hi)
	case kindString:
		d[jen.Id("kind")] = jen.Lit(genString)
		d[jen.Id("lit")] = jen.Lit(s.lit)
	case kindLambda:
		d[jen.Id("kind")] = jen.Lit(genClass)
		var mask [32]byte
		for c := 0; c < 256; c++ {
			if s.pred(byte(c)) {
				mask[c>>3] |= 1 << (c & 7)
			}
		}
		var bytes []jen.Code
		for _, b := range mask {
			bytes = append(bytes, jen.Lit(b))
		}
		d[jen.Id("mask")] = jen.Index(jen.Lit(32)).Byte().Values(bytes...)
	case kindPosLookahead, kindNegLookahead:
		return nil, fmt.Errorf("lookahead is not supported by the generator")
	}

	if len(s.next) > 0 {
		var next []jen.Code
		for _, n := range s.next {
			next = append(next, jen.Lit(idx[n]))
		}
		d[jen.Id("next")] = jen.Index().Int().Values(next...)
	}
	return jen.Values(d), nil
}

// genAcceptBody renders the Thompson simulation loop over the state table.
// It mirrors the engine's executor: a frontier of (state, offset) threads,
// epsilon closure between steps, accept-membership decision at the end.
func genAcceptBody(tableName string, accept int) []jen.Code {
	set := jen.Map(jen.Id("thread")).Struct()

	return []jen.Code{
		jen.Type().Id("thread").Struct(
			jen.Id("st").Int(),
			jen.Id("off").Int(),
		),

		jen.Id("closure").Op(":=").Func().Params(jen.Id("set").Add(set)).Block(
			jen.Id("queue").Op(":=").Make(jen.Index().Id("thread"), jen.Lit(0), jen.Len(jen.Id("set"))),
			jen.For(jen.Id("t").Op(":=").Range().Id("set")).Block(
				jen.Id("queue").Op("=").Append(jen.Id("queue"), jen.Id("t")),
			),
			jen.For(jen.Len(jen.Id("queue")).Op(">").Lit(0)).Block(
				jen.Id("t").Op(":=").Id("queue").Index(jen.Lit(0)),
				jen.Id("queue").Op("=").Id("queue").Index(jen.Lit(1), jen.Empty()),
				jen.If(jen.Id(tableName).Index(jen.Id("t").Dot("st")).Dot("kind").Op("!=").Lit(genEpsilon)).Block(
					jen.Continue(),
				),
				jen.For(jen.List(jen.Id("_"), jen.Id("n")).Op(":=").Range().Id(tableName).Index(jen.Id("t").Dot("st")).Dot("next")).Block(
					jen.Id("nt").Op(":=").Id("thread").Values(jen.Id("n"), jen.Lit(0)),
					jen.If(
						jen.List(jen.Id("_"), jen.Id("ok")).Op(":=").Id("set").Index(jen.Id("nt")),
						jen.Op("!").Id("ok"),
					).Block(
						jen.Id("set").Index(jen.Id("nt")).Op("=").Struct().Values(),
						jen.Id("queue").Op("=").Append(jen.Id("queue"), jen.Id("nt")),
					),
				),
			),
		),

		jen.Id("frontier").Op(":=").Add(set).Values(jen.Dict{
			jen.Values(jen.Lit(0), jen.Lit(0)): jen.Values(),
		}),
		jen.Id("closure").Call(jen.Id("frontier")),

		jen.For(jen.Id("i").Op(":=").Lit(0), jen.Id("i").Op("<").Len(jen.Id("input")), jen.Id("i").Op("++")).Block(
			jen.Id("c").Op(":=").Id("input").Index(jen.Id("i")),
			jen.Id("next").Op(":=").Make(jen.Add(set), jen.Len(jen.Id("frontier"))),
			jen.For(jen.Id("t").Op(":=").Range().Id("frontier")).Block(
				jen.Id("st").Op(":=").Op("&").Id(tableName).Index(jen.Id("t").Dot("st")),
				jen.Id("ok").Op(":=").False(),
				jen.Switch(jen.Id("st").Dot("kind")).Block(
					jen.Case(jen.Lit(genAny)).Block(
						jen.Id("ok").Op("=").Id("c").Op("!=").Lit(0),
					),
					jen.Case(jen.Lit(genSymbol)).Block(
						jen.Id("ok").Op("=").Id("c").Op("==").Id("st").Dot("sym"),
					),
					jen.Case(jen.Lit(genRange)).Block(
						jen.Id("ok").Op("=").Id("c").Op(">=").Id("st").Dot("lo").Op("&&").Id("c").Op("<=").Id("st").Dot("hi"),
					),
					jen.Case(jen.Lit(genString)).Block(
						jen.If(jen.Id("c").Op("==").Id("st").Dot("lit").Index(jen.Id("t").Dot("off"))).Block(
							jen.If(jen.Id("t").Dot("off").Op("+").Lit(1).Op("<").Len(jen.Id("st").Dot("lit"))).Block(
								jen.Id("next").Index(jen.Id("thread").Values(jen.Id("t").Dot("st"), jen.Id("t").Dot("off").Op("+").Lit(1))).Op("=").Struct().Values(),
							).Else().Block(
								jen.Id("ok").Op("=").True(),
							),
						),
					),
					jen.Case(jen.Lit(genClass)).Block(
						jen.Id("ok").Op("=").Id("st").Dot("mask").Index(jen.Id("c").Op(">>").Lit(3)).Op("&").Parens(jen.Lit(1).Op("<<").Parens(jen.Id("c").Op("&").Lit(7))).Op("!=").Lit(0),
					),
				),
				jen.If(jen.Op("!").Id("ok")).Block(jen.Continue()),
				jen.For(jen.List(jen.Id("_"), jen.Id("n")).Op(":=").Range().Id("st").Dot("next")).Block(
					jen.Id("next").Index(jen.Id("thread").Values(jen.Id("n"), jen.Lit(0))).Op("=").Struct().Values(),
				),
			),
			jen.Id("closure").Call(jen.Id("next")),
			jen.If(jen.Len(jen.Id("next")).Op("==").Lit(0)).Block(
				jen.Return(jen.False()),
			),
			jen.Id("frontier").Op("=").Id("next"),
		),

		jen.List(jen.Id("_"), jen.Id("ok")).Op(":=").Id("frontier").Index(jen.Id("thread").Values(jen.Lit(accept), jen.Lit(0))),
		jen.Return(jen.Id("ok")),
	}
}

func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || isAlpha(c) || (i > 0 && isDigit(c)) {
			continue
		}
		return false
	}
	return true
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	c := s[0]
	if c >= 'A' && c <= 'Z' {
		return string(c-'A'+'a') + s[1:]
	}
	return s
}
