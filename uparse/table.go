package uparse

import "github.com/dhamidi/parse/value"

// DefaultTable builds the base dialect: all keywords and all literal
// datatype entries. Every call returns a fresh table, so editing one
// never leaks into another parse.
func DefaultTable() *Table {
	t := NewTable()

	keyword := func(name string, params []ParamKind, match MatchFunc) {
		t.Set(KeywordKey(name), &Def{Name: name, Params: params, Match: match})
	}
	datatype := func(k value.Kind, match MatchFunc) {
		t.Set(TypeKey(k), &Def{Match: match})
	}

	sub := []ParamKind{ParamSub}
	quotedSub := []ParamKind{ParamQuoted, ParamSub}

	keyword("opt", sub, matchOpt)
	keyword("any", sub, matchAny)
	keyword("some", sub, matchSome)
	keyword("while", sub, matchWhile)
	keyword("end", nil, matchEnd)
	keyword("skip", nil, matchSkip)
	keyword("not", sub, matchNot)
	keyword("ahead", sub, matchAhead)
	keyword("to", sub, matchTo)
	keyword("thru", sub, matchThru)
	keyword("seek", []ParamKind{ParamQuoted}, matchSeek)
	keyword("copy", quotedSub, matchCopy)
	keyword("set", quotedSub, matchSet)
	keyword("into", sub, matchInto)
	keyword("fail", nil, matchFail)
	keyword("break", nil, matchBreak)

	datatype(value.KindText, matchTextLit)
	datatype(value.KindChar, matchCharLit)
	datatype(value.KindBinary, matchBinaryLit)
	datatype(value.KindBitset, matchBitset)
	datatype(value.KindBlock, matchSubBlock)
	datatype(value.KindGroup, matchGroup)
	datatype(value.KindLogic, matchLogic)
	datatype(value.KindLitWord, matchLitWord)
	datatype(value.KindQuoted, matchQuoted)
	datatype(value.KindDatatype, matchDatatype)
	t.Set(TypeKey(value.KindInteger), &Def{Name: "repeat", Params: sub, Match: matchRepeat})
	t.Set(TypeKey(value.KindSetWord), &Def{Name: "mark", Match: matchMark})
	t.Set(TypeKey(value.KindGetWord), &Def{Name: "resume", Match: matchResume})

	return t
}
