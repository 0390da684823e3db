package assembler

import (
	"fmt"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/pipeasm/internal"
	"github.com/ezrec/pipeasm/isa"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":        "0",
	"NUM_REGISTERS": fmt.Sprintf("%v", isa.NUM_REGISTERS),
	"WORD_BITS":     fmt.Sprintf("%v", isa.WORD_BITS),
}

var exprPattern = regexp.MustCompile(`\$\([^\$]*\)`)

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// SetPredefine parses a 'NAME=VALUE' predefine.
func (asm *Assembler) SetPredefine(define string) (err error) {
	name, value, ok := strings.Cut(define, "=")
	name = strings.TrimSpace(name)
	if !ok || len(name) == 0 {
		err = ErrPredefineSyntax
		return
	}

	asm.Predefine(name, strings.TrimSpace(value))
	return
}

// resetEquates restores the equates to the system and predefined set.
func (asm *Assembler) resetEquates() {
	asm.Equate = maps.Collect(internal.IterSeq2Concat(maps.All(sysEquate), maps.All(asm.predefine)))
}

// valueOf returns the value of a decimal word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	v64, err := strconv.ParseInt(word, 10, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var equ int
		equ, err = asm.valueOf(str)
		if err != nil {
			// Registers and other non-integer equates are not visible.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(equ)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// expandLine evaluates expressions and equates, and splits a line into words.
func (asm *Assembler) expandLine(line string, lineno int) (words []string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line = exprPattern.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.FieldsFunc(line, isSeparator)

	for n, word := range words {
		if asm.Label.Has(word) {
			continue
		}
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// directive evaluates an assembler directive line.
func (asm *Assembler) directive(line string, lineno int) (err error) {
	words, err := asm.expandLine(line, lineno)
	if err != nil {
		return
	}

	switch words[0] {
	case ".equ":
		// .equ NAME VALUE
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		// The name was expanded if it already exists.
		name := strings.FieldsFunc(line, isSeparator)[1]
		_, ok := asm.Equate[name]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[name] = words[2]
	default:
		err = ErrDirectiveInvalid
	}

	return
}
