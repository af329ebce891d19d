package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Выравнивание цепочек
	AlignDotColumn          Code = 1001
	AlignOpenBracketColumn  Code = 1002
	AlignCloseBracketColumn Code = 1003
	AlignPropertyColumn     Code = 1004

	// Анализатор
	ParseUnsupportedLanguage Code = 2001
	ParseSyntaxErrors        Code = 2002

	// Ввод-вывод
	IOLoadFileError Code = 4001

	// Внутренние ошибки
	InternalSegmenter Code = 9000
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown error",
	AlignDotColumn:           "Member dot operator misaligned",
	AlignOpenBracketColumn:   "Member open bracket misaligned",
	AlignCloseBracketColumn:  "Member close bracket misaligned",
	AlignPropertyColumn:      "Property misaligned",
	ParseUnsupportedLanguage: "Unsupported language",
	ParseSyntaxErrors:        "Source contains syntax errors",
	IOLoadFileError:          "I/O load file error",
	InternalSegmenter:        "Internal chain segmentation error",
}

// ID returns the stable short identifier, e.g. ALN1001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("ALN%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("PRS%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 9000:
		return fmt.Sprintf("INT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
