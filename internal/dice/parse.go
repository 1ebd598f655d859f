package dice

import (
	"regexp"
	"strconv"
)

const parseHint = "Invalid format. Try again with something like 1d20 or 3d6."

var notation = regexp.MustCompile(`(\d+)d(\d+)(?:\s*\+\s*(\d+))?`)

// Parse extracts the first NdD[+M] expression found in text.
// Ranges are not checked here, so "1d7" parses fine and fails later in Roll.
func Parse(text string) (RollInstruction, error) {
	m := notation.FindStringSubmatch(text)
	if m == nil {
		return RollInstruction{}, &Error{Kind: KindParse, Message: parseHint}
	}
	num, err := strconv.Atoi(m[1])
	if err != nil {
		return RollInstruction{}, &Error{Kind: KindParse, Message: parseHint}
	}
	die, err := strconv.Atoi(m[2])
	if err != nil {
		return RollInstruction{}, &Error{Kind: KindParse, Message: parseHint}
	}
	var mod int64
	if m[3] != "" {
		if mod, err = strconv.ParseInt(m[3], 10, 32); err != nil {
			return RollInstruction{}, &Error{Kind: KindParse, Message: parseHint}
		}
	}
	return RollInstruction{Num: num, Die: die, Modifier: int(mod)}, nil
}
