// Package dice parses roll notation and produces rolls from a pluggable random source.
package dice

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// MaxDice is the largest number of dice a single instruction may roll.
const MaxDice = 99

// Dice lists the permitted face counts.
var Dice = []int{4, 6, 8, 10, 12, 20, 100}

// RollInstruction describes what to roll.
type RollInstruction struct {
	Num      int `json:"num"`
	Die      int `json:"die"`
	Modifier int `json:"modifier"`
}

// String renders the instruction as "NdD", followed by " + M" or " - M" when M is non-zero.
func (in RollInstruction) String() string {
	s := fmt.Sprintf("%dd%d", in.Num, in.Die)
	switch {
	case in.Modifier > 0:
		s += fmt.Sprintf(" + %d", in.Modifier)
	case in.Modifier < 0:
		s += fmt.Sprintf(" - %d", -in.Modifier)
	}
	return s
}

// RollResult is the outcome of a single Roll call.
type RollResult struct {
	Instruction string `json:"instruction"`
	Rolls       []int  `json:"rolls"`
	Total       int    `json:"total"`
}

// IsValidDie reports whether die is one of Dice.
func IsValidDie(die int) bool { return slices.Contains(Dice, die) }

// Validate checks die first, then the lower and upper bounds on Num, then that
// Modifier fits in 32 bits.
func (in RollInstruction) Validate() error {
	switch {
	case !IsValidDie(in.Die):
		return &Error{Kind: KindInvalidDie, Message: "Not a valid die. Try one of " + diceList()}
	case in.Num < 1:
		return &Error{Kind: KindTooFewDice, Message: "You have to roll something!"}
	case in.Num > MaxDice:
		return &Error{Kind: KindTooManyDice, Message: "Are you a god in this game?! Roll a more reasonable number of dice!"}
	case in.Modifier < math.MinInt32 || in.Modifier > math.MaxInt32:
		return &Error{Kind: KindInvalidModifier, Message: "That modifier is out of reach. Keep it between -2147483648 and 2147483647."}
	}
	return nil
}

func diceList() string {
	names := make([]string, len(Dice))
	for i, d := range Dice {
		names[i] = "d" + strconv.Itoa(d)
	}
	return strings.Join(names, ", ")
}

// Generator rolls validated instructions.
type Generator struct {
	src Source
}

func NewGenerator(src Source) *Generator {
	return &Generator{src: src}
}

// Roll validates in and draws in.Num faces, in order, from a source acquired for this call.
func (g *Generator) Roll(in RollInstruction) (RollResult, error) {
	if err := in.Validate(); err != nil {
		return RollResult{}, err
	}
	r, err := g.src.Get()
	if err != nil {
		return RollResult{}, fmt.Errorf("acquire random source: %w", err)
	}
	defer g.src.Put(r)

	rolls := make([]int, in.Num)
	total := 0
	for i := range rolls {
		rolls[i] = rollDie(r, in.Die)
		total += rolls[i]
	}
	return RollResult{
		Instruction: in.String(),
		Rolls:       rolls,
		Total:       total + in.Modifier,
	}, nil
}

func rollDie(r Rand, die int) int {
	return r.IntN(die) + 1
}
