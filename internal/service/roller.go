package service

import (
	"context"

	"github.com/dayanaadylkhanova/dice-roller/internal/dice"
	"go.uber.org/zap"
)

// Roller serves roll requests and feeds the faces to a StatsSink.
type Roller struct {
	log  *zap.Logger
	gen  *dice.Generator
	sink StatsSink
}

func NewRoller(log *zap.Logger, gen *dice.Generator, sink StatsSink) *Roller {
	return &Roller{log: log, gen: gen, sink: sink}
}

func (s *Roller) RollNotation(ctx context.Context, notation string) (dice.RollResult, error) {
	in, err := dice.Parse(notation)
	if err != nil {
		return dice.RollResult{}, err
	}
	return s.Roll(ctx, in)
}

func (s *Roller) Roll(_ context.Context, in dice.RollInstruction) (dice.RollResult, error) {
	res, err := s.gen.Roll(in)
	if err != nil {
		return dice.RollResult{}, err
	}
	s.log.Debug("rolled", zap.Stringer("instruction", in), zap.Ints("rolls", res.Rolls), zap.Int("total", res.Total))
	s.sink.Record(in.Die, res.Rolls)
	return res, nil
}
