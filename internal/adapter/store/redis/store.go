// Package redis keeps the ephemeral roll counters in a Redis hash.
//
// Layout: the active hash <key> and the buffer hash <key>_buffer both map
// "<die>:<face>" to a pending count. A buffer also carries the field _cycle,
// the identifier of the flush cycle that owns it. Buffer fields that cannot be
// merged are kept in <key>_rejected.
package redis

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dayanaadylkhanova/dice-roller/internal/dice"
	"github.com/dayanaadylkhanova/dice-roller/internal/service"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cycleField = "_cycle"

var readBufferScript = goredis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return false
end
redis.call('HSETNX', KEYS[1], ARGV[1], ARGV[2])
return redis.call('HGETALL', KEYS[1])
`)

var clearBufferScript = goredis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
if redis.call('HGET', KEYS[1], ARGV[1]) ~= ARGV[2] then
	return -1
end
redis.call('DEL', KEYS[1])
return 1
`)

type Store struct {
	client    goredis.UniversalClient
	log       *zap.Logger
	activeKey   string
	bufferKey   string
	rejectedKey string
}

func New(url, key string, log *zap.Logger) (*Store, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewWithClient(goredis.NewClient(opt), key, log), nil
}

func NewWithClient(client goredis.UniversalClient, key string, log *zap.Logger) *Store {
	return &Store{
		client:      client,
		log:         log,
		activeKey:   key,
		bufferKey:   key + "_buffer",
		rejectedKey: key + "_rejected",
	}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

// IncrFaces implements service.CounterStore
func (s *Store) IncrFaces(ctx context.Context, die int, tally map[int]int64) error {
	if len(tally) == 0 {
		return nil
	}
	_, err := s.client.Pipelined(ctx, func(p goredis.Pipeliner) error {
		for face, n := range tally {
			p.HIncrBy(ctx, s.activeKey, field(die, face), n)
		}
		return nil
	})
	if err != nil {
		return unavailable("hincrby", err)
	}
	return nil
}

// Rotate implements service.CounterStore
func (s *Store) Rotate(ctx context.Context) error {
	ok, err := s.client.RenameNX(ctx, s.activeKey, s.bufferKey).Result()
	if err != nil {
		if strings.Contains(err.Error(), "no such key") {
			return service.ErrNothingToFlush
		}
		return unavailable("renamenx", err)
	}
	if !ok {
		return service.ErrFlushInProgress
	}
	return nil
}

// ReadBuffer implements service.CounterStore
func (s *Store) ReadBuffer(ctx context.Context, cycleID string) (service.Buffer, error) {
	flat, err := readBufferScript.Run(ctx, s.client, []string{s.bufferKey}, cycleField, cycleID).StringSlice()
	if errors.Is(err, goredis.Nil) {
		return service.Buffer{}, service.ErrNoBuffer
	}
	if err != nil {
		return service.Buffer{}, unavailable("read buffer", err)
	}
	m := make(map[string]string, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		m[flat[i]] = flat[i+1]
	}
	buf, rejected := s.decode(m)
	if len(rejected) > 0 {
		if err := s.reject(ctx, buf.CycleID, rejected); err != nil {
			return service.Buffer{}, err
		}
	}
	return buf, nil
}

// reject keeps undecodable buffer fields in <key>_rejected, as
// "<cycle>/<field>", so clearing the buffer does not lose them.
func (s *Store) reject(ctx context.Context, cycleID string, rejected map[string]string) error {
	values := make([]any, 0, len(rejected)*2)
	for k, v := range rejected {
		values = append(values, cycleID+"/"+k, v)
	}
	if err := s.client.HSet(ctx, s.rejectedKey, values...).Err(); err != nil {
		return unavailable("hset rejected", err)
	}
	s.log.Warn("moved malformed counters aside",
		zap.String("cycle_id", cycleID),
		zap.String("key", s.rejectedKey),
		zap.Int("fields", len(rejected)),
	)
	return nil
}

// PeekBuffer implements service.CounterStore
func (s *Store) PeekBuffer(ctx context.Context) (service.Buffer, error) {
	m, err := s.client.HGetAll(ctx, s.bufferKey).Result()
	if err != nil {
		return service.Buffer{}, unavailable("hgetall", err)
	}
	if len(m) == 0 {
		return service.Buffer{}, service.ErrNoBuffer
	}
	buf, _ := s.decode(m)
	return buf, nil
}

// ClearBuffer implements service.CounterStore
func (s *Store) ClearBuffer(ctx context.Context, cycleID string) error {
	res, err := clearBufferScript.Run(ctx, s.client, []string{s.bufferKey}, cycleField, cycleID).Int()
	if err != nil {
		return unavailable("clear buffer", err)
	}
	if res < 0 {
		return service.ErrBufferChanged
	}
	return nil
}

func (s *Store) Close() error { return s.client.Close() }

// decode sums the counters per (die, face). Fields that do not name a face of a
// known die with a positive count are returned apart.
func (s *Store) decode(m map[string]string) (service.Buffer, map[string]string) {
	buf := service.Buffer{CycleID: m[cycleField]}
	sums := make(map[[2]int]int64, len(m))
	var rejected map[string]string
	for k, v := range m {
		if k == cycleField {
			continue
		}
		die, face, ok := parseField(k)
		n, err := strconv.ParseInt(v, 10, 64)
		if !ok || err != nil || n < 1 || !dice.IsValidDie(die) || face < 1 || face > die {
			if rejected == nil {
				rejected = make(map[string]string)
			}
			rejected[k] = v
			continue
		}
		sums[[2]int{die, face}] += n
	}
	for k, n := range sums {
		buf.Rows = append(buf.Rows, service.AggregateRow{Die: k[0], Roll: k[1], Count: n})
	}
	slices.SortFunc(buf.Rows, func(a, b service.AggregateRow) int {
		if a.Die != b.Die {
			return a.Die - b.Die
		}
		return a.Roll - b.Roll
	})
	return buf, rejected
}

func field(die, face int) string {
	return strconv.Itoa(die) + ":" + strconv.Itoa(face)
}

func parseField(f string) (die, face int, ok bool) {
	ds, fs, found := strings.Cut(f, ":")
	if !found {
		return 0, 0, false
	}
	die, err1 := strconv.Atoi(ds)
	face, err2 := strconv.Atoi(fs)
	return die, face, err1 == nil && err2 == nil
}

func unavailable(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("redis %s: %w", op, err)
	}
	return fmt.Errorf("redis %s: %w: %w", op, service.ErrStoreUnavailable, err)
}
