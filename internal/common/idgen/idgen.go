package idgen

import (
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const (
	ModeUUID     = "uuid"
	ModeSequence = "sequence"
)

type Generator interface {
	Next() string
}

// Random produces 32-char hex identifiers from random UUIDs.
type Random struct{}

func (Random) Next() string { return strings.ReplaceAll(uuid.NewString(), "-", "") }

// Sequence hands out "1", "2", ... and is safe for concurrent use.
type Sequence struct {
	mu   sync.Mutex
	last int
}

func NewSequence() *Sequence { return &Sequence{} }

func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	return strconv.Itoa(s.last)
}

// FromMode returns a Sequence for ModeSequence and Random otherwise.
func FromMode(mode string) Generator {
	if mode == ModeSequence {
		return NewSequence()
	}
	return Random{}
}
