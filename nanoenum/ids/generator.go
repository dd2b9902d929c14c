package ids

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// DefaultTemplate is used when an empty template is requested
const DefaultTemplate = "w-7b5-bn6-4bn-6bb-w"

// widePrefixThreshold is the sequence length above which prefixes use 32 bits
const widePrefixThreshold = 4096

// Generator produces template-driven identifiers
type Generator interface {
	// NextID returns one random id following template
	NextID(template string) string

	// Sequence returns count ids in ascending order, for one build call
	Sequence(count int, template string) Sequence
}

// Sequence hands out ascending ids. A Sequence is owned by a single caller
// and is not safe for concurrent use.
type Sequence interface {
	// Next returns the next id, or "" once the sequence is exhausted
	Next() string

	// Remaining reports how many ids are left
	Remaining() int
}

// RandomGenerator implements Generator on top of a random byte source
type RandomGenerator struct {
	mu     sync.Mutex
	source io.Reader
}

// New creates a generator reading from crypto/rand
func New() *RandomGenerator {
	return &RandomGenerator{source: rand.Reader}
}

// NewWithReader creates a generator reading from r
func NewWithReader(r io.Reader) *RandomGenerator {
	return &RandomGenerator{source: r}
}

// NextID implements Generator.NextID
func (g *RandomGenerator) NextID(template string) string {
	if template == "" {
		template = DefaultTemplate
	}

	var sb strings.Builder
	sb.Grow(len(template) * 2)
	for _, c := range template {
		switch c {
		case 'n':
			fmt.Fprintf(&sb, "%01x", g.uint16()&0xF)
		case 'b':
			fmt.Fprintf(&sb, "%02x", g.uint16()&0xFF)
		case 'w':
			fmt.Fprintf(&sb, "%04x", g.uint16())
		default:
			sb.WriteRune(c)
		}
	}
	return strings.ToUpper(sb.String())
}

// Sequence implements Generator.Sequence
func (g *RandomGenerator) Sequence(count int, template string) Sequence {
	if count < 0 {
		count = 0
	}

	width := 4
	if count > widePrefixThreshold {
		width = 8
	}

	// Draw distinct prefixes, then sort them so ids ascend
	seen := make(map[uint32]struct{}, count)
	prefixes := make([]uint32, 0, count)
	for len(prefixes) < count {
		var p uint32
		if width == 4 {
			p = uint32(g.uint16())
		} else {
			p = g.uint32()
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		prefixes = append(prefixes, p)
	}
	sort.Slice(prefixes, func(i, j int) bool { return prefixes[i] < prefixes[j] })

	return &sequence{
		gen:      g,
		template: template,
		width:    width,
		prefixes: prefixes,
	}
}

func (g *RandomGenerator) read(buf []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, err := io.ReadFull(g.source, buf); err != nil {
		panic(fmt.Sprintf("ids: random source failed: %v", err))
	}
}

func (g *RandomGenerator) uint16() uint16 {
	var buf [2]byte
	g.read(buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (g *RandomGenerator) uint32() uint32 {
	var buf [4]byte
	g.read(buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

// sequence is the Sequence returned by RandomGenerator
type sequence struct {
	gen      *RandomGenerator
	template string
	width    int
	prefixes []uint32
	pos      int
}

func (s *sequence) Next() string {
	if s.pos >= len(s.prefixes) {
		return ""
	}
	p := s.prefixes[s.pos]
	s.pos++
	return fmt.Sprintf("%0*X-%s", s.width, p, s.gen.NextID(s.template))
}

func (s *sequence) Remaining() int {
	return len(s.prefixes) - s.pos
}
