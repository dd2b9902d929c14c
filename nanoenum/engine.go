package nanoenum

import (
	"fmt"
	"log/slog"
	"math/bits"

	"github.com/arthur-debert/nanoenum/internal/validation"
	"github.com/arthur-debert/nanoenum/nanoenum/ids"
	"github.com/arthur-debert/nanoenum/nanoenum/shape"
	"github.com/arthur-debert/nanoenum/types"
)

// PolicyTypeName is the name of the built-in enumeration of index policies
const PolicyTypeName = validation.PolicyTypeName

// Engine builds enumerations and owns the registry of their type names.
// An Engine is safe for concurrent use.
type Engine struct {
	locks    *lockManager
	defaults types.Options
	registry map[string]*Enumeration
	order    []string
	ids      ids.Generator
	logger   *slog.Logger
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithDefaults sets the options applied when a call supplies none.
// Zero fields keep the library defaults.
func WithDefaults(o types.Options) EngineOption {
	return func(e *Engine) {
		e.defaults = types.DefaultOptions().Merge(o)
	}
}

// WithIDGenerator replaces the crypto/rand backed id generator
func WithIDGenerator(g ids.Generator) EngineOption {
	return func(e *Engine) {
		e.ids = g
	}
}

// WithLogger sets the logger used for build diagnostics
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine creates an engine holding only the built-in IndexPolicy type
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		locks:    newLockManager(),
		defaults: types.DefaultOptions(),
		registry: make(map[string]*Enumeration),
		ids:      ids.New(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}

	policies := make([]types.Entry, 0, 3)
	for i, p := range types.Policies() {
		policies = append(policies, types.Entry{Name: string(p), Index: i})
	}
	builtin := types.Options{Cause: types.CauseDefault, IndexPolicy: types.Series}
	enum, err := e.construct(builtin, PolicyTypeName, policies)
	if err == nil {
		err = e.register(enum)
	}
	if err != nil {
		panic(fmt.Sprintf("nanoenum: bootstrap %s: %v", PolicyTypeName, err))
	}
	return e
}

// Defaults returns the options applied when a call supplies none
func (e *Engine) Defaults() types.Options {
	var out types.Options
	_ = e.locks.execute(readOperation, func() error {
		out = e.defaults
		return nil
	})
	return out
}

// SetDefaults replaces the engine defaults for all later builds.
// Zero fields keep the library defaults.
func (e *Engine) SetDefaults(o types.Options) error {
	merged := types.DefaultOptions().Merge(o)
	if err := validation.ValidateOptions(merged); err != nil {
		return &EnumError{Op: "defaults", Err: err}
	}
	merged.IndexPolicy, _ = types.ParsePolicy(string(merged.IndexPolicy))
	return e.locks.execute(writeOperation, func() error {
		e.defaults = merged
		return nil
	})
}

// New builds an enumeration from loosely typed arguments:
//
//	New([options,] name, label)
//
// options is a types.Options or a map with option keys, optionally preceded
// by the string "option". label is any shape accepted by shape.Parse; a
// serialized record's Args restore the enumeration it describes.
func (e *Engine) New(args ...any) (*Enumeration, error) {
	opts, name, label, err := Separate(args, e.Defaults(), types.OptionKeys())
	if err != nil {
		return nil, &EnumError{Op: "new", Err: err}
	}
	s, err := shape.Parse(label...)
	if err != nil {
		return nil, &EnumError{Op: "new", Type: name, Err: err}
	}
	return e.Build(opts, name, shape.Normalize(s))
}

// Build creates and registers the enumeration name from normalized entries.
// A failed build registers nothing.
func (e *Engine) Build(opts types.Options, name string, entries []types.Entry) (*Enumeration, error) {
	if name == "" {
		return nil, &EnumError{Op: "build", Err: ErrNameRequired}
	}
	if validation.IsReservedName(name) {
		return nil, &EnumError{Op: "build", Type: name, Err: ErrReservedName}
	}
	if _, ok := e.Lookup(name); ok {
		return nil, &EnumError{Op: "build", Type: name, Err: ErrDuplicateType}
	}

	enum, err := e.construct(opts, name, entries)
	if err != nil {
		return nil, &EnumError{Op: "build", Type: name, Err: err}
	}
	if err := e.register(enum); err != nil {
		return nil, &EnumError{Op: "build", Type: name, Err: err}
	}

	e.logger.Debug("enumeration built",
		"type", name,
		"policy", enum.policy.String(),
		"start_offset", enum.startOffset,
		"cause", enum.cause,
		"members", len(enum.members))
	return enum, nil
}

// Deserialize rebuilds and registers the enumeration described by r.
// Indices and ids are taken verbatim.
func (e *Engine) Deserialize(r types.Record) (*Enumeration, error) {
	opts := e.Defaults()
	opts.Cause = types.CauseJSON
	opts.IndexPolicy = r.Header.IndexPolicy
	return e.Build(opts, r.TypeName, r.Entries())
}

// Lookup returns the registered enumeration called name
func (e *Engine) Lookup(name string) (*Enumeration, bool) {
	var enum *Enumeration
	_ = e.locks.execute(readOperation, func() error {
		enum = e.registry[name]
		return nil
	})
	return enum, enum != nil
}

// Types returns the registered type names in registration order
func (e *Engine) Types() []string {
	var out []string
	_ = e.locks.execute(readOperation, func() error {
		out = make([]string, len(e.order))
		copy(out, e.order)
		return nil
	})
	return out
}

// register inserts enum unless its name is taken
func (e *Engine) register(enum *Enumeration) error {
	return e.locks.execute(writeOperation, func() error {
		if _, ok := e.registry[enum.name]; ok {
			return ErrDuplicateType
		}
		e.registry[enum.name] = enum
		e.order = append(e.order, enum.name)
		return nil
	})
}

// construct resolves the index policy and builds the members of name
func (e *Engine) construct(opts types.Options, name string, entries []types.Entry) (*Enumeration, error) {
	policy, err := types.ParsePolicy(string(opts.IndexPolicy))
	if err != nil {
		return nil, err
	}
	offset := opts.StartOffset
	restore := opts.Cause == types.CauseJSON

	switch {
	case restore:
		offset = restoredOffset(policy, entries, offset)
	case policy == types.Auto && types.Positional(entries):
		c := Classify(types.Indices(entries))
		policy, offset = c.Policy, c.StartOffset
	}
	verbatim := restore || policy.AcceptsIndices()

	template := opts.IDTemplate
	if template == "" {
		template = e.Defaults().IDTemplate
	}
	seq := e.ids.Sequence(len(entries), template)

	cause := opts.Cause
	if cause == "" {
		cause = types.CauseDefault
	}
	enum := &Enumeration{
		name:        name,
		policy:      policy,
		startOffset: offset,
		cause:       cause,
		members:     make([]*Member, 0, len(entries)),
		byName:      make(map[string]*Member, len(entries)),
		byIndex:     make(map[int]*Member, len(entries)),
	}

	for ordinal, entry := range entries {
		index := entry.Index
		if !verbatim {
			index, err = assignIndex(policy, ordinal+offset)
			if err != nil {
				return nil, fmt.Errorf("member %q: %w", entry.Name, err)
			}
		}
		if _, ok := enum.byName[entry.Name]; ok {
			return nil, fmt.Errorf("%w: name %q", ErrDuplicateMember, entry.Name)
		}
		if other, ok := enum.byIndex[index]; ok {
			return nil, fmt.Errorf("%w: %q and %q share index %d", ErrDuplicateMember, other.name, entry.Name, index)
		}

		id := entry.ID
		if id == "" {
			id = seq.Next()
		}
		m := newMember(entry.Name, index, id, ordinal, enum)
		enum.members = append(enum.members, m)
		enum.byName[m.name] = m
		enum.byIndex[m.index] = m
	}
	return enum, nil
}

// assignIndex computes the index at position n (ordinal plus offset)
func assignIndex(policy types.Policy, n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: position %d", ErrIndexRange, n)
	}
	if policy != types.Binary {
		return n, nil
	}
	if n > maxExponent {
		return 0, fmt.Errorf("%w: 2^%d", ErrIndexRange, n)
	}
	return 1 << n, nil
}

// restoredOffset recovers the start offset of a serialized enumeration from
// its first member, since records do not carry it
func restoredOffset(policy types.Policy, entries []types.Entry, fallback int) int {
	if len(entries) == 0 {
		return fallback
	}
	first := entries[0].Index
	switch policy {
	case types.Binary:
		if first > 0 {
			return bits.TrailingZeros(uint(first))
		}
		return 0
	case types.Series:
		return first
	}
	return 0
}
