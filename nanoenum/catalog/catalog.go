// Package catalog persists serialized enumerations in a JSON file.
//
// The file holds one entry per enumeration type:
//
//	{
//	  "records": [
//	    {"uuid": "...", "name": "Galaxy", "record": [{"cause":"json",...}, "Galaxy", [...]], ...}
//	  ],
//	  "metadata": {"version": "1.0", "created_at": "...", "updated_at": "..."}
//	}
//
// Every read-modify-write cycle runs under an exclusive lock on
// "<file>.lock", and writes go to a temporary file renamed over the original.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arthur-debert/nanoenum/nanoenum"
	"github.com/arthur-debert/nanoenum/types"
)

// Version is written into the metadata of new catalog files
const Version = "1.0"

var (
	// ErrNotFound is returned when no entry has the requested name
	ErrNotFound = errors.New("catalog entry not found")

	// ErrExists is returned when adding a name the catalog already holds
	ErrExists = errors.New("catalog entry already exists")

	// ErrLocked is returned when the file lock cannot be acquired in time
	ErrLocked = errors.New("could not acquire catalog lock")
)

// Entry is one stored enumeration
type Entry struct {
	UUID      string       `json:"uuid"`
	Name      string       `json:"name"`
	Record    types.Record `json:"record"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Metadata describes the catalog file
type Metadata struct {
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Data is the complete content of a catalog file
type Data struct {
	Records  []Entry  `json:"records"`
	Metadata Metadata `json:"metadata"`
}

// Catalog is a file-backed collection of serialized enumerations.
// A Catalog is safe for concurrent use.
type Catalog struct {
	path        string
	fs          FileSystem
	lock        FileLock
	lockTimeout time.Duration
	now         func() time.Time
	mu          sync.RWMutex
}

// Option configures a Catalog
type Option func(*Catalog)

// WithFileSystem replaces the os backed file system
func WithFileSystem(fs FileSystem) Option {
	return func(c *Catalog) { c.fs = fs }
}

// WithLockFactory replaces the flock backed file lock
func WithLockFactory(f FileLockFactory) Option {
	return func(c *Catalog) { c.lock = f.New(c.path + ".lock") }
}

// WithLockTimeout bounds how long operations wait for the file lock
func WithLockTimeout(d time.Duration) Option {
	return func(c *Catalog) { c.lockTimeout = d }
}

// WithClock replaces time.Now for timestamps
func WithClock(now func() time.Time) Option {
	return func(c *Catalog) { c.now = now }
}

// Open returns a catalog stored at path. The file is created on first write.
func Open(path string, opts ...Option) *Catalog {
	c := &Catalog{
		path:        path,
		fs:          osFileSystem{},
		lockTimeout: 3 * time.Second,
		now:         time.Now,
	}
	c.lock = flockFactory{}.New(path + ".lock")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the catalog file path
func (c *Catalog) Path() string { return c.path }

// Load returns the full catalog content
func (c *Catalog) Load() (*Data, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var data *Data
	err := c.withFileLock(func() error {
		var err error
		data, err = c.read()
		return err
	})
	return data, err
}

// List returns all entries in insertion order
func (c *Catalog) List() ([]Entry, error) {
	data, err := c.Load()
	if err != nil {
		return nil, err
	}
	return data.Records, nil
}

// Get returns the entry stored under name
func (c *Catalog) Get(name string) (Entry, error) {
	entries, err := c.List()
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Add stores a new record. Adding a name that is already stored fails
// with ErrExists, mirroring the engine's refusal to redefine a type.
func (c *Catalog) Add(r types.Record) (Entry, error) {
	var entry Entry
	err := c.modify(func(data *Data) error {
		if indexOf(data.Records, r.TypeName) >= 0 {
			return fmt.Errorf("%w: %s", ErrExists, r.TypeName)
		}
		now := c.now()
		entry = Entry{
			UUID:      uuid.New().String(),
			Name:      r.TypeName,
			Record:    r,
			CreatedAt: now,
			UpdatedAt: now,
		}
		data.Records = append(data.Records, entry)
		return nil
	})
	return entry, err
}

// AddEnumeration serializes enum and stores it
func (c *Catalog) AddEnumeration(enum *nanoenum.Enumeration) (Entry, error) {
	return c.Add(enum.Serialize())
}

// Import stores entries that came from another catalog, keeping their
// uuids and timestamps. Names already present are skipped and returned.
func (c *Catalog) Import(entries []Entry) (skipped []string, err error) {
	err = c.modify(func(data *Data) error {
		for _, e := range entries {
			if indexOf(data.Records, e.Name) >= 0 {
				skipped = append(skipped, e.Name)
				continue
			}
			if e.UUID == "" {
				e.UUID = uuid.New().String()
			}
			if e.CreatedAt.IsZero() {
				e.CreatedAt = c.now()
				e.UpdatedAt = e.CreatedAt
			}
			data.Records = append(data.Records, e)
		}
		return nil
	})
	return skipped, err
}

// Delete removes the entry stored under name
func (c *Catalog) Delete(name string) error {
	return c.modify(func(data *Data) error {
		i := indexOf(data.Records, name)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		data.Records = append(data.Records[:i], data.Records[i+1:]...)
		return nil
	})
}

// Restore deserializes every stored record into engine, in catalog order
func (c *Catalog) Restore(engine *nanoenum.Engine) ([]*nanoenum.Enumeration, error) {
	entries, err := c.List()
	if err != nil {
		return nil, err
	}
	out := make([]*nanoenum.Enumeration, 0, len(entries))
	for _, e := range entries {
		enum, err := engine.Deserialize(e.Record)
		if err != nil {
			return out, fmt.Errorf("failed to restore %s: %w", e.Name, err)
		}
		out = append(out, enum)
	}
	return out, nil
}

// Close removes the lock file
func (c *Catalog) Close() error {
	_ = c.fs.Remove(c.path + ".lock")
	return nil
}

// modify runs fn on the current content and writes the result back,
// holding both locks for the whole cycle
func (c *Catalog) modify(fn func(*Data) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.withFileLock(func() error {
		data, err := c.read()
		if err != nil {
			return err
		}
		if err := fn(data); err != nil {
			return err
		}
		data.Metadata.UpdatedAt = c.now()
		return c.write(data)
	})
}

func (c *Catalog) withFileLock(fn func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.lockTimeout)
	defer cancel()

	locked, err := c.lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLocked, err)
	}
	if !locked {
		return ErrLocked
	}
	defer func() { _ = c.lock.Unlock() }()

	return fn()
}

// read loads the file; a missing or empty file is an empty catalog
func (c *Catalog) read() (*Data, error) {
	if _, err := c.fs.Stat(c.path); errors.Is(err, fs.ErrNotExist) {
		return c.empty(), nil
	}

	raw, err := c.fs.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if len(raw) == 0 {
		return c.empty(), nil
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", c.path, err)
	}
	if data.Records == nil {
		data.Records = []Entry{}
	}
	return &data, nil
}

func (c *Catalog) write(data *Data) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	tmpFile := c.path + ".tmp"
	if err := c.fs.WriteFile(tmpFile, raw, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := c.fs.Rename(tmpFile, c.path); err != nil {
		_ = c.fs.Remove(tmpFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

func (c *Catalog) empty() *Data {
	now := c.now()
	return &Data{
		Records:  []Entry{},
		Metadata: Metadata{Version: Version, CreatedAt: now, UpdatedAt: now},
	}
}

func indexOf(entries []Entry, name string) int {
	for i, e := range entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}
