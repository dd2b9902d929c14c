package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/nanoenum/nanoenum"
	"github.com/arthur-debert/nanoenum/testutil"
	"github.com/arthur-debert/nanoenum/types"
)

var fixedTime = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func openTemp(t *testing.T, opts ...Option) *Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	c := Open(path, append([]Option{WithClock(func() time.Time { return fixedTime })}, opts...)...)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestEmptyCatalog(t *testing.T) {
	c := openTemp(t)

	entries, err := c.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("List() = %v, want empty", entries)
	}
	if _, err := os.Stat(c.Path()); !os.IsNotExist(err) {
		t.Error("reading created the catalog file")
	}

	if err := os.WriteFile(c.Path(), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if entries, err := c.List(); err != nil || len(entries) != 0 {
		t.Errorf("List() on empty file = %v, %v", entries, err)
	}
}

func TestAddGetDelete(t *testing.T) {
	c := openTemp(t)
	records := testutil.FleetRecords(t)

	for _, r := range records {
		entry, err := c.Add(r)
		if err != nil {
			t.Fatalf("Add(%s) error = %v", r.TypeName, err)
		}
		if entry.UUID == "" || entry.Name != r.TypeName || !entry.CreatedAt.Equal(fixedTime) {
			t.Errorf("Add(%s) = %+v", r.TypeName, entry)
		}
	}

	got, err := c.Get("Rank")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if diff := cmp.Diff(records[1], got.Record); diff != "" {
		t.Errorf("stored record mismatch (-want +got):\n%s", diff)
	}

	if _, err := c.Add(records[0]); !errors.Is(err, ErrExists) {
		t.Errorf("Add() of a stored name error = %v, want ErrExists", err)
	}

	if err := c.Delete("Rank"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := c.Get("Rank"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
	}
	if err := c.Delete("Rank"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}

	entries, err := c.List()
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	if diff := cmp.Diff([]string{"Galaxy", "Alert"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestFileFormat(t *testing.T) {
	c := openTemp(t)
	if _, err := c.Add(testutil.FleetRecords(t)[0]); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(c.Path())
	if err != nil {
		t.Fatal(err)
	}
	var file struct {
		Records []struct {
			UUID   string          `json:"uuid"`
			Name   string          `json:"name"`
			Record json.RawMessage `json:"record"`
		} `json:"records"`
		Metadata Metadata `json:"metadata"`
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		t.Fatalf("catalog is not valid JSON: %v", err)
	}
	if file.Metadata.Version != Version {
		t.Errorf("version = %q, want %q", file.Metadata.Version, Version)
	}
	if len(file.Records) != 1 || file.Records[0].Name != "Galaxy" {
		t.Fatalf("records = %+v", file.Records)
	}

	// The stored record is the array form the engine accepts as arguments
	var args []any
	if err := json.Unmarshal(file.Records[0].Record, &args); err != nil {
		t.Fatal(err)
	}
	enum, err := nanoenum.NewEngine().New(args...)
	if err != nil {
		t.Fatalf("New(stored record) error = %v", err)
	}
	testutil.AssertIndices(t, enum, 4, 8, 16)

	if _, err := os.Stat(c.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestRestore(t *testing.T) {
	_, fleet := testutil.LoadFleet(t)
	c := openTemp(t)
	for _, name := range []string{"Galaxy", "Rank", "Alert"} {
		if _, err := c.AddEnumeration(fleet.ByName[name]); err != nil {
			t.Fatal(err)
		}
	}

	engine := nanoenum.NewEngine()
	restored, err := c.Restore(engine)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if len(restored) != 3 {
		t.Fatalf("restored %d enumerations, want 3", len(restored))
	}
	for _, enum := range restored {
		testutil.AssertSameMembers(t, fleet.ByName[enum.Name()], enum)
	}

	// A second restore into the same engine is a redefinition
	if _, err := c.Restore(engine); !errors.Is(err, nanoenum.ErrDuplicateType) {
		t.Errorf("second Restore() error = %v, want ErrDuplicateType", err)
	}
}

func TestImport(t *testing.T) {
	src := openTemp(t)
	for _, r := range testutil.FleetRecords(t) {
		if _, err := src.Add(r); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := src.List()
	if err != nil {
		t.Fatal(err)
	}

	dst := openTemp(t)
	if _, err := dst.Add(entries[0].Record); err != nil {
		t.Fatal(err)
	}
	skipped, err := dst.Import(entries)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if diff := cmp.Diff([]string{"Galaxy"}, skipped); diff != "" {
		t.Errorf("skipped mismatch (-want +got):\n%s", diff)
	}

	rank, err := dst.Get("Rank")
	if err != nil {
		t.Fatal(err)
	}
	if rank.UUID != entries[1].UUID {
		t.Errorf("imported uuid = %s, want %s", rank.UUID, entries[1].UUID)
	}
}

func TestConcurrentAdds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")

	var g errgroup.Group
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			// Separate instances contend on the file lock only
			c := Open(path)
			_, err := c.Add(types.Record{
				Header:   types.Header{Cause: types.CauseJSON, IndexPolicy: types.Series},
				TypeName: fmt.Sprintf("Type%d", i),
				Members:  []types.MemberRecord{{Name: "a", Index: 0, ID: "0000-A"}},
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Errorf("concurrent add error: %v", err)
	}

	entries, err := Open(path).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 10 {
		t.Errorf("catalog holds %d entries, want 10", len(entries))
	}
}

// busyLock never grants the lock
type busyLock struct{}

func (busyLock) TryLockContext(ctx context.Context, _ time.Duration) (bool, error) {
	<-ctx.Done()
	return false, nil
}
func (busyLock) Unlock() error { return nil }

type busyFactory struct{}

func (busyFactory) New(string) FileLock { return busyLock{} }

func TestLockTimeout(t *testing.T) {
	c := openTemp(t, WithLockFactory(busyFactory{}), WithLockTimeout(20*time.Millisecond))

	if _, err := c.List(); !errors.Is(err, ErrLocked) {
		t.Errorf("List() error = %v, want ErrLocked", err)
	}
	if err := c.Delete("x"); !errors.Is(err, ErrLocked) {
		t.Errorf("Delete() error = %v, want ErrLocked", err)
	}
}

// failingRename wraps the os file system and refuses renames
type failingRename struct{ osFileSystem }

func (failingRename) Rename(string, string) error { return errors.New("disk full") }

func TestWriteFailureLeavesNoFile(t *testing.T) {
	c := openTemp(t, WithFileSystem(failingRename{}))

	if _, err := c.Add(testutil.FleetRecords(t)[0]); err == nil {
		t.Fatal("Add() succeeded despite rename failure")
	}
	for _, p := range []string{c.Path(), c.Path() + ".tmp"} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("%s exists after failed write", filepath.Base(p))
		}
	}
}

func TestCorruptCatalog(t *testing.T) {
	c := openTemp(t)
	if err := os.WriteFile(c.Path(), []byte(`{"records": [`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := c.List(); err == nil {
		t.Error("List() on corrupt file succeeded")
	}
}
