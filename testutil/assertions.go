package testutil

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/arthur-debert/nanoenum/nanoenum"
)

// AssertNames checks the member names of enum in declaration order
func AssertNames(t *testing.T, enum *nanoenum.Enumeration, expected ...string) {
	t.Helper()
	if diff := cmp.Diff(expected, enum.Names()); diff != "" {
		t.Errorf("%s names mismatch (-want +got):\n%s", enum.Name(), diff)
	}
}

// AssertIndices checks the member indices of enum in declaration order
func AssertIndices(t *testing.T, enum *nanoenum.Enumeration, expected ...int) {
	t.Helper()
	got := make([]int, 0, enum.Len())
	for _, m := range enum.Members() {
		got = append(got, m.ToIndex())
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("%s indices mismatch (-want +got):\n%s", enum.Name(), diff)
	}
}

// AssertIDsAscending verifies that member ids are distinct and sort in
// declaration order
func AssertIDsAscending(t *testing.T, enum *nanoenum.Enumeration) {
	t.Helper()
	ids := make([]string, 0, enum.Len())
	seen := make(map[string]bool, enum.Len())
	for _, m := range enum.Members() {
		if seen[m.ToID()] {
			t.Errorf("%s: id %s repeated", enum.Name(), m.ToID())
		}
		seen[m.ToID()] = true
		ids = append(ids, m.ToID())
	}
	if !sort.StringsAreSorted(ids) {
		t.Errorf("%s: ids not ascending: %v", enum.Name(), ids)
	}
}

// AssertSameMembers verifies that two enumerations hold equal names,
// indices and ids in the same order
func AssertSameMembers(t *testing.T, want, got *nanoenum.Enumeration) {
	t.Helper()
	if diff := cmp.Diff(want.Serialize().Members, got.Serialize().Members); diff != "" {
		t.Errorf("%s members mismatch (-want +got):\n%s", want.Name(), diff)
	}
}

// AssertMemberNames checks the names of a member list, such as the result
// of MembersFromBitmask
func AssertMemberNames(t *testing.T, members []*nanoenum.Member, expected ...string) {
	t.Helper()
	got := make([]string, len(members))
	for i, m := range members {
		got[i] = m.Name()
	}
	if diff := cmp.Diff(expected, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("member names mismatch (-want +got):\n%s", diff)
	}
}
