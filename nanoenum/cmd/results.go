package main

import (
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/nanoenum/nanoenum"
	"github.com/arthur-debert/nanoenum/nanoenum/catalog"
	"github.com/arthur-debert/nanoenum/types"
)

// enumResult renders one enumeration. JSON and YAML use the serialized
// record, so the output of show can be fed back to define --from-json.
type enumResult struct {
	*nanoenum.Enumeration
}

func (r enumResult) header() []string {
	return []string{"NAME", "INDEX", "ID", "ORDINAL"}
}

func (r enumResult) rows() [][]any {
	out := make([][]any, 0, r.Len())
	for _, m := range r.Members() {
		out = append(out, []any{m.Name(), m.ToIndex(), m.ToID(), m.Ordinal()})
	}
	return out
}

func (r enumResult) goSource() (string, error) {
	return renderGoConsts(r.Enumeration)
}

// entrySummary is one line of list output
type entrySummary struct {
	Name      string       `json:"name" yaml:"name"`
	Policy    types.Policy `json:"policy" yaml:"policy"`
	Members   int          `json:"members" yaml:"members"`
	UUID      string       `json:"uuid" yaml:"uuid"`
	UpdatedAt time.Time    `json:"updated_at" yaml:"updated_at"`
}

type listResult []entrySummary

func newListResult(entries []catalog.Entry) listResult {
	out := make(listResult, 0, len(entries))
	for _, e := range entries {
		out = append(out, entrySummary{
			Name:      e.Name,
			Policy:    e.Record.Header.IndexPolicy,
			Members:   len(e.Record.Members),
			UUID:      e.UUID,
			UpdatedAt: e.UpdatedAt,
		})
	}
	return out
}

func (r listResult) header() []string {
	return []string{"NAME", "POLICY", "MEMBERS", "UUID", "UPDATED"}
}

func (r listResult) rows() [][]any {
	out := make([][]any, 0, len(r))
	for _, e := range r {
		out = append(out, []any{e.Name, e.Policy, e.Members, e.UUID, e.UpdatedAt.Format(time.RFC3339)})
	}
	return out
}

type maskResult struct {
	Type    string   `json:"type" yaml:"type"`
	Members []string `json:"members" yaml:"members"`
	Mask    int      `json:"mask" yaml:"mask"`
}

func (r maskResult) header() []string { return []string{"TYPE", "MEMBERS", "MASK"} }

func (r maskResult) rows() [][]any {
	return [][]any{{r.Type, joinNames(r.Members), r.Mask}}
}

type memberRow struct {
	Name  string `json:"name" yaml:"name"`
	Index int    `json:"index" yaml:"index"`
	ID    string `json:"id" yaml:"id"`
}

type decodeResult struct {
	Type    string      `json:"type" yaml:"type"`
	Mask    int         `json:"mask" yaml:"mask"`
	Members []memberRow `json:"members" yaml:"members"`
}

func newDecodeResult(enum *nanoenum.Enumeration, mask int) decodeResult {
	r := decodeResult{Type: enum.Name(), Mask: mask, Members: []memberRow{}}
	for _, m := range enum.MembersFromBitmask(mask) {
		r.Members = append(r.Members, memberRow{Name: m.Name(), Index: m.ToIndex(), ID: m.ToID()})
	}
	return r
}

func (r decodeResult) header() []string { return []string{"NAME", "INDEX", "ID"} }

func (r decodeResult) rows() [][]any {
	out := make([][]any, 0, len(r.Members))
	for _, m := range r.Members {
		out = append(out, []any{m.Name, m.Index, m.ID})
	}
	return out
}

type classifyResult struct {
	Indices     []int        `json:"indices" yaml:"indices"`
	Policy      types.Policy `json:"policy" yaml:"policy"`
	StartOffset int          `json:"startOffset" yaml:"startOffset"`
}

func (r classifyResult) header() []string { return []string{"POLICY", "START OFFSET"} }

func (r classifyResult) rows() [][]any {
	return [][]any{{r.Policy, r.StartOffset}}
}

type deleteResult struct {
	Deleted string `json:"deleted" yaml:"deleted"`
}

func (r deleteResult) header() []string { return []string{"DELETED"} }
func (r deleteResult) rows() [][]any    { return [][]any{{r.Deleted}} }

type exportResult struct {
	Path         string   `json:"path" yaml:"path"`
	Enumerations []string `json:"enumerations" yaml:"enumerations"`
}

func (r exportResult) header() []string { return []string{"ARCHIVE", "ENUMERATIONS"} }

func (r exportResult) rows() [][]any {
	return [][]any{{r.Path, joinNames(r.Enumerations)}}
}

type importResult struct {
	Archives []string `json:"archives" yaml:"archives"`
	Imported []string `json:"imported" yaml:"imported"`
	Skipped  []string `json:"skipped" yaml:"skipped"`
}

func (r importResult) header() []string { return []string{"IMPORTED", "SKIPPED"} }

func (r importResult) rows() [][]any {
	return [][]any{{joinNames(r.Imported), joinNames(r.Skipped)}}
}

// configResult lists the effective settings
type configResult map[string]any

func (r configResult) header() []string { return []string{"KEY", "VALUE"} }

func (r configResult) rows() [][]any {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, []any{k, r[k]})
	}
	return out
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}
