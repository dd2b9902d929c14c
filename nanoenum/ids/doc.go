// Package ids provides the identifier generation used for enumeration members.
//
//	Overview
//
// Every member of an enumeration carries an id next to its name and index.
// Ids are random, follow a caller-configurable template and, within one
// enumeration, sort in the same order as the members were declared. This
// lets an id stand in for a member wherever a string key is needed (maps,
// JSON documents, database columns) without losing the declaration order.
//
//	Templates
//
// A template is a string in which three letters are replaced by random hex
// digits and every other character is copied as-is:
//
//   - n: a random nibble (1 hex digit)
//   - b: a random byte (2 hex digits)
//   - w: a random 16 bit word (4 hex digits)
//
// The result is upper-cased. The default template `w-7b5-bn6-4bn-6bb-w`
// produces ids such as:
//
//	"9F3C-7A25-4D6-40C-6E1A-0B7D"
//
// Fixed characters are useful to tag ids by origin, e.g. `b-SbS-nnb-ENUM/8-w`.
//
//	Sequences
//
// An enumeration is built in one call, so the ids of its members are drawn
// from a Sequence owned by that call. A sequence of n ids first draws n
// distinct random prefixes, sorts them and then hands out
//
//	<prefix>-<templated id>
//
// in ascending prefix order:
//
//	"0A3F-9F3C-7A25-4D6-40C-6E1A-0B7D"
//	"51E0-01AA-7F35-C36-4A2-6C3B-FF02"
//	"C0D2-7710-7105-E46-402-6F0E-12AA"
//
// Prefixes are 4 hex digits for up to 4096 ids and 8 hex digits above that,
// keeping every id of a sequence the same width so that plain string
// comparison matches declaration order.
//
//	Randomness
//
// Generators read from crypto/rand by default. NewWithReader accepts any
// io.Reader, which tests use with a seeded source for reproducible ids.
// The reader must not fail; a failing reader makes the generator panic.
package ids
