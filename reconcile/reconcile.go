// Package reconcile keeps keyed collections of domain records in step with
// backend snapshots. Every collection in this module (spaces, savings goals,
// payees, cards, mandates, standing orders, insight breakdowns) is refreshed
// through the same pass: records named by the snapshot are created or updated
// in place, records the snapshot no longer names are dropped.
package reconcile

// Funcs bundles the per-resource capabilities a pass needs: deriving the
// identifier of a raw record, constructing an empty domain record for an
// identifier seen for the first time, and overwriting a record's fields from
// the raw data. Populate may perform secondary fetches for composite
// resources, which is why it can fail.
type Funcs[S any, T any] struct {
	Key      func(S) string
	New      func(id string) T
	Populate func(rec T, raw S) error
}

// Sync produces the collection matching snapshot exactly.
//
// Identifiers already present in current keep their existing record (same
// object, fields refreshed), identifiers new to the snapshot get a fresh
// record, and identifiers absent from the snapshot are evicted. Raw records
// with an empty identifier are skipped; a duplicated identifier within one
// snapshot is populated once per occurrence, last record winning.
//
// current is never mutated. The result is a new map built from scratch, so a
// failed Populate aborts the whole pass and the caller's collection stays at
// its pre-pass state: install the returned map only on a nil error.
func Sync[S any, T any](current map[string]T, snapshot []S, fns Funcs[S, T]) (map[string]T, error) {
	next := make(map[string]T, len(snapshot))
	for _, raw := range snapshot {
		id := fns.Key(raw)
		if id == "" {
			continue
		}
		rec, ok := next[id]
		if !ok {
			if rec, ok = current[id]; !ok {
				rec = fns.New(id)
			}
		}
		if err := fns.Populate(rec, raw); err != nil {
			return nil, err
		}
		next[id] = rec
	}
	return next, nil
}
