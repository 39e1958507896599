// Package staging collects record writes and applies them as a unit.
//
// Writes are staged on a Batch and run by Commit in the order they were
// added. When one fails, the writes that already ran are rolled back in
// reverse order, so a multi-record update either lands completely or leaves
// the store as it was:
//
//	batch := staging.New()
//	_ = batch.Add(staging.Put(store, ns, "catalog", catalogJSON, []byte("[]")))
//	_ = batch.Add(staging.Put(store, ns, "company", companyJSON, nil))
//
//	if err := batch.Commit(ctx); err != nil {
//	    // catalog holds its previous bytes again
//	}
//
// Put snapshots the current record before overwriting it. A key that did not
// exist is rolled back to the supplied empty value; with a nil empty value it
// cannot be rolled back and should be staged last.
package staging
