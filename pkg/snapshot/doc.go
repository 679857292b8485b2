/*
Package snapshot produces bounded, cycle-safe copies of arbitrary in-memory state and
compares them.

A Snapshot is taken before and after a store action. Deep snapshots walk the value graph
with reflection and rebuild it as plain Go values (records, slices, maps), so the copy
never aliases the source. Shallow snapshots copy only the top-level container.

Content that is elided during a deep walk is replaced by a Sentinel: MaxDepthReached
for nodes past the depth limit and CircularReference for nodes that point back to one
of their ancestors.

# Usage

	before := snapshot.Take(state, snapshot.Deep(), snapshot.WithMaxDepth(3))
	mutate(state)
	after := snapshot.Take(state, snapshot.Deep(), snapshot.WithMaxDepth(3))

	if snapshot.Changed(before, after) {
		fmt.Println(snapshot.Diff(before, after))
	}
*/
package snapshot
