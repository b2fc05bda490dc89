package kv

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/snowflake"
)

const logFileSuffix = ".json"

// nameNode mints the monotonically increasing IDs log file names are
// derived from. snowflake IDs are strictly increasing for a given node
// under normal clock behavior, which is exactly the "decimal string
// such that lexicographic ordering equals creation order" property
// spec §6 asks for — including the "disambiguate same-millisecond
// creations" requirement, which snowflake's per-millisecond step
// counter already solves instead of a hand-rolled counter suffix.
var nameNode = mustNode()

func mustNode() *snowflake.Node {
	n, err := snowflake.NewNode(1)
	if err != nil {
		// Only fails if the node number is out of range, which 1 never
		// is; a package-level generator has no other way to report this.
		panic(fmt.Sprintf("logkv: snowflake node init: %v", err))
	}
	return n
}

// newLogFileName returns a fresh log file name that sorts after every
// name newLogFileName has previously produced in this process.
func newLogFileName() string {
	id := nameNode.Generate().Int64()
	// Zero-padded decimal so lexicographic order equals numeric order;
	// snowflake IDs are non-negative int64s, so 20 digits always suffice.
	return fmt.Sprintf("%020d%s", id, logFileSuffix)
}

// listLogFiles keeps the names in dirEntries that carry the log file
// suffix and returns them sorted ascending, so that ordering equals
// creation order.
func listLogFiles(dirEntries []string) []string {
	var names []string
	for _, name := range dirEntries {
		if strings.HasSuffix(name, logFileSuffix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
