package ui

// Flow identifies one of the tracker's fetch flows. The set is closed;
// dispatch is a plain switch, never a name lookup.
type Flow int

const (
	// FlowFeed fetches all NEOs within a date range.
	FlowFeed Flow = iota
	// FlowLookup fetches a single NEO by id.
	FlowLookup
)

// MenuOption maps a single keystroke to a flow.
type MenuOption struct {
	Key   byte
	Label string
	Flow  Flow
}

// menuOptions is the static option table. Defined once, never mutated.
var menuOptions = []MenuOption{
	{Key: '1', Label: "Fetch NEO feed", Flow: FlowFeed},
	{Key: '2', Label: "Lookup NEO by id", Flow: FlowLookup},
}

// lookupOption resolves a pressed key against the option table.
func lookupOption(key byte) (MenuOption, bool) {
	for _, opt := range menuOptions {
		if opt.Key == key {
			return opt, true
		}
	}
	return MenuOption{}, false
}
