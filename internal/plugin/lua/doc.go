// Package lua loads plugin descriptors from Lua scripts.
//
// Scripts run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. They declare plugins by calling the global
// register function with a table:
//
//	register{
//	    name = "todo",
//	    stateful = true,
//	    initial = { items = {} },
//	    config = { max = 10 },
//	}
//
// capability = "stateless" | "stateful" may be used instead of the
// stateful flag. A script may also call default("todo") to request that
// the plugin become the registry default.
//
// Execution is bounded by a timeout; a script that runs past it is
// cancelled and the load fails.
package lua
