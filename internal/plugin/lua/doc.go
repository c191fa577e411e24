// Package lua provides the Lua runtime used by inflection scripts.
//
// State wraps gopher-lua with only the base, table, string and math
// libraries, a wall-clock timeout and a limit on host API calls:
//
//	state := lua.NewState(lua.WithExecutionTimeout(2 * time.Second))
//	defer state.Close()
//
//	lua.NewInflectionModule(state, inflect.New(), host).Install()
//	if err := state.DoString(`inflection.execute("pluralize")`); err != nil {
//	    return err
//	}
//
// Scripts see a global "inflection" table; see InflectionModule.
package lua
