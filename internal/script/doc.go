// Package script hosts user-defined text transforms written in Lua.
//
// A Host owns one sandboxed Lua state: only the base, table, string,
// and math libraries are open, and the code-loading escape hatches
// (load, loadstring, dofile, loadfile) are removed. There is no io,
// os, debug, or package access, so scripts can compute over text but
// cannot touch the machine. Instruction and memory limits are not
// enforced; gopher-lua offers no hard mechanism for either, so a
// hostile script can still spin. Scripts are trusted to terminate.
//
// Scripts register transforms at load time:
//
//	inkmark.register{
//	    name = "upper",
//	    apply = function(text, s, e)
//	        -- offsets are byte offsets as the editor counts them,
//	        -- starting at zero
//	        return newText, newStart, newEnd
//	    end,
//	}
//
// Apply runs a registered transform against a selection state and
// validates the returned bounds before handing back a mutation result.
// The Lua state is single-threaded; the Host serializes all access
// behind a mutex.
package script
