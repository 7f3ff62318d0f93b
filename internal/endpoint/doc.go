// Package endpoint provides a named-event publish/subscribe primitive with
// owner-scoped listener registration.
//
// Every listener is registered under an Owner, an opaque identity token tied
// to the lifetime of the component that registered it. Release(owner)
// removes all of that owner's listeners across every event name; it must be
// called on the owner's teardown path since nothing is reclaimed
// automatically.
//
// Emit is synchronous and runs on the caller's goroutine. Listeners are
// invoked in registration order from a snapshot taken when Emit starts:
//
//	ep := endpoint.New[string]()
//	owner := endpoint.NewOwner()
//	ep.AddListener(owner, "changed", func(args ...any) {
//	    fmt.Println(args...)
//	})
//	ep.Emit("changed", 42)
//	ep.Release(owner)
//
// A listener added during an emission is not invoked by that emission. A
// listener released during an emission is skipped if it has not run yet.
package endpoint
