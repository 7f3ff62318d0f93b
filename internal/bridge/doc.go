// Package bridge decouples an editing surface from the controls that act on
// it.
//
// A Bridge owns one endpoint and hands out two capability objects over it.
// The ControlEventDomain is given to external controls such as a toolbar:
// it emits intents (apply an attribute, change the line type, insert an
// element) and observes the attributes of the current selection. The
// SheetEventDomain is given to the editing surface: it listens to those
// intents and reports selection changes back.
//
// Every listener is registered under an endpoint.Owner and must be released
// on the owner's teardown path. Release on the Bridge itself ends its
// lifecycle: all listeners are dropped and every later call is a no-op.
//
//	b := bridge.New(gen.Config{})
//	defer b.Release()
//
//	owner := endpoint.NewOwner()
//	b.SheetEventDomain().AddApplyTextTransformToSelectionListener(owner,
//	    func(name string, value delta.Value) { /* format selection */ })
//	defer b.SheetEventDomain().Release(owner)
//
//	b.ControlEventDomain().ApplyTextTransformToSelection("bold", delta.Bool(true))
package bridge
