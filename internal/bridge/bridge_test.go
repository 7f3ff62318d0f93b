package bridge

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/richsheet/internal/delta"
	"github.com/dshills/richsheet/internal/endpoint"
	"github.com/dshills/richsheet/internal/gen"
	"github.com/dshills/richsheet/internal/logging"
	"github.com/dshills/richsheet/internal/transform"
)

type attrCall struct {
	Name  string
	Value delta.Value
}

func TestApplyTextTransformToSelection(t *testing.T) {
	b := New(gen.Config{})
	defer b.Release()

	var calls []attrCall
	owner := endpoint.NewOwner()
	b.SheetEventDomain().AddApplyTextTransformToSelectionListener(owner, func(name string, value delta.Value) {
		calls = append(calls, attrCall{name, value})
	})

	ctrl := b.ControlEventDomain()
	ctrl.ApplyTextTransformToSelection("bold", delta.Bool(true))
	ctrl.ApplyTextTransformToSelection("bold", delta.Clear())

	expected := []attrCall{
		{"bold", delta.Bool(true)},
		{"bold", delta.Clear()},
	}
	if diff := cmp.Diff(expected, calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyLineTypeToSelection(t *testing.T) {
	b := New(gen.Config{})
	defer b.Release()

	var got []delta.LineType
	b.SheetEventDomain().AddApplyLineTypeToSelectionListener(endpoint.NewOwner(), func(lt delta.LineType) {
		got = append(got, lt)
	})

	b.ControlEventDomain().ApplyLineTypeToSelection(delta.LineTypeQuote)
	b.ControlEventDomain().ApplyLineTypeToSelection(delta.LineTypeNormal)

	if diff := cmp.Diff([]delta.LineType{delta.LineTypeQuote, delta.LineTypeNormal}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertOrReplaceAtSelection(t *testing.T) {
	b := New(gen.Config{})
	defer b.Release()

	var got []Element
	b.SheetEventDomain().AddInsertOrReplaceAtSelectionListener(endpoint.NewOwner(), func(el Element) {
		got = append(got, el)
	})

	img := delta.Image{Source: "cat.png", Width: 4, Height: 2}
	ctrl := b.ControlEventDomain()
	ctrl.InsertOrReplaceAtSelection(TextElement{Content: "hi"})
	ctrl.InsertOrReplaceAtSelection(ImageElement{Description: img})
	ctrl.InsertOrReplaceAtSelection(nil)

	expected := []Element{TextElement{Content: "hi"}, ImageElement{Description: img}}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectionChangeNotifications(t *testing.T) {
	b := New(gen.Config{})
	defer b.Release()

	var (
		attrs []delta.Attributes
		lines []delta.LineType
	)
	owner := endpoint.NewOwner()
	ctrl := b.ControlEventDomain()
	ctrl.AddSelectedAttributesChangeListener(owner, func(a delta.Attributes) {
		attrs = append(attrs, a)
	})
	ctrl.AddSelectedLineTypeChangeListener(owner, func(lt delta.LineType) {
		lines = append(lines, lt)
	})

	sent := delta.Attributes{"bold": delta.Bool(true)}
	sheet := b.SheetEventDomain()
	sheet.NotifySelectedAttributesChange(sent)
	sheet.NotifySelectedLineTypeChange(delta.LineTypeListItem)

	sent["italic"] = delta.Bool(true)
	if len(attrs) != 1 || !attrs[0].Equal(delta.Attributes{"bold": delta.Bool(true)}) {
		t.Errorf("listeners should receive a copy of the attributes, got %v", attrs)
	}
	if len(lines) != 1 || lines[0] != delta.LineTypeListItem {
		t.Errorf("unexpected line types %v", lines)
	}

	ctrl.Release(owner)
	sheet.NotifySelectedLineTypeChange(delta.LineTypeQuote)
	if len(lines) != 1 {
		t.Error("released control listener should not be invoked")
	}
}

func TestListenersInRegistrationOrder(t *testing.T) {
	b := New(gen.Config{})
	defer b.Release()

	var order []string
	o1, o2 := endpoint.NewOwner(), endpoint.NewOwner()
	sheet := b.SheetEventDomain()
	sheet.AddApplyTextTransformToSelectionListener(o1, func(string, delta.Value) { order = append(order, "L1") })
	sheet.AddApplyTextTransformToSelectionListener(o2, func(string, delta.Value) { order = append(order, "L2") })

	b.ControlEventDomain().ApplyTextTransformToSelection("italic", delta.Bool(true))
	if diff := cmp.Diff([]string{"L1", "L2"}, order); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	order = nil
	sheet.Release(o1)
	b.ControlEventDomain().ApplyTextTransformToSelection("italic", delta.Bool(true))
	if diff := cmp.Diff([]string{"L2"}, order); diff != "" {
		t.Errorf("after Release mismatch (-want +got):\n%s", diff)
	}
}

func TestSheetReleaseRemovesAllEvents(t *testing.T) {
	b := New(gen.Config{})
	defer b.Release()

	owner := endpoint.NewOwner()
	sheet := b.SheetEventDomain()
	sheet.AddApplyTextTransformToSelectionListener(owner, func(string, delta.Value) {})
	sheet.AddApplyLineTypeToSelectionListener(owner, func(delta.LineType) {})
	sheet.AddInsertOrReplaceAtSelectionListener(owner, func(Element) {})

	sheet.Release(owner)
	for _, ev := range []Event{EventApplyAttributesToSelection, EventApplyLineTypeToSelection, EventInsertOrReplaceAtSelection} {
		if n := b.listenerCount(ev); n != 0 {
			t.Errorf("%s still has %d listeners", ev, n)
		}
	}
	sheet.Release(owner)
}

func TestReleasedBridgeIsTerminal(t *testing.T) {
	b := New(gen.Config{})

	calls := 0
	owner := endpoint.NewOwner()
	sheet := b.SheetEventDomain()
	sheet.AddInsertOrReplaceAtSelectionListener(owner, func(Element) { calls++ })

	b.Release()
	if !b.Released() {
		t.Fatal("Released() should be true")
	}

	ctrl := b.ControlEventDomain()
	ctrl.InsertOrReplaceAtSelection(TextElement{Content: "x"})
	ctrl.ApplyTextTransformToSelection("bold", delta.Bool(true))
	ctrl.ApplyLineTypeToSelection(delta.LineTypeQuote)

	sheet.AddInsertOrReplaceAtSelectionListener(owner, func(Element) { calls++ })
	ctrl.InsertOrReplaceAtSelection(TextElement{Content: "y"})
	sheet.NotifySelectedLineTypeChange(delta.LineTypeQuote)
	sheet.Release(owner)
	b.Release()

	if calls != 0 {
		t.Errorf("expected no listener invocations after Release, got %d", calls)
	}
	if b.listenerCount(EventInsertOrReplaceAtSelection) != 0 {
		t.Error("listeners added after Release should be ignored")
	}
}

func TestReleaseClosesGenService(t *testing.T) {
	script, err := transform.NewScript("function style(v) return nil end")
	if err != nil {
		t.Fatalf("NewScript() error: %v", err)
	}
	b := New(gen.Config{TextTransformSpecs: []transform.Spec{{AttributeName: "s", Transform: script}}})

	if b.GenService().TextTransforms.Len() != 1 {
		t.Fatalf("expected configured specs")
	}
	b.Release()

	if _, err := script.Apply(delta.String("x")); !errors.Is(err, transform.ErrScriptClosed) {
		t.Errorf("expected script to be closed, got %v", err)
	}
}

func TestBridgeIdentity(t *testing.T) {
	a, b := New(gen.Config{}), New(gen.Config{})
	defer a.Release()
	defer b.Release()

	if a.ID() == "" || a.ID() == b.ID() {
		t.Errorf("expected distinct ids, got %q and %q", a.ID(), b.ID())
	}
	if a.GenService() == nil || a.GenService().ImageLocator == nil {
		t.Error("expected default generation services")
	}
}

func TestBridgeLogging(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: logging.LogLevelDebug, Output: &buf})

	b := New(gen.Config{}, WithLogger(log))
	b.Release()

	out := buf.String()
	if !strings.Contains(out, "created") || !strings.Contains(out, "released") {
		t.Errorf("expected lifecycle messages:\n%s", out)
	}
	if !strings.Contains(out, b.ID()) {
		t.Errorf("expected bridge id in output:\n%s", out)
	}
}

func TestNilListenersIgnored(t *testing.T) {
	b := New(gen.Config{})
	defer b.Release()

	owner := endpoint.NewOwner()
	b.SheetEventDomain().AddApplyTextTransformToSelectionListener(owner, nil)
	b.SheetEventDomain().AddApplyLineTypeToSelectionListener(owner, nil)
	b.SheetEventDomain().AddInsertOrReplaceAtSelectionListener(owner, nil)
	b.ControlEventDomain().AddSelectedAttributesChangeListener(owner, nil)
	b.ControlEventDomain().AddSelectedLineTypeChangeListener(owner, nil)

	b.ControlEventDomain().ApplyTextTransformToSelection("bold", delta.Bool(true))
	if b.listenerCount(EventApplyAttributesToSelection) != 0 {
		t.Error("nil listeners should not be registered")
	}
}
