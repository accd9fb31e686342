package pairing_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formpump/pkg/pairing"
)

func sequence() pairing.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}
}

func TestTracker_LabelThenInput(t *testing.T) {
	tr := pairing.New(pairing.WithIDFunc(sequence()))

	labelFor := tr.LabelID("email")
	inputID := tr.InputID("email")

	if labelFor != inputID {
		t.Fatalf("label for %q does not match input id %q", labelFor, inputID)
	}
	if labels, inputs := tr.Pending("email"); labels != 0 || inputs != 0 {
		t.Fatalf("expected empty queues, got labels=%d inputs=%d", labels, inputs)
	}
}

func TestTracker_InputThenLabel(t *testing.T) {
	tr := pairing.New(pairing.WithIDFunc(sequence()))

	inputID := tr.InputID("email")
	labelFor := tr.LabelID("email")

	if labelFor != inputID {
		t.Fatalf("label for %q does not match input id %q", labelFor, inputID)
	}
}

func TestTracker_FIFOAcrossDuplicateNames(t *testing.T) {
	tr := pairing.New(pairing.WithIDFunc(sequence()))

	labels := []string{tr.LabelID("color"), tr.LabelID("color"), tr.LabelID("color")}
	if l, _ := tr.Pending("color"); l != 3 {
		t.Fatalf("expected 3 pending labels, got %d", l)
	}
	inputs := []string{tr.InputID("color"), tr.InputID("color"), tr.InputID("color")}

	if diff := cmp.Diff(labels, inputs); diff != "" {
		t.Fatalf("pairing order mismatch (-labels +inputs):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"id1", "id2", "id3"}, inputs); diff != "" {
		t.Fatalf("unexpected identifiers (-want +got):\n%s", diff)
	}
}

func TestTracker_InterleavedNamesDoNotCross(t *testing.T) {
	tr := pairing.New(pairing.WithIDFunc(sequence()))

	first := tr.LabelID("first")
	last := tr.LabelID("last")

	if got := tr.InputID("last"); got != last {
		t.Fatalf("last input paired with %q, want %q", got, last)
	}
	if got := tr.InputID("first"); got != first {
		t.Fatalf("first input paired with %q, want %q", got, first)
	}
}

func TestTracker_ScopesDoNotLeak(t *testing.T) {
	tr := pairing.New(pairing.WithIDFunc(sequence()))

	restoreA := tr.Enter("a")
	orphan := tr.LabelID("email")
	restoreA()

	restoreB := tr.Enter("b")
	if tr.Form() != "b" {
		t.Fatalf("expected form b, got %q", tr.Form())
	}
	if got := tr.InputID("email"); got == orphan {
		t.Fatalf("input in form b paired with label from form a (%q)", got)
	}
	restoreB()
}

func TestTracker_EnterRestoresOuterScope(t *testing.T) {
	tr := pairing.New(pairing.WithIDFunc(sequence()), pairing.WithForm("outer"))

	outer := tr.LabelID("name")

	func() {
		restore := tr.Enter("inner")
		defer restore()

		if labels, _ := tr.Pending("name"); labels != 0 {
			t.Fatalf("inner scope inherited %d pending labels", labels)
		}
		tr.InputID("name")
		tr.SetForm("switched")
	}()

	if tr.Form() != "outer" {
		t.Fatalf("form name not restored, got %q", tr.Form())
	}
	if got := tr.InputID("name"); got != outer {
		t.Fatalf("outer pending label lost: got %q want %q", got, outer)
	}
}

func TestTracker_RestoreAfterPanic(t *testing.T) {
	tr := pairing.New(pairing.WithIDFunc(sequence()))
	tr.SetForm("outer")

	func() {
		defer func() { _ = recover() }()
		restore := tr.Enter("inner")
		defer restore()
		panic("render failed")
	}()

	if tr.Form() != "outer" {
		t.Fatalf("scope not restored after panic, got %q", tr.Form())
	}
}

func TestTracker_SetFormKeepsQueues(t *testing.T) {
	tr := pairing.New(pairing.WithIDFunc(sequence()))

	label := tr.LabelID("q")
	tr.SetForm("other")
	if got := tr.InputID("q"); got != label {
		t.Fatalf("SetForm dropped pending identifiers: got %q want %q", got, label)
	}
}

func TestRandomID(t *testing.T) {
	id := pairing.RandomID()
	if len(id) != 32 {
		t.Fatalf("expected 32 characters, got %d (%q)", len(id), id)
	}
	for _, r := range id {
		if !strings.ContainsRune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", r) {
			t.Fatalf("unexpected rune %q in %q", r, id)
		}
	}
	if pairing.RandomID() == id {
		t.Fatalf("consecutive identifiers collided")
	}
}
