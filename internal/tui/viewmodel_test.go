package tui

import (
	"testing"

	"github.com/diegomarinho/jabref/internal/integrity"
	"github.com/diegomarinho/jabref/internal/model"
)

func TestViewModel_PreservesOrder(t *testing.T) {
	a := model.NewEntry("article", "a")
	b := model.NewEntry("article", "b")
	msgs := []integrity.Message{
		{Entry: a, Field: model.FieldYear, Text: "should contain a four digit number"},
		{Entry: b, Field: model.FieldKey, Text: "empty citation key"},
		{Entry: a, Field: model.FieldTitle, Text: "empty title"},
	}

	vm := NewViewModel(msgs)
	if vm.Len() != 3 {
		t.Fatalf("expected 3 messages, got %d", vm.Len())
	}
	for i := range msgs {
		if vm.At(i) != msgs[i] {
			t.Fatalf("message %d out of order", i)
		}
	}
}

func TestViewModel_CopiesInput(t *testing.T) {
	e := model.NewEntry("article", "a")
	msgs := []integrity.Message{{Entry: e, Field: model.FieldYear, Text: "original"}}

	vm := NewViewModel(msgs)
	msgs[0].Text = "mutated"

	if vm.At(0).Text != "original" {
		t.Fatal("caller-side mutation leaked into the view model")
	}
}

func TestViewModel_Empty(t *testing.T) {
	vm := NewViewModel(nil)
	if vm.Len() != 0 {
		t.Fatalf("expected empty view model, got %d", vm.Len())
	}
	if len(vm.Messages()) != 0 {
		t.Fatal("Messages must be empty")
	}
}
