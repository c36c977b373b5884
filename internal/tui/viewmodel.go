package tui

import "github.com/diegomarinho/jabref/internal/integrity"

// ViewModel exposes the ordered, unfiltered message sequence to the table.
// It is a pure projection of its constructor argument: the sequence never
// changes for the lifetime of the dialog, only row visibility does (driven
// by the filter engine, which is the display layer's concern).
type ViewModel struct {
	messages []integrity.Message
}

// NewViewModel copies the input so later caller-side mutation cannot leak
// into the dialog. The input order is preserved; an empty input is a valid
// empty table.
func NewViewModel(messages []integrity.Message) *ViewModel {
	vm := &ViewModel{messages: make([]integrity.Message, len(messages))}
	copy(vm.messages, messages)
	return vm
}

// Messages returns the full ordered sequence.
func (vm *ViewModel) Messages() []integrity.Message {
	return vm.messages
}

// Len returns the number of messages.
func (vm *ViewModel) Len() int { return len(vm.messages) }

// At returns the message at index i of the original order.
func (vm *ViewModel) At(i int) integrity.Message { return vm.messages[i] }
