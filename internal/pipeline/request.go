package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/promptbrush/promptbrush/internal/textfx"
)

// MaxVariantCount is the most variants one edit request may ask for.
const MaxVariantCount = 4

// EditRequest is the immutable description of one edit submission.
// Constructed once per submit and never modified during the run.
type EditRequest struct {
	// Instruction is the user's free-text edit request. Required.
	Instruction string
	// Title is an optional overlay caption rendered onto every variant.
	Title string
	// Style selects the title treatment when Title is set.
	Style textfx.Style
	// VariantCount is how many outputs to produce, in [1, MaxVariantCount].
	VariantCount int
}

// Validate reports an InputError for any request the pipeline must never
// start on. Checked before decoding.
func (r EditRequest) Validate() error {
	if strings.TrimSpace(r.Instruction) == "" {
		return &InputError{Reason: "instruction text is empty"}
	}
	if r.VariantCount < 1 || r.VariantCount > MaxVariantCount {
		return &InputError{Reason: fmt.Sprintf("variant count %d out of range [1, %d]", r.VariantCount, MaxVariantCount)}
	}
	return nil
}

// VariantResult is one finished output. Ownership passes to the caller on
// return; the pipeline keeps no reference.
type VariantResult struct {
	// Data is the encoded output image.
	Data []byte
	// MIME is the encoding of Data.
	MIME string
	// Index is the variant's position, 0..N-1.
	Index int
	// PromptEcho is the enhanced prompt the variant was composed from.
	PromptEcho string
}

// ErrBusy is returned when Run is called while another edit request is
// still in flight. The driver is not reentrant within a session.
var ErrBusy = errors.New("an edit request is already in flight")

// InputError marks a request the pipeline refused to start: no image,
// empty instruction, or an out-of-range variant count.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return "invalid edit request: " + e.Reason }

// FatalError marks the one downstream failure that aborts a whole request:
// the source image could not be decoded. Everything after a successful
// decode degrades instead of aborting.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string { return "edit request failed: " + e.Err.Error() }

func (e *FatalError) Unwrap() error { return e.Err }
