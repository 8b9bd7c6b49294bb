// Package client drives the upload, processing and viewing flow against the
// sign endpoint.
package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/BerylCAtieno/pdf-signer/internal/utils"
	"github.com/BerylCAtieno/pdf-signer/internal/viewer"
)

const (
	MsgSignFailed = "Failed to sign the PDF. Please try again."
	MsgViewFailed = "Failed to load PDF. Please try uploading again."
)

// State is a copy of the orchestrator's fields at one instant.
type State struct {
	Stage        Stage
	Original     *File
	Signed       *File
	Error        string
	ViewerError  string
	SignAllPages bool
}

type Orchestrator struct {
	signer Signer
	logger *utils.Logger
	open   func([]byte) (*viewer.Document, error)

	mu    sync.Mutex
	state State
	view  *viewer.Document
}

func NewOrchestrator(signer Signer, logger *utils.Logger) *Orchestrator {
	return &Orchestrator{
		signer: signer,
		logger: logger,
		open:   viewer.Open,
		state:  State{Stage: StageUpload},
	}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) Stage() Stage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Stage
}

// Viewer returns the open handle on the signed document, or nil outside
// the viewing stage.
func (o *Orchestrator) Viewer() *viewer.Document {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.view
}

// SetSignAllPages toggles the option; only allowed while uploading.
func (o *Orchestrator) SetSignAllPages(v bool) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state.Stage != StageUpload {
		return fmt.Errorf("%w: toggle sign-all in %s", ErrIllegalTransition, o.state.Stage)
	}
	o.state.SignAllPages = v
	return nil
}

// SelectFile validates f and, if it passes, signs it. A *ValidationError
// leaves the state untouched and makes no request. On a signing failure
// the flow returns to upload with MsgSignFailed and the cause is returned.
func (o *Orchestrator) SelectFile(ctx context.Context, f *File) error {
	o.mu.Lock()
	if _, err := Transition(o.state.Stage, EventSelect); err != nil {
		o.mu.Unlock()
		return err
	}
	if err := Validate(f); err != nil {
		o.mu.Unlock()
		return err
	}

	o.state.Original = f
	o.state.Error = ""
	o.state.Stage = StageProcessing
	signAll := o.state.SignAllPages
	o.mu.Unlock()

	signed, err := o.signer.Sign(ctx, f, signAll)

	o.mu.Lock()
	defer o.mu.Unlock()

	if err != nil {
		o.logger.Error("Error signing PDF", "filename", f.Name, "error", err)
		o.state.Error = MsgSignFailed
		o.state.Stage = o.mustTransition(EventFail)
		return fmt.Errorf("sign %s: %w", f.Name, err)
	}

	o.state.Signed = signed
	o.state.Error = ""
	o.state.ViewerError = ""
	o.state.Stage = o.mustTransition(EventSucceed)

	o.closeView()
	view, err := o.open(signed.Data)
	if err != nil {
		o.logger.Error("Error loading PDF", "filename", signed.Name, "error", err)
		o.state.ViewerError = MsgViewFailed
		return nil
	}
	o.view = view
	return nil
}

// Back discards both documents, closes the viewer and resets the options.
func (o *Orchestrator) Back() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	next, err := Transition(o.state.Stage, EventBack)
	if err != nil {
		return err
	}

	o.closeView()
	o.state = State{Stage: next}
	return nil
}

func (o *Orchestrator) mustTransition(ev Event) Stage {
	next, err := Transition(o.state.Stage, ev)
	if err != nil {
		panic(err)
	}
	return next
}

func (o *Orchestrator) closeView() {
	if o.view == nil {
		return
	}
	if err := o.view.Close(); err != nil {
		o.logger.Warn("Failed to close viewer", "error", err)
	}
	o.view = nil
}
