package domain_transfer

// State is the workflow position of one funds-transfer attempt. States are
// exhaustive and mutually exclusive.
type State string

const (
	StateEditing        State = "EDITING"
	StateReadyForReview State = "READY_FOR_REVIEW"
	StateConfirming     State = "CONFIRMING"
	StateCommitting     State = "COMMITTING"
	StateCommitted      State = "COMMITTED"
	StateFailed         State = "FAILED"
)

// CanEdit reports whether draft edits are accepted in this state. Edits made
// while a commit is outstanding are ignored.
func (s State) CanEdit() bool {
	return s == StateEditing
}

// AwaitingConfirmation reports whether a frozen intent exists and the user has
// yet to confirm or cancel it.
func (s State) AwaitingConfirmation() bool {
	return s == StateReadyForReview || s == StateConfirming
}

// LookupStatus is the recipient-lookup sub-state of the editing screen.
type LookupStatus string

const (
	LookupIdle       LookupStatus = "IDLE"
	LookupValidating LookupStatus = "VALIDATING"
	LookupFound      LookupStatus = "FOUND"
	LookupNotFound   LookupStatus = "NOT_FOUND"
)
