package api

import (
	"net/http"

	"github.com/shopspring/decimal"
)

func (h *Handler) handleTransferState(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r)
	h.writeJSON(w, http.StatusOK, workflowViewOf(ps.workflow.Snapshot(), ps.completed.Load()))
}

// handleDraft applies a partial draft update. Only the fields present in the
// body are touched, so the browser can patch one field per keystroke.
func (h *Handler) handleDraft(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r)

	var req draftRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid draft update")
		return
	}

	if req.FromAccount != nil {
		if err := ps.workflow.SelectFromAccount(r.Context(), *req.FromAccount); err != nil {
			h.dispatch(r.Context(), ps)
			h.writeWorkflowError(w, err)
			return
		}
	}
	if req.ToAccount != nil {
		ps.workflow.EditToAccount(*req.ToAccount)
	}
	if req.Amount != nil {
		amount := decimal.Zero
		if *req.Amount != "" {
			parsed, err := decimal.NewFromString(*req.Amount)
			if err != nil {
				h.writeError(w, http.StatusBadRequest, "amount must be a decimal number")
				return
			}
			amount = parsed
		}
		ps.workflow.EditAmount(amount)
	}
	if req.PIN != nil {
		ps.workflow.EditPIN(*req.PIN)
	}
	if req.Description != nil {
		ps.workflow.EditDescription(*req.Description)
	}

	h.dispatch(r.Context(), ps)
	h.writeJSON(w, http.StatusOK, workflowViewOf(ps.workflow.Snapshot(), ps.completed.Load()))
}

// handleSubmit freezes the draft into an intent and returns the review the
// confirmation screen renders.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r)

	if err := ps.workflow.Submit(r.Context()); err != nil {
		h.dispatch(r.Context(), ps)
		h.writeWorkflowError(w, err)
		return
	}
	h.dispatch(r.Context(), ps)

	review, err := ps.workflow.Review()
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, reviewViewOf(review))
}

func (h *Handler) handleConfirm(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r)

	err := ps.workflow.Confirm(r.Context())
	h.dispatch(r.Context(), ps)
	if err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, workflowViewOf(ps.workflow.Snapshot(), ps.completed.Load()))
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r)

	if err := ps.workflow.Cancel(); err != nil {
		h.writeWorkflowError(w, err)
		return
	}
	h.dispatch(r.Context(), ps)
	h.writeJSON(w, http.StatusOK, workflowViewOf(ps.workflow.Snapshot(), ps.completed.Load()))
}

// handleNotifications drains the session's pending toasts.
func (h *Handler) handleNotifications(w http.ResponseWriter, r *http.Request) {
	ps := sessionFrom(r)
	h.writeJSON(w, http.StatusOK, noticeViewsOf(ps.feed.Drain()))
}
