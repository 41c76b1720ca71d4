package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/msomdec/ticketboard/internal/domain"
	"github.com/msomdec/ticketboard/internal/i18n"
	"github.com/msomdec/ticketboard/internal/service"
	"github.com/msomdec/ticketboard/internal/view"
)

// AnswerHandler handles answer creation, edits, deletion and votes.
type AnswerHandler struct {
	answers *service.AnswerService
	votes   *service.VoteService
	pages   pages
}

// HandleCreate posts an answer to a question.
// POST /answer/create/{question_id}
func (h *AnswerHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	questionID, ok := parsePathInt(w, r, "question_id")
	if !ok {
		return
	}

	content := r.FormValue("content")
	a, err := h.answers.Create(r.Context(), user.ID, questionID, content)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			pg := h.pages.page(w, r, "Answer")
			w.WriteHeader(http.StatusUnprocessableEntity)
			action := fmt.Sprintf("/answer/create/%d", questionID)
			view.ContentForm(pg, action, false, "", content, err.Error()).Render(r.Context(), w)
			return
		}
		handleLookupError(w, "create answer", err)
		return
	}

	http.Redirect(w, r, answerURL(a), http.StatusSeeOther)
}

// HandleModifyPage renders the edit form for the answer's author.
// GET /answer/modify/{id}
func (h *AnswerHandler) HandleModifyPage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	a, err := h.answers.GetByID(r.Context(), id)
	if err != nil {
		handleLookupError(w, "get answer", err)
		return
	}
	if a.UserID != user.ID {
		redirectWithFlash(w, r, i18n.AnswerModifyForbidden, questionURL(a.QuestionID))
		return
	}

	action := fmt.Sprintf("/answer/modify/%d", id)
	view.ContentForm(h.pages.page(w, r, "Edit answer"), action, false, "", a.Content, "").Render(r.Context(), w)
}

// HandleModify applies an edit from the answer's author.
// POST /answer/modify/{id}
func (h *AnswerHandler) HandleModify(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	existing, err := h.answers.GetByID(r.Context(), id)
	if err != nil {
		handleLookupError(w, "get answer", err)
		return
	}

	content := r.FormValue("content")
	a, err := h.answers.Modify(r.Context(), user.ID, id, content)
	switch {
	case err == nil:
		http.Redirect(w, r, answerURL(a), http.StatusSeeOther)
	case errors.Is(err, domain.ErrForbidden):
		redirectWithFlash(w, r, i18n.AnswerModifyForbidden, questionURL(existing.QuestionID))
	case errors.Is(err, domain.ErrInvalidInput):
		pg := h.pages.page(w, r, "Edit answer")
		w.WriteHeader(http.StatusUnprocessableEntity)
		action := fmt.Sprintf("/answer/modify/%d", id)
		view.ContentForm(pg, action, false, "", content, err.Error()).Render(r.Context(), w)
	default:
		handleLookupError(w, "modify answer", err)
	}
}

// HandleDelete removes an answer and its votes.
// POST /answer/delete/{id}
func (h *AnswerHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	questionID, err := h.answers.Delete(r.Context(), user.ID, id)
	switch {
	case err == nil:
		http.Redirect(w, r, questionURL(questionID), http.StatusSeeOther)
	case errors.Is(err, domain.ErrForbidden):
		redirectWithFlash(w, r, i18n.AnswerDeleteForbidden, questionURL(questionID))
	default:
		handleLookupError(w, "delete answer", err)
	}
}

// HandleVote adds the current user to the answer's voters.
// GET|POST /answer/vote/{id}/
func (h *AnswerHandler) HandleVote(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	a, err := h.votes.VoteAnswer(r.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, domain.ErrSelfVote) {
			existing, lookupErr := h.answers.GetByID(r.Context(), id)
			if lookupErr != nil {
				handleLookupError(w, "get answer", lookupErr)
				return
			}
			rejectVote(w, r, questionURL(existing.QuestionID))
			return
		}
		handleLookupError(w, "vote answer", err)
		return
	}

	acceptVote(w, r, answerURL(a), view.AnswerVoteTarget(id), len(a.VoterIDs))
}

func answerURL(a *domain.Answer) string {
	return fmt.Sprintf("/question/detail/%d/#answer_%d", a.QuestionID, a.ID)
}
