package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msomdec/ticketboard/internal/domain"
	"github.com/msomdec/ticketboard/internal/i18n"
	"github.com/msomdec/ticketboard/internal/service"
	"github.com/msomdec/ticketboard/internal/view"
	"github.com/starfederation/datastar-go/datastar"
)

// QuestionHandler handles question pages and question votes.
type QuestionHandler struct {
	questions *service.QuestionService
	votes     *service.VoteService
	pages     pages
}

// HandleList renders one page of questions, optionally filtered by kw.
// GET /question/list/?page=&kw=
func (h *QuestionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	result, err := h.questions.List(r.Context(), r.URL.Query().Get("kw"), page)
	if err != nil {
		slog.Error("list questions", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view.QuestionListPage(h.pages.page(w, r, "Questions"), result).Render(r.Context(), w)
}

// HandleDetail renders a question with its answers.
// GET /question/detail/{id}/
func (h *QuestionHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	q, answers, err := h.questions.Detail(r.Context(), id)
	if err != nil {
		handleLookupError(w, "question detail", err)
		return
	}

	var viewerID int64
	if user := UserFromContext(r.Context()); user != nil {
		viewerID = user.ID
	}
	view.QuestionDetailPage(h.pages.page(w, r, q.Subject), q, answers, viewerID).Render(r.Context(), w)
}

// HandleCreatePage renders an empty question form.
// GET /question/create/
func (h *QuestionHandler) HandleCreatePage(w http.ResponseWriter, r *http.Request) {
	view.ContentForm(h.pages.page(w, r, "Ask a question"), "/question/create/", true, "", "", "").Render(r.Context(), w)
}

// HandleCreate stores a new question and redirects to the list.
// POST /question/create/
func (h *QuestionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	subject, content := r.FormValue("subject"), r.FormValue("content")
	if _, err := h.questions.Create(r.Context(), user.ID, subject, content); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			pg := h.pages.page(w, r, "Ask a question")
			w.WriteHeader(http.StatusUnprocessableEntity)
			view.ContentForm(pg, "/question/create/", true, subject, content, err.Error()).Render(r.Context(), w)
			return
		}
		slog.Error("create question", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/question/list/", http.StatusSeeOther)
}

// HandleModifyPage renders the edit form for the question's author.
// GET /question/modify/{id}
func (h *QuestionHandler) HandleModifyPage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	q, err := h.questions.GetByID(r.Context(), id)
	if err != nil {
		handleLookupError(w, "get question", err)
		return
	}
	if q.UserID != user.ID {
		redirectWithFlash(w, r, i18n.QuestionModifyForbidden, questionURL(id))
		return
	}

	action := fmt.Sprintf("/question/modify/%d", id)
	view.ContentForm(h.pages.page(w, r, "Edit question"), action, true, q.Subject, q.Content, "").Render(r.Context(), w)
}

// HandleModify applies an edit from the question's author.
// POST /question/modify/{id}
func (h *QuestionHandler) HandleModify(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	subject, content := r.FormValue("subject"), r.FormValue("content")
	_, err := h.questions.Modify(r.Context(), user.ID, id, subject, content)
	switch {
	case err == nil:
		http.Redirect(w, r, questionURL(id), http.StatusSeeOther)
	case errors.Is(err, domain.ErrForbidden):
		redirectWithFlash(w, r, i18n.QuestionModifyForbidden, questionURL(id))
	case errors.Is(err, domain.ErrInvalidInput):
		pg := h.pages.page(w, r, "Edit question")
		w.WriteHeader(http.StatusUnprocessableEntity)
		action := fmt.Sprintf("/question/modify/%d", id)
		view.ContentForm(pg, action, true, subject, content, err.Error()).Render(r.Context(), w)
	default:
		handleLookupError(w, "modify question", err)
	}
}

// HandleDelete removes a question together with its answers and votes.
// POST /question/delete/{id}
func (h *QuestionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.questions.Delete(r.Context(), user.ID, id)
	switch {
	case err == nil:
		http.Redirect(w, r, "/question/list/", http.StatusSeeOther)
	case errors.Is(err, domain.ErrForbidden):
		redirectWithFlash(w, r, i18n.QuestionDeleteForbidden, questionURL(id))
	default:
		handleLookupError(w, "delete question", err)
	}
}

// HandleVote adds the current user to the question's voters.
// GET|POST /question/vote/{id}/
func (h *QuestionHandler) HandleVote(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	q, err := h.votes.VoteQuestion(r.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, domain.ErrSelfVote) {
			rejectVote(w, r, questionURL(id))
			return
		}
		handleLookupError(w, "vote question", err)
		return
	}

	acceptVote(w, r, questionURL(id), view.QuestionVoteTarget(id), len(q.VoterIDs))
}

// acceptVote patches the counter in place for datastar clients and
// redirects everyone else back to the detail page.
func acceptVote(w http.ResponseWriter, r *http.Request, detail, target string, count int) {
	if !isDatastarRequest(r) {
		http.Redirect(w, r, detail, http.StatusSeeOther)
		return
	}
	sse := datastar.NewSSE(w, r)
	sse.PatchElementTempl(
		view.VoteCount(target, count),
		datastar.WithSelectorID(target),
	)
}

// rejectVote reports a self-vote. The flash cookie is set before the SSE
// stream starts so the page loaded by the redirect can show it.
func rejectVote(w http.ResponseWriter, r *http.Request, detail string) {
	setFlash(w, i18n.SelfVote)
	if !isDatastarRequest(r) {
		http.Redirect(w, r, detail, http.StatusSeeOther)
		return
	}
	sse := datastar.NewSSE(w, r)
	sse.Redirect(detail)
}

func isDatastarRequest(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") == "true"
}

func questionURL(id int64) string {
	return fmt.Sprintf("/question/detail/%d/", id)
}

// pathID parses the {id} path value, writing 400 when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	return parsePathInt(w, r, "id")
}

func parsePathInt(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// handleLookupError maps ErrNotFound to 404 and logs anything else as a 500.
func handleLookupError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	slog.Error(op, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
