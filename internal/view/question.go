package view

import (
	"context"
	"fmt"
	"net/url"

	"github.com/a-h/templ"
	"github.com/msomdec/ticketboard/internal/domain"
	"github.com/msomdec/ticketboard/internal/service"
)

// QuestionListPage renders one page of the question listing with the search box.
func QuestionListPage(p Page, page *service.QuestionPage) templ.Component {
	return Layout(p, component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>Questions</h1>`)
		h.raw(`<form method="get" action="/question/list/"><input name="kw" value="`)
		h.text(page.Keyword)
		h.raw(`" placeholder="Search"><button type="submit">Search</button></form>`)
		if p.UserName != "" {
			h.raw(`<p><a href="/question/create/">Ask a question</a></p>`)
		}

		if len(page.Questions) == 0 {
			h.raw(`<p class="empty">No questions.</p>`)
			return
		}

		h.raw(`<table><thead><tr><th>#</th><th>Subject</th><th>Author</th><th>Created</th></tr></thead><tbody>`)
		for i, q := range page.Questions {
			number := page.Total - (page.Page-1)*service.QuestionsPerPage - i
			h.rawf(`<tr><td>%d</td><td><a href="/question/detail/%d/">`, number, q.ID)
			h.text(q.Subject)
			h.raw(`</a>`)
			if q.AnswerCount > 0 {
				h.rawf(` <span class="answers">%d</span>`, q.AnswerCount)
			}
			h.raw(`</td><td>`)
			h.text(q.AuthorName)
			h.raw(`</td><td>`)
			h.text(formatTime(q.CreatedAt))
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table>`)

		h.raw(`<nav class="pagination">`)
		if page.HasPrev() {
			h.raw(`<a href="`)
			h.text(listURL(page.Keyword, page.Page-1))
			h.raw(`">Prev</a> `)
		}
		h.rawf(`<span>%d / %d</span>`, page.Page, max(page.TotalPages, 1))
		if page.HasNext() {
			h.raw(` <a href="`)
			h.text(listURL(page.Keyword, page.Page+1))
			h.raw(`">Next</a>`)
		}
		h.raw(`</nav>`)
	}))
}

func listURL(keyword string, page int) string {
	v := url.Values{}
	v.Set("page", fmt.Sprint(page))
	if keyword != "" {
		v.Set("kw", keyword)
	}
	return "/question/list/?" + v.Encode()
}

// QuestionDetailPage renders a question, its answers, and the answer form.
// viewerID is zero for anonymous visitors.
func QuestionDetailPage(p Page, q *domain.Question, answers []domain.Answer, viewerID int64) templ.Component {
	return Layout(p, component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<article class="question"><h1>`)
		h.text(q.Subject)
		h.raw(`</h1><div class="content">`)
		h.text(q.Content)
		h.raw(`</div><p class="meta">`)
		h.text(q.AuthorName)
		h.raw(` · `)
		h.text(formatTime(q.CreatedAt))
		if q.ModifiedAt != nil {
			h.raw(` (modified `)
			h.text(formatTime(*q.ModifiedAt))
			h.raw(`)`)
		}
		h.raw(`</p>`)

		h.render(ctx, VoteCount(QuestionVoteTarget(q.ID), len(q.VoterIDs)))
		if viewerID != 0 {
			voteButton(h, fmt.Sprintf("/question/vote/%d/", q.ID))
		}
		if viewerID == q.UserID {
			h.rawf(`<a href="/question/modify/%d">Edit</a> `, q.ID)
			h.rawf(`<form method="post" action="/question/delete/%d" class="inline"><button type="submit">Delete</button></form>`, q.ID)
		}
		h.raw(`</article>`)

		h.rawf(`<h2>%d answers</h2>`, len(answers))
		for _, a := range answers {
			h.rawf(`<article class="answer" id="answer_%d"><div class="content">`, a.ID)
			h.text(a.Content)
			h.raw(`</div><p class="meta">`)
			h.text(a.AuthorName)
			h.raw(` · `)
			h.text(formatTime(a.CreatedAt))
			h.raw(`</p>`)
			h.render(ctx, VoteCount(AnswerVoteTarget(a.ID), len(a.VoterIDs)))
			if viewerID != 0 {
				voteButton(h, fmt.Sprintf("/answer/vote/%d/", a.ID))
			}
			if viewerID == a.UserID {
				h.rawf(`<a href="/answer/modify/%d">Edit</a> `, a.ID)
				h.rawf(`<form method="post" action="/answer/delete/%d" class="inline"><button type="submit">Delete</button></form>`, a.ID)
			}
			h.raw(`</article>`)
		}

		if viewerID != 0 {
			h.rawf(`<form method="post" action="/answer/create/%d"><textarea name="content" required></textarea>`, q.ID)
			h.raw(`<button type="submit">Answer</button></form>`)
		}
	}))
}

// voteButton posts through datastar when it is loaded and falls back to a
// plain form submission otherwise.
func voteButton(h *htmlWriter, action string) {
	h.raw(`<form method="post" action="`)
	h.text(action)
	h.raw(`" class="inline" data-on:submit__prevent="@post('`)
	h.text(action)
	h.raw(`')"><button type="submit">Vote</button></form>`)
}

// QuestionVoteTarget is the element id of a question's vote counter.
func QuestionVoteTarget(id int64) string { return fmt.Sprintf("question-votes-%d", id) }

// AnswerVoteTarget is the element id of an answer's vote counter.
func AnswerVoteTarget(id int64) string { return fmt.Sprintf("answer-votes-%d", id) }

// VoteCount renders the vote counter element; it is also the SSE patch fragment.
func VoteCount(elementID string, count int) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<span class="votes" id="`)
		h.text(elementID)
		h.rawf(`">%d</span>`, count)
	})
}

// ContentForm renders the create/modify form for questions (withSubject) and answers.
func ContentForm(p Page, action string, withSubject bool, subject, content, errMsg string) templ.Component {
	return Layout(p, component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<h1>`)
		h.text(p.Title)
		h.raw(`</h1>`)
		errorBox(h, errMsg)
		h.raw(`<form method="post" action="`)
		h.text(action)
		h.raw(`">`)
		if withSubject {
			h.raw(`<label>Subject <input name="subject" maxlength="200" required value="`)
			h.text(subject)
			h.raw(`"></label>`)
		}
		h.raw(`<label>Content <textarea name="content" required>`)
		h.text(content)
		h.raw(`</textarea></label><button type="submit">Save</button></form>`)
	}))
}
