package handler

import (
	"net/http"

	"github.com/msomdec/ticketboard/internal/i18n"
	"github.com/msomdec/ticketboard/internal/service"
)

// Deps are the services the HTTP layer is built on. Nil limiters disable
// rate limiting.
type Deps struct {
	DB           Pinger
	Auth         *service.AuthService
	Questions    *service.QuestionService
	Answers      *service.AnswerService
	Votes        *service.VoteService
	Reservations *service.ReservationService
	Tickets      *service.TicketService
	Translator   *i18n.Translator
	CookieSecure bool

	LoginLimiter       *service.TokenBucket
	ReservationLimiter *service.TokenBucket
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, d Deps) {
	pg := pages{tr: d.Translator}
	authH := &AuthHandler{auth: d.Auth, pages: pg, cookieSecure: d.CookieSecure}
	homeH := &HomeHandler{pages: pg}
	questionH := &QuestionHandler{questions: d.Questions, votes: d.Votes, pages: pg}
	answerH := &AnswerHandler{answers: d.Answers, votes: d.Votes, pages: pg}
	ticketH := &TicketHandler{tickets: d.Tickets, reservations: d.Reservations, pages: pg}

	optional := func(fn http.HandlerFunc) http.Handler { return OptionalAuth(d.Auth, fn) }
	required := func(fn http.HandlerFunc) http.Handler { return RequireAuth(d.Auth, fn) }

	mux.HandleFunc("GET /healthz", HandleHealthz(d.DB))
	mux.Handle("GET /", optional(homeH.HandleHome))

	mux.Handle("GET /login", optional(authH.HandleLoginPage))
	mux.Handle("POST /login", RateLimit(d.LoginLimiter, clientIP, http.HandlerFunc(authH.HandleLogin)))
	mux.Handle("GET /register", optional(authH.HandleRegisterPage))
	mux.HandleFunc("POST /register", authH.HandleRegister)
	mux.HandleFunc("POST /logout", authH.HandleLogout)

	mux.Handle("GET /question/list/", optional(questionH.HandleList))
	mux.Handle("GET /question/detail/{id}/", optional(questionH.HandleDetail))
	mux.Handle("GET /question/create/", required(questionH.HandleCreatePage))
	mux.Handle("POST /question/create/", required(questionH.HandleCreate))
	mux.Handle("GET /question/modify/{id}", required(questionH.HandleModifyPage))
	mux.Handle("POST /question/modify/{id}", required(questionH.HandleModify))
	mux.Handle("POST /question/delete/{id}", required(questionH.HandleDelete))
	mux.Handle("GET /question/vote/{id}/", required(questionH.HandleVote))
	mux.Handle("POST /question/vote/{id}/", required(questionH.HandleVote))
	mux.Handle("POST /question/reserve_tickets", RequireAuth(d.Auth,
		RateLimit(d.ReservationLimiter, userKey, http.HandlerFunc(ticketH.HandleReserve))))

	mux.Handle("POST /answer/create/{question_id}", required(answerH.HandleCreate))
	mux.Handle("GET /answer/modify/{id}", required(answerH.HandleModifyPage))
	mux.Handle("POST /answer/modify/{id}", required(answerH.HandleModify))
	mux.Handle("POST /answer/delete/{id}", required(answerH.HandleDelete))
	mux.Handle("GET /answer/vote/{id}/", required(answerH.HandleVote))
	mux.Handle("POST /answer/vote/{id}/", required(answerH.HandleVote))

	mux.Handle("GET /tickets/", optional(ticketH.HandleList))
	mux.Handle("GET /purchases/", required(ticketH.HandlePurchases))
}
