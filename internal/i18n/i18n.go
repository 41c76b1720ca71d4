// Package i18n holds the user-facing flash messages. Messages are addressed
// by key so handlers never embed display text; Korean is the default locale.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	SelfVote                = "vote.self"
	QuestionModifyForbidden = "question.modify.forbidden"
	QuestionDeleteForbidden = "question.delete.forbidden"
	AnswerModifyForbidden   = "answer.modify.forbidden"
	AnswerDeleteForbidden   = "answer.delete.forbidden"
	ReservationAccepted     = "reservation.accepted"
	LoginRequired           = "login.required"
)

var translations = map[language.Tag]map[string]string{
	language.Korean: {
		SelfVote:                "본인이 작성한 글은 추천할수 없습니다",
		QuestionModifyForbidden: "수정권한이 없습니다",
		QuestionDeleteForbidden: "삭제권한이 없습니다",
		AnswerModifyForbidden:   "수정권한이 없습니다",
		AnswerDeleteForbidden:   "삭제권한이 없습니다",
		ReservationAccepted:     "예매 요청이 접수되었습니다",
		LoginRequired:           "로그인이 필요합니다",
	},
	language.English: {
		SelfVote:                "You cannot endorse your own content.",
		QuestionModifyForbidden: "You do not have permission to edit this question.",
		QuestionDeleteForbidden: "You do not have permission to delete this question.",
		AnswerModifyForbidden:   "You do not have permission to edit this answer.",
		AnswerDeleteForbidden:   "You do not have permission to delete this answer.",
		ReservationAccepted:     "Your reservation request has been received.",
		LoginRequired:           "Please log in first.",
	},
}

// Translator renders message keys in the locale best matching a request.
type Translator struct {
	cat     *catalog.Builder
	tags    []language.Tag
	matcher language.Matcher
}

// New builds a Translator. defaultLocale is used when nothing in the
// Accept-Language header matches; an unsupported value falls back to Korean.
func New(defaultLocale string) *Translator {
	fallback := language.Korean
	if tag, err := language.Parse(defaultLocale); err == nil {
		if _, ok := translations[tag]; ok {
			fallback = tag
		}
	}

	// The first tag wins when the matcher finds no better candidate.
	tags := []language.Tag{fallback}
	for tag := range translations {
		if tag != fallback {
			tags = append(tags, tag)
		}
	}

	cat := catalog.NewBuilder(catalog.Fallback(fallback))
	for _, tag := range tags {
		for key, text := range translations[tag] {
			cat.SetString(tag, key, text)
		}
	}

	return &Translator{
		cat:     cat,
		tags:    tags,
		matcher: language.NewMatcher(tags),
	}
}

// Translate returns the text for key in the locale chosen from an
// Accept-Language header value. Unknown keys are returned unchanged.
func (t *Translator) Translate(acceptLanguage, key string) string {
	tag := t.tags[0]
	if acceptLanguage != "" {
		if prefs, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(prefs) > 0 {
			if _, index, conf := t.matcher.Match(prefs...); conf != language.No {
				tag = t.tags[index]
			}
		}
	}

	p := message.NewPrinter(tag, message.Catalog(t.cat))
	return p.Sprintf(key)
}
