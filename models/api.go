package models

import "time"

// Request types

type SurveyRequest struct {
	Header      string `json:"header"`
	Description string `json:"description"`
	BeginDate   *Date  `json:"begin_date"`
	EndDate     *Date  `json:"end_date"`
}

type QuestionRequest struct {
	Survey  int64        `json:"survey"`
	Type    QuestionType `json:"type"`
	Content string       `json:"content"`
}

type ResponseOptionRequest struct {
	Question int64  `json:"question"`
	Content  string `json:"content"`
}

// Key is accepted so clients can round-trip a representation; it never changes
// a stored key.
type ActorRequest struct {
	Key string `json:"key"`
}

type SessionRequest struct {
	Actor int64  `json:"actor"`
	Key   string `json:"key"`
}

type AnswerActRequest struct {
	Session  int64   `json:"session"`
	Response int64   `json:"response"`
	Content  *string `json:"content"`
}

// Response types

type QuestionShort struct {
	ID      int64        `json:"id"`
	URL     string       `json:"url"`
	Type    QuestionType `json:"type"`
	Content string       `json:"content"`
}

type SurveyDetail struct {
	ID          int64           `json:"id"`
	URL         string          `json:"url"`
	Header      string          `json:"header"`
	Description string          `json:"description"`
	Questions   []QuestionShort `json:"questions"`
	BeginDate   *Date           `json:"begin_date"`
	EndDate     *Date           `json:"end_date"`
	IsPublished bool            `json:"is_published"`
}

type ResponseOptionShort struct {
	ID       int64         `json:"id"`
	URL      string        `json:"url"`
	Question QuestionShort `json:"question"`
	Content  string        `json:"content"`
}

type QuestionDetail struct {
	ID              int64                 `json:"id"`
	URL             string                `json:"url"`
	Survey          int64                 `json:"survey"`
	Type            QuestionType          `json:"type"`
	Content         string                `json:"content"`
	ResponseOptions []ResponseOptionShort `json:"response_options"`
	HaveFakeAnswer  bool                  `json:"have_fake_answer"`
	IsPublished     bool                  `json:"is_published"`
}

type ResponseOptionDetail struct {
	ID          int64         `json:"id"`
	URL         string        `json:"url"`
	Question    QuestionShort `json:"question"`
	Content     string        `json:"content"`
	IsPublished bool          `json:"is_published"`
}

type ActorShort struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type SessionShort struct {
	ID    int64      `json:"id"`
	URL   string     `json:"url"`
	Actor ActorShort `json:"actor"`
}

type ActorDetail struct {
	ID       int64          `json:"id"`
	URL      string         `json:"url"`
	Key      string         `json:"key"`
	Sessions []SessionShort `json:"sessions"`
}

type AnswerActShort struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type SessionDetail struct {
	ID         int64            `json:"id"`
	URL        string           `json:"url"`
	Key        string           `json:"key"`
	Actor      ActorShort       `json:"actor"`
	AnswerActs []AnswerActShort `json:"answer_acts"`
}

type AnswerActDetail struct {
	ID        int64               `json:"id"`
	URL       string              `json:"url"`
	Session   SessionShort        `json:"session"`
	Response  ResponseOptionShort `json:"response"`
	Content   *string             `json:"content"`
	CreatedAt time.Time           `json:"created_at"`
}

// Page is one page of a list response.
type Page[T any] struct {
	Results       []T    `json:"results"`
	NextPageToken string `json:"next_page_token,omitempty"`
	Next          string `json:"next,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
