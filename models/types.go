package models

import "time"

// QuestionType is the answer mode of a question.
type QuestionType string

const (
	QuestionSingle   QuestionType = "single"
	QuestionMultiple QuestionType = "multiple"
	QuestionText     QuestionType = "text"
)

// QuestionTypes lists every declared question type.
var QuestionTypes = []QuestionType{QuestionSingle, QuestionMultiple, QuestionText}

func (t QuestionType) Valid() bool {
	for _, known := range QuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// FakeAnswerContent is the content of the synthetic response option that
// every text question owns.
const FakeAnswerContent = "fake_answer"

// Window is a survey's publication window. Nil bounds are open.
type Window struct {
	Begin *Date
	End   *Date
}

// IsPublished reports whether today falls inside the window. It is computed
// on every call and never stored.
func (w Window) IsPublished(today Date) bool {
	if w.Begin != nil && w.Begin.After(today) {
		return false
	}
	if w.End != nil && today.After(*w.End) {
		return false
	}
	return true
}

// Role is the privilege level of a requester.
type Role int

const (
	RoleAnonymous Role = iota
	RoleAuthenticated
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAuthenticated:
		return "authenticated"
	case RoleAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// Requester is the identity an operation runs on behalf of.
type Requester struct {
	AccountID string
	Role      Role
}

// Anonymous is the requester of unauthenticated calls.
func Anonymous() Requester {
	return Requester{Role: RoleAnonymous}
}

func (r Requester) IsAdmin() bool {
	return r.Role == RoleAdmin
}

// Domain types

type Survey struct {
	ID          int64
	Header      string
	Description string
	BeginDate   *Date
	EndDate     *Date
}

func (s Survey) PublicationWindow() Window {
	return Window{Begin: s.BeginDate, End: s.EndDate}
}

type Question struct {
	ID       int64
	SurveyID int64
	Type     QuestionType
	Content  string

	// Window is copied from the owning survey on read.
	Window Window
}

func (q Question) PublicationWindow() Window {
	return q.Window
}

type ResponseOption struct {
	ID         int64
	QuestionID int64
	Content    string

	// Owning question's type and content, filled on read.
	QuestionType    QuestionType
	QuestionContent string
	Window          Window
}

func (o ResponseOption) PublicationWindow() Window {
	return o.Window
}

// IsSynthetic reports whether the option is the placeholder owned by a text question.
func (o ResponseOption) IsSynthetic() bool {
	return o.QuestionType == QuestionText
}

type Actor struct {
	ID        int64
	Key       string
	AccountID *string
}

// Owner returns the linked account, or "" for anonymous actors.
func (a Actor) Owner() string {
	if a.AccountID == nil {
		return ""
	}
	return *a.AccountID
}

type Session struct {
	ID      int64
	Key     string
	ActorID int64

	// Account linked to the owning actor, filled on read.
	OwnerAccount *string
}

func (s Session) Owner() string {
	if s.OwnerAccount == nil {
		return ""
	}
	return *s.OwnerAccount
}

type AnswerAct struct {
	ID        int64
	Content   *string
	CreatedAt time.Time

	Session Session
	Option  ResponseOption
}

func (a AnswerAct) Owner() string {
	return a.Session.Owner()
}
