package models

import (
	"testing"
	"time"
)

func TestWindowIsPublished(t *testing.T) {
	today := MustDate(2025, time.May, 15)
	yesterday := today.AddDays(-1)
	tomorrow := today.AddDays(1)

	tests := []struct {
		name  string
		begin *Date
		end   *Date
		want  bool
	}{
		{"open window", nil, nil, true},
		{"inside window", &yesterday, &tomorrow, true},
		{"begins tomorrow", &tomorrow, nil, false},
		{"ended yesterday", nil, &yesterday, false},
		{"begins today", &today, nil, true},
		{"ends today", nil, &today, true},
		{"single day today", &today, &today, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Window{Begin: tt.begin, End: tt.end}
			if got := w.IsPublished(today); got != tt.want {
				t.Errorf("IsPublished() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuestionTypeValid(t *testing.T) {
	for _, qt := range QuestionTypes {
		if !qt.Valid() {
			t.Errorf("%q should be valid", qt)
		}
	}
	for _, qt := range []QuestionType{"", "one", "many", "TEXT"} {
		if qt.Valid() {
			t.Errorf("%q should be invalid", qt)
		}
	}
}

func TestOwners(t *testing.T) {
	account := "acct-1"
	if (Actor{}).Owner() != "" {
		t.Error("anonymous actor should have no owner")
	}
	if (Actor{AccountID: &account}).Owner() != account {
		t.Error("linked actor should report its account")
	}
	act := AnswerAct{Session: Session{OwnerAccount: &account}}
	if act.Owner() != account {
		t.Error("answer act should inherit session owner")
	}
}

func TestRequester(t *testing.T) {
	if Anonymous().IsAdmin() {
		t.Error("anonymous is not admin")
	}
	if !(Requester{AccountID: "a", Role: RoleAdmin}).IsAdmin() {
		t.Error("admin role should be admin")
	}
	if RoleAuthenticated.String() != "authenticated" {
		t.Errorf("unexpected role string %q", RoleAuthenticated.String())
	}
}
