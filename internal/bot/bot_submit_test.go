package bot

import (
	"testing"
	"time"
)

func TestParseSubmission(t *testing.T) {
	submission, err := parseSubmission(
		"!submit 2020-05-01 Urza\n" +
			"Urza: Atraxa, Praetors' Voice\n" +
			"\n" +
			"Mishra: Edgar Markov\n",
	)
	if err != nil {
		t.Fatal(err)
	}

	if expected := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC); !submission.PlayedAt.Equal(expected) {
		t.Errorf("expected %s, got %s", expected, submission.PlayedAt)
	}
	if submission.Winner != "Urza" {
		t.Errorf("expected Urza to win, got %s", submission.Winner)
	}
	if len(submission.Commanders) != 2 {
		t.Fatalf("expected 2 players, got %d", len(submission.Commanders))
	}
	if submission.Commanders["Urza"] != "Atraxa, Praetors' Voice" {
		t.Errorf("unexpected commander: %s", submission.Commanders["Urza"])
	}
	if submission.Commanders["Mishra"] != "Edgar Markov" {
		t.Errorf("unexpected commander: %s", submission.Commanders["Mishra"])
	}
}

func TestParseSubmissionMultiWordWinner(t *testing.T) {
	submission, err := parseSubmission(
		"!submit 2020-05-01 Our Lord Yawgmoth\nOur Lord Yawgmoth: Edgar Markov\nUrza: The Ur-Dragon",
	)
	if err != nil {
		t.Fatal(err)
	}

	if submission.Winner != "Our Lord Yawgmoth" {
		t.Errorf("unexpected winner: %s", submission.Winner)
	}
}

func TestParseSubmissionErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"no winner", "!submit 2020-05-01"},
		{"bad date", "!submit yesterday Urza\nUrza: Atraxa, Praetors' Voice"},
		{"bad player line", "!submit 2020-05-01 Urza\nUrza has no commander"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			if _, err := parseSubmission(c.content); err == nil {
				t.Error("expected an error, got none")
			}
		})
	}
}
