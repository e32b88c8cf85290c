package game

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMemoryOracleBudget(t *testing.T) {
	o := NewMemoryOracle("radio", 2)
	if o.WordLength() != 5 {
		t.Fatalf("WordLength = %d", o.WordLength())
	}
	for i := 0; i < 2; i++ {
		if _, err := o.Guess("adieu"); err != nil {
			t.Fatalf("guess %d: %v", i+1, err)
		}
	}
	// The third question exceeds the budget, even when it would have matched.
	if _, err := o.Guess("radio"); !errors.Is(err, ErrTooManyGuesses) {
		t.Fatalf("err = %v, want %v", err, ErrTooManyGuesses)
	}
	if o.Guesses() != 3 {
		t.Errorf("Guesses = %d, want 3", o.Guesses())
	}
}

func TestMemoryOracleUnlimited(t *testing.T) {
	o := NewMemoryOracle("ox", 0)
	for i := 0; i < 100; i++ {
		if _, err := o.Guess("xo"); err != nil {
			t.Fatal(err)
		}
	}
	out, err := o.Guess("ox")
	if err != nil || !out.Match {
		t.Fatalf("Guess = %+v, %v", out, err)
	}
}

func TestRandomMemoryOracle(t *testing.T) {
	dict := []string{"cat", "radio", "audio", "dog"}
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20; i++ {
		o, err := RandomMemoryOracle(dict, 5, 6, rng)
		if err != nil {
			t.Fatal(err)
		}
		if s := o.Reveal(); s != "radio" && s != "audio" {
			t.Fatalf("secret %q has the wrong length", s)
		}
		if o.MaxGuesses != 6 {
			t.Errorf("MaxGuesses = %d", o.MaxGuesses)
		}
	}
	if _, err := RandomMemoryOracle(dict, 4, 0, nil); !errors.Is(err, ErrNoSecret) {
		t.Errorf("err = %v, want %v", err, ErrNoSecret)
	}
}

func TestParseFeedback(t *testing.T) {
	got, err := ParseFeedback("G y . b X - +")
	if err != nil {
		t.Fatal(err)
	}
	want := Feedback{Correct, WrongPosition, NotInWord, NotInWord, NotInWord, Missing, Extra}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseFeedback mismatch (-want +got):\n%s", diff)
	}
	if s := got.String(); s != "gy...-+" {
		t.Errorf("String() = %q", s)
	}
	if _, err := ParseFeedback("gq"); !errors.Is(err, ErrBadFeedback) {
		t.Errorf("err = %v, want %v", err, ErrBadFeedback)
	}
}

func TestHumanOracle(t *testing.T) {
	in := strings.NewReader("five\n5\ngg\ngyz..\ng..y.\nggggg\n")
	var out strings.Builder

	o, err := NewHumanOracle(in, &out)
	if err != nil {
		t.Fatal(err)
	}
	if o.WordLength() != 5 {
		t.Fatalf("WordLength = %d", o.WordLength())
	}

	got, err := o.Guess("audio")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Feedback{Correct, NotInWord, NotInWord, WrongPosition, NotInWord}, got.Feedback); diff != "" {
		t.Errorf("feedback mismatch (-want +got):\n%s", diff)
	}

	got, err = o.Guess("radio")
	if err != nil || !got.Match {
		t.Fatalf("Guess = %+v, %v", got, err)
	}

	if _, err := o.Guess("again"); !errors.Is(err, ErrOracleGone) {
		t.Errorf("err = %v, want %v", err, ErrOracleGone)
	}
	if !strings.Contains(out.String(), "Expected 5 symbols, got 2.") {
		t.Errorf("missing length complaint in %q", out.String())
	}
}

func TestDispositionString(t *testing.T) {
	if WrongPosition.String() != "wrong_position" || Disposition(42).String() != "disposition(42)" {
		t.Error("unexpected disposition names")
	}
}
