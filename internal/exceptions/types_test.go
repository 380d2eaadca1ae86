package exceptions_test

import (
	"errors"
	"fmt"
	"testing"

	"philcali.me/mealplanner/internal/exceptions"
)

func TestStatusCodes(t *testing.T) {
	cases := map[int]exceptions.RequestError{
		404: exceptions.NotFound("recipe", "1"),
		409: exceptions.Conflict("favorite", "1"),
		400: exceptions.InvalidInput("bad"),
		401: exceptions.Unauthorized(),
		403: exceptions.Forbidden("edit"),
		500: exceptions.InternalServer("boom"),
	}
	for expected, err := range cases {
		if code := err.ToServiceError().StatusCode; code != expected {
			t.Errorf("Expected %d for %T, got %d", expected, err, code)
		}
	}
}

func TestValidationError(t *testing.T) {
	t.Run("EmptyIsNil", func(t *testing.T) {
		if err := exceptions.Validation().OrNil(); err != nil {
			t.Fatalf("Expected nil, got %v", err)
		}
	})

	t.Run("FirstMessageWins", func(t *testing.T) {
		verr := exceptions.Validation()
		verr.Add("rating", "must be between 1 and 5")
		verr.Add("rating", "second")
		verr.Add("calories", "must not be negative")
		if verr.Fields["rating"] != "must be between 1 and 5" {
			t.Fatalf("Unexpected rating message %s", verr.Fields["rating"])
		}
		expected := "Invalid input: calories: must not be negative; rating: must be between 1 and 5"
		if verr.Error() != expected {
			t.Fatalf("Expected %q, got %q", expected, verr.Error())
		}
	})

	t.Run("Unwraps", func(t *testing.T) {
		verr := exceptions.Validation()
		verr.Add("title", "is required")
		wrapped := fmt.Errorf("create: %w", verr.OrNil())
		var found *exceptions.ValidationError
		if !errors.As(wrapped, &found) || found.Fields["title"] != "is required" {
			t.Fatalf("Expected a ValidationError inside %v", wrapped)
		}
	})
}
