package validate_test

import (
	"testing"

	"github.com/velora-shop/velora/pkg/validate"
)

type registerInput struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=60"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=8"`
	Gender    string `json:"gender"    validate:"nullable,in=men:women:unisex"`
	Rating    int    `json:"rating"    validate:"nullable,gte=1,lte=5"`
	Website   string `json:"website"   validate:"nullable,url"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{
		FirstName: "Priya",
		Email:     "priya@example.com",
		Password:  "secret123",
		Gender:    "women",
		Rating:    4,
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(registerInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected required errors")
	}
	for _, field := range []string{"firstName", "email", "password"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %s to be required", field)
		}
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	if errs := validate.Struct(in{Email: "not-an-email"}); len(errs) == 0 {
		t.Error("expected email validation error")
	}
	if errs := validate.Struct(in{Email: "valid@example.com"}); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Rating int `json:"rating" validate:"required,gte=1,lte=5"`
	}
	if errs := validate.Struct(in{Rating: 6}); len(errs) == 0 {
		t.Error("expected lte violation for rating=6")
	}
	if errs := validate.Struct(in{Rating: 3}); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Gender string `json:"gender" validate:"required,in=men:women:unisex"`
	}
	if errs := validate.Struct(in{Gender: "other"}); len(errs) == 0 {
		t.Error("expected in violation")
	}
}

func TestNullableSkips(t *testing.T) {
	type in struct {
		Website string `json:"website" validate:"nullable,url"`
	}
	if errs := validate.Struct(in{}); len(errs) != 0 {
		t.Errorf("nullable empty field should pass, got: %v", errs)
	}
	if errs := validate.Struct(in{Website: "ftp://nope"}); len(errs) == 0 {
		t.Error("non-empty nullable field should still be validated")
	}
}

func TestPointerFields(t *testing.T) {
	type in struct {
		Quantity *int    `json:"quantity" validate:"nullable,gte=0"`
		Gender   *string `json:"gender"   validate:"nullable,in=men:women:unisex"`
	}

	if errs := validate.Struct(in{}); len(errs) != 0 {
		t.Errorf("nil nullable pointers should pass, got: %v", errs)
	}

	negative := -5
	if errs := validate.Struct(in{Quantity: &negative}); len(errs) == 0 {
		t.Error("expected gte violation for quantity=-5")
	}

	gender := "robot"
	if errs := validate.Struct(in{Gender: &gender}); len(errs) == 0 {
		t.Error("expected in violation for gender=robot")
	}

	qty := 3
	unisex := "unisex"
	if errs := validate.Struct(in{Quantity: &qty, Gender: &unisex}); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestStringLengthRules(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required,min=2,max=5"`
	}
	if errs := validate.Struct(in{Name: "a"}); len(errs) == 0 {
		t.Error("expected min violation")
	}
	if errs := validate.Struct(in{Name: "abcdef"}); len(errs) == 0 {
		t.Error("expected max violation")
	}
}
