package validate_test

import (
	"testing"

	"github.com/Akibsaiyad14/clothsbillingandinventory/pkg/validate"
)

type billInput struct {
	CustomerName  string  `json:"customer_name"  validate:"required,max=200"`
	CustomerPhone string  `json:"customer_phone" validate:"nullable,max=20"`
	CustomerEmail string  `json:"customer_email" validate:"nullable,email"`
	Discount      float64 `json:"discount"       validate:"gte=0,lte=100"`
	TaxRate       float64 `json:"tax_rate"       validate:"gte=0"`
	Category      string  `json:"category"       validate:"nullable,in=SHIRT,TSHIRT,PANTS,JEANS,JACKET,SWEATER"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(billInput{
		CustomerName:  "Asha Verma",
		CustomerPhone: "9876543210",
		CustomerEmail: "asha@example.com",
		Discount:      10,
		TaxRate:       5,
		Category:      "JEANS",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(billInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected errors for empty input")
	}
	if _, ok := errs["customer_name"]; !ok {
		t.Errorf("expected customer_name error, got: %v", errs)
	}
}

func TestNullableSkipsEmpty(t *testing.T) {
	errs := validate.Struct(billInput{CustomerName: "A"})
	if _, ok := errs["customer_email"]; ok {
		t.Errorf("empty nullable email must not error, got: %v", errs)
	}
}

func TestEmailFormat(t *testing.T) {
	errs := validate.Struct(billInput{
		CustomerName:  "A",
		CustomerEmail: "not-an-email",
	})
	if _, ok := errs["customer_email"]; !ok {
		t.Errorf("expected customer_email error, got: %v", errs)
	}
}

func TestNegativeDiscountRejected(t *testing.T) {
	errs := validate.Struct(billInput{CustomerName: "A", Discount: -5})
	if _, ok := errs["discount"]; !ok {
		t.Errorf("expected discount error, got: %v", errs)
	}
}

func TestInRuleKeepsMultiValueParams(t *testing.T) {
	errs := validate.Struct(billInput{CustomerName: "A", Category: "SOCKS"})
	if _, ok := errs["category"]; !ok {
		t.Errorf("expected category error, got: %v", errs)
	}

	errs = validate.Struct(billInput{CustomerName: "A", Category: "SWEATER"})
	if _, ok := errs["category"]; ok {
		t.Errorf("SWEATER is a valid category, got: %v", errs)
	}
}
