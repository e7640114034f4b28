package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidCNPJ(t *testing.T) {
	valid := []string{"12345678000195", "12.345.678/0001-95"}
	invalid := []string{"1234567800019", "123456780001955", "12345678abcd95", ""}
	for _, cnpj := range valid {
		if !IsValidCNPJ(cnpj) {
			t.Errorf("IsValidCNPJ(%q) = false, want true", cnpj)
		}
	}
	for _, cnpj := range invalid {
		if IsValidCNPJ(cnpj) {
			t.Errorf("IsValidCNPJ(%q) = true, want false", cnpj)
		}
	}
}

func TestIsValidCPF(t *testing.T) {
	valid := []string{"12345678901", "123.456.789-01"}
	invalid := []string{"1234567890", "123456789012", "12345678a01", ""}
	for _, cpf := range valid {
		if !IsValidCPF(cpf) {
			t.Errorf("IsValidCPF(%q) = false, want true", cpf)
		}
	}
	for _, cpf := range invalid {
		if IsValidCPF(cpf) {
			t.Errorf("IsValidCPF(%q) = true, want false", cpf)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"11987654321", "+5511987654321", "1133334444", "11 98765-4321"}
	invalid := []string{"123", "119876543210000", "11abc654321", ""}
	for _, phone := range valid {
		if !IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", phone)
		}
	}
	for _, phone := range invalid {
		if IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", phone)
		}
	}
}

func TestIsValidEmailDomain(t *testing.T) {
	valid := []string{"empresa.com", "empresa.com.br", "my-company.io"}
	invalid := []string{"", "empresa", ".com", "empresa..com", "-empresa.com"}
	for _, domain := range valid {
		if !IsValidEmailDomain(domain) {
			t.Errorf("IsValidEmailDomain(%q) = false, want true", domain)
		}
	}
	for _, domain := range invalid {
		if IsValidEmailDomain(domain) {
			t.Errorf("IsValidEmailDomain(%q) = true, want false", domain)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2025-01-15"); !ok {
		t.Error("IsValidDate(\"2025-01-15\") = false, want true")
	}
	for _, s := range []string{"15/01/2025", "2025-13-01", "not-a-date", ""} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}
