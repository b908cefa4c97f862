package typing

import "testing"

func TestAssignable(t *testing.T) {
	tests := []struct {
		dst, src Type
		want     bool
	}{
		{Int, Int, true},
		{Float, Int, true},
		{Float, Float, true},
		{Int, Float, false},
		{String, String, true},
		{String, Int, false},
		{Int, String, false},
		{Int, Boolean, false},
		{Int, Void, false},
		{Void, Void, false},
		{Int, Error, true},
		{Error, String, true},
	}

	for _, tt := range tests {
		if got := Assignable(tt.dst, tt.src); got != tt.want {
			t.Errorf("Assignable(%s, %s) = %v, want %v", tt.dst, tt.src, got, tt.want)
		}
	}
}

func TestBinary(t *testing.T) {
	tests := []struct {
		op       string
		lhs, rhs Type
		want     Type
		wantOk   bool
	}{
		{"+", Int, Int, Int, true},
		{"+", Int, Float, Float, true},
		{"*", Float, Int, Float, true},
		{"%", Int, Int, Int, true},
		{"+", String, String, String, true},
		{"+", String, Int, String, true},
		{"+", String, Float, String, true},
		{"+", Int, String, Error, false},
		{"-", String, String, Error, false},
		{"+", Boolean, Int, Error, false},
		{"<", Int, Float, Boolean, true},
		{"==", String, String, Boolean, true},
		{"!=", String, String, Boolean, true},
		{"<", String, String, Error, false},
		{"==", String, Int, Error, false},
		{"&&", Boolean, Int, Boolean, true},
		{"||", Float, Int, Boolean, true},
		{"&&", String, Int, Error, false},
		{"+", Error, String, Error, true},
		{"<", Int, Error, Error, true},
		{"&&", Error, Void, Error, true},
		{"^", Int, Int, Error, false},
	}

	for _, tt := range tests {
		got, ok := Binary(tt.op, tt.lhs, tt.rhs)
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("Binary(%q, %s, %s) = (%s, %v), want (%s, %v)", tt.op, tt.lhs, tt.rhs, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestUnary(t *testing.T) {
	tests := []struct {
		op      string
		operand Type
		want    Type
		wantOk  bool
	}{
		{"-", Int, Int, true},
		{"-", Float, Float, true},
		{"-", String, Error, false},
		{"-", Boolean, Error, false},
		{"!", Boolean, Boolean, true},
		{"!", Int, Boolean, true},
		{"!", String, Error, false},
		{"!", Error, Error, true},
	}

	for _, tt := range tests {
		got, ok := Unary(tt.op, tt.operand)
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("Unary(%q, %s) = (%s, %v), want (%s, %v)", tt.op, tt.operand, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name   string
		want   Type
		wantOk bool
	}{
		{"int", Int, true},
		{"float", Float, true},
		{"real", Float, true},
		{"string", String, true},
		{"void", Void, true},
		{"bool", Unresolved, false},
	}

	for _, tt := range tests {
		got, ok := FromName(tt.name)
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("FromName(%q) = (%s, %v), want (%s, %v)", tt.name, got, ok, tt.want, tt.wantOk)
		}
	}
}
