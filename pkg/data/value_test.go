package data

import "testing"

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"undefined", Undefined{}, false},
		{"null", Null{}, false},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"zero int", Int(0), false},
		{"nonzero int", Int(7), true},
		{"negative int", Int(-1), true},
		{"zero float", Float(0.0), false},
		{"nonzero float", Float(0.5), true},
		{"empty string", String(""), false},
		{"string", String("x"), true},
		{"whitespace string", String("   "), true},
		{"empty list", List{}, true},
		{"list", List{Int(1)}, true},
		{"empty map", Map{}, true},
		{"map", Map{"a": Int(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Truthy(); got != tt.want {
				t.Errorf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Undefined{}, "undefined"},
		{Null{}, "null"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Int(42), "42"},
		{Int(-3), "-3"},
		{Float(2.5), "2.5"},
		{String("hi"), "'hi'"},
		{List{Int(1), String("a")}, "[1, 'a']"},
		{Map{"k": Int(1)}, "{k: 1}"},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"nil", nil, ""},
		{"undefined", Undefined{}, ""},
		{"null", Null{}, ""},
		{"string is raw", String("hello"), "hello"},
		{"empty string", String(""), ""},
		{"int", Int(42), "42"},
		{"float", Float(1.5), "1.5"},
		{"bool", Bool(true), "true"},
		{"list", List{Int(1), Int(2)}, "[1, 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Stringify(tt.v); got != tt.want {
				t.Errorf("Stringify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEquals(t *testing.T) {
	list := List{Int(1)}
	m := Map{"a": Int(1)}

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"undefined/undefined", Undefined{}, Undefined{}, true},
		{"undefined/null", Undefined{}, Null{}, false},
		{"int/int equal", Int(3), Int(3), true},
		{"int/int unequal", Int(3), Int(4), false},
		{"int/float equal", Int(3), Float(3.0), true},
		{"float/int equal", Float(3.0), Int(3), true},
		{"int/string", Int(3), String("3"), false},
		{"string equal", String("a"), String("a"), true},
		{"bool unequal", Bool(true), Bool(false), false},
		{"same list instance", list, list, true},
		{"different list instances", List{Int(1)}, List{Int(1)}, false},
		{"same map instance", m, m, true},
		{"different map instances", Map{"a": Int(1)}, Map{"a": Int(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equals(tt.b); got != tt.want {
				t.Errorf("Equals() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListIndex(t *testing.T) {
	l := List{Int(10), Int(20)}

	if got := l.Index(1); !got.Equals(Int(20)) {
		t.Errorf("Index(1) = %v, want 20", got)
	}
	if _, ok := l.Index(5).(Undefined); !ok {
		t.Error("Index out of bounds should be Undefined")
	}
	if _, ok := l.Index(-1).(Undefined); !ok {
		t.Error("negative Index should be Undefined")
	}
}

func TestMapKey(t *testing.T) {
	m := Map{"a": String("x")}

	if got := m.Key("a"); !got.Equals(String("x")) {
		t.Errorf("Key(a) = %v, want 'x'", got)
	}
	if _, ok := m.Key("missing").(Undefined); !ok {
		t.Error("missing Key should be Undefined")
	}
}
