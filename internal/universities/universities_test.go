package universities

import "testing"

func TestMembership(t *testing.T) {
	tests := []struct {
		name        string
		institution string
		qs          bool
		is985       bool
		is211       bool
	}{
		{name: "tsinghua chinese", institution: "清华大学", qs: true, is985: true, is211: true},
		{name: "peking with department", institution: "北京大学（医学部）", qs: true, is985: true, is211: true},
		{name: "211 only", institution: "东北大学", is211: true},
		{name: "suffix stripped input inside canonical", institution: "南开", is985: true, is211: true},
		{name: "english canonical", institution: "Stanford", qs: true},
		{name: "case insensitive", institution: "imperial college london", qs: true},
		{name: "alias whole word", institution: "MIT", qs: true},
		{name: "full width alias", institution: "ＮＵＳ", qs: true},
		{name: "alias inside word", institution: "Smith College"},
		{name: "unknown", institution: "Unknown Institute of Cooking"},
		{name: "empty", institution: "   "},
		{name: "generic english word", institution: "University"},
		{name: "generic english phrase", institution: "The University of Technology"},
		{name: "generic chinese word", institution: "中国"},
		{name: "generic chinese with suffix", institution: "中国大学"},
		{name: "generic city with suffix", institution: "北京学院"},
		{name: "specific word next to generic", institution: "Stanford University", qs: true},
		{name: "suffix stripped keeps specific part", institution: "中国人民", is985: true, is211: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsQSTop20(tt.institution); got != tt.qs {
				t.Fatalf("IsQSTop20(%q) = %v, want %v", tt.institution, got, tt.qs)
			}
			if got := Is985(tt.institution); got != tt.is985 {
				t.Fatalf("Is985(%q) = %v, want %v", tt.institution, got, tt.is985)
			}
			if got := Is211(tt.institution); got != tt.is211 {
				t.Fatalf("Is211(%q) = %v, want %v", tt.institution, got, tt.is211)
			}
		})
	}
}

func TestChineseAlias(t *testing.T) {
	if !IsQSTop20("北大") || !IsQSTop20("清华") {
		t.Fatal("expected short chinese aliases to match the QS table")
	}
}

func TestNewTableDeduplicates(t *testing.T) {
	table := NewTable("test", "Foo University", "foo university", " ", "FOO   University")
	if table.Len() != 1 {
		t.Fatalf("expected one entry, got %d", table.Len())
	}
	if table.Name() != "test" {
		t.Fatalf("unexpected name: %s", table.Name())
	}
}
