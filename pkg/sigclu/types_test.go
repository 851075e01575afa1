package sigclu

import (
	"errors"
	"testing"
)

func TestNodeSet_Operations(t *testing.T) {
	abc := set("ABC")
	bc := set("BC")

	if abc.Len() != 3 {
		t.Errorf("Len = %d, want 3", abc.Len())
	}
	if !abc.Contains("A") || abc.Contains("D") {
		t.Error("Contains returned wrong membership")
	}
	if !bc.IsSubsetOf(abc) || abc.IsSubsetOf(bc) {
		t.Error("IsSubsetOf returned wrong result")
	}
	if got := abc.Difference(bc); !got.Equal(set("A")) {
		t.Errorf("Difference = %v, want {A}", got)
	}
	if got := abc.DifferenceLen(set("AD")); got != 2 {
		t.Errorf("DifferenceLen = %d, want 2", got)
	}
	if got := set("CAB").String(); got != "{A B C}" {
		t.Errorf("String = %q, want {A B C}", got)
	}
}

func TestNodeSet_CloneIsIndependent(t *testing.T) {
	orig := set("AB")
	clone := orig.Clone()
	clone.Add("C")

	if orig.Contains("C") {
		t.Error("mutating the clone changed the original")
	}
}

func TestPartition_Validate(t *testing.T) {
	tests := []struct {
		name     string
		p        Partition
		universe NodeSet
		wantErr  bool
	}{
		{"disjoint", part("AB", "C"), nil, false},
		{"overlapping", part("AB", "BC"), nil, true},
		{"inside universe", part("AB", "C"), set("ABCD"), false},
		{"outside universe", part("AB", "E"), set("ABCD"), true},
		{"empty", Partition{}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate(tt.universe)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInputInconsistency) {
				t.Errorf("error %v does not wrap ErrInputInconsistency", err)
			}
		})
	}
}

func TestPartition_ValidateReportsModule(t *testing.T) {
	err := part("AB", "C", "BD").Validate(nil)

	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if e.Module != 2 {
		t.Errorf("Module = %d, want 2", e.Module)
	}
}

func TestEnsemble_Validate(t *testing.T) {
	if err := (Ensemble{}).Validate(); !IsConfiguration(err) {
		t.Errorf("empty ensemble: got %v, want ErrConfiguration", err)
	}
	if err := (Ensemble{part("AB"), part("A", "AB")}).Validate(); !IsInputInconsistency(err) {
		t.Errorf("overlapping replicate: got %v, want ErrInputInconsistency", err)
	}
	if err := scenarioEnsemble().Validate(); err != nil {
		t.Errorf("valid ensemble: unexpected error %v", err)
	}
}

func TestEnsemble_Nodes(t *testing.T) {
	e := Ensemble{part("AB"), part("C", "D")}
	if got := e.Nodes(); !got.Equal(set("ABCD")) {
		t.Errorf("Nodes = %v, want {A B C D}", got)
	}
}

func TestSortCores(t *testing.T) {
	cores := CoreSet{set("XY"), set("DEF"), set("AB")}
	sortCores(cores)

	if got := coresString(cores); got != "{D E F},{A B},{X Y}" {
		t.Errorf("sorted cores = %s", got)
	}
}

func TestError_Format(t *testing.T) {
	err := newError("Run", 3, ErrInputInconsistency, "node %q repeated", "A")
	if got := err.Error(); got != `Run module 3: inconsistent input: node "A" repeated` {
		t.Errorf("Error() = %q", got)
	}

	err = newError("New", -1, ErrConfiguration, "bad")
	if got := err.Error(); got != "New: invalid configuration: bad" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrConfiguration) || errors.Is(err, ErrInputInconsistency) {
		t.Error("errors.Is does not follow Kind")
	}
}
