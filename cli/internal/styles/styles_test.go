package styles

import (
	"strings"
	"testing"
)

func TestTable_ContainsCells(t *testing.T) {
	out := Table([]string{"Airport", "Demand"}, [][]string{{"KJFK", "900"}, {"KLAX", "700"}})

	for _, want := range []string{"Airport", "Demand", "KJFK", "900", "KLAX", "700"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected table to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Index(out, "KJFK") > strings.Index(out, "KLAX") {
		t.Error("expected rows in input order")
	}
}

func TestStatus_KeepsText(t *testing.T) {
	for _, s := range []string{"ok", "computing", "failed"} {
		if !strings.Contains(Status(s), s) {
			t.Errorf("expected %q in rendered status", s)
		}
	}
}
