package ingest

import (
	"strings"
	"testing"
)

func TestCSVFixedDurationHeader(t *testing.T) {
	body := "id,name,Toan(60),Ly(90)\n1,Alice,x,\n2,Bob,,x\n"
	students, err := CSV(strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("expected 2 students, got %d", len(students))
	}
	if students[0].Subjects["Toan"] != 60 {
		t.Fatalf("expected Alice enrolled in Toan for 60 minutes, got %+v", students[0].Subjects)
	}
	if _, ok := students[0].Subjects["Ly"]; ok {
		t.Fatalf("expected Alice not enrolled in Ly")
	}
	if students[1].Subjects["Ly"] != 90 {
		t.Fatalf("expected Bob enrolled in Ly for 90 minutes, got %+v", students[1].Subjects)
	}
}

func TestCSVDurationInCellHeader(t *testing.T) {
	body := "id,name,Toan\n1,Alice,45\n2,Bob,0\n"
	students, err := CSV(strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if students[0].Subjects["Toan"] != 45 {
		t.Fatalf("expected duration 45, got %+v", students[0].Subjects)
	}
	if _, ok := students[1].Subjects["Toan"]; ok {
		t.Fatalf("a zero duration cell should not enroll the student")
	}
}
