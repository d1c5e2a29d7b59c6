package models

import (
	"reflect"
	"testing"
)

func TestCourseList(t *testing.T) {
	tests := []struct {
		name    string
		courses string
		want    []string
	}{
		{
			name:    "newline delimited",
			courses: "HTML & CSS Fundamentals\nJavaScript Basics\nReact Essentials",
			want:    []string{"HTML & CSS Fundamentals", "JavaScript Basics", "React Essentials"},
		},
		{
			name:    "comma delimited",
			courses: "Node.js, MongoDB, Deployment",
			want:    []string{"Node.js", "MongoDB", "Deployment"},
		},
		{
			name:    "mixed delimiters with blanks",
			courses: "A\n\nB,  ,C\n",
			want:    []string{"A", "B", "C"},
		},
		{
			name:    "empty",
			courses: "",
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg := Package{Courses: tt.courses}
			got := pkg.CourseList()
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("CourseList() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProofIsPending(t *testing.T) {
	proof := PaymentProof{Status: ProofStatusPending}
	if !proof.IsPending() {
		t.Fatal("pending proof reported as not pending")
	}
	for _, status := range []string{ProofStatusApproved, ProofStatusRejected} {
		proof.Status = status
		if proof.IsPending() {
			t.Fatalf("%s proof reported as pending", status)
		}
	}
}
