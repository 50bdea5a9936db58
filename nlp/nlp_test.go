package nlp

import (
	"testing"

	"cloud.google.com/go/language/apiv2/languagepb"
)

func TestLocationNames(t *testing.T) {
	t.Parallel()

	entities := []*languagepb.Entity{
		{Name: "pain", Type: languagepb.Entity_OTHER},
		{Name: "Ikorodu", Type: languagepb.Entity_LOCATION},
		{Name: "12 Allen Avenue", Type: languagepb.Entity_ADDRESS},
		{Name: "ikorodu", Type: languagepb.Entity_LOCATION},
		{Name: "Mama Ngozi", Type: languagepb.Entity_PERSON},
		{Name: "  ", Type: languagepb.Entity_LOCATION},
	}

	got := locationNames(entities)
	want := []string{"Ikorodu", "12 Allen Avenue"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestLocationNamesEmpty(t *testing.T) {
	t.Parallel()

	if got := locationNames(nil); len(got) != 0 {
		t.Fatalf("expected no names, got %v", got)
	}
}
