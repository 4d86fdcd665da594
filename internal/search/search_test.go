package search

import "testing"

func TestMatchNames(t *testing.T) {
	names := []string{"docs", "main.go", "README.md", "domain.txt"}

	matches := MatchNames("doc", names)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1: %v", len(matches), matches)
	}
	if matches[0].Index != 0 {
		t.Errorf("match index = %d, want 0", matches[0].Index)
	}
	if len(matches[0].MatchedIndexes) != 3 {
		t.Errorf("matched %d positions, want 3", len(matches[0].MatchedIndexes))
	}
}

func TestMatchNamesRanksExactRunFirst(t *testing.T) {
	names := []string{"domain.txt", "main.go"}

	matches := MatchNames("main", names)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].Index != 1 {
		t.Errorf("best match index = %d, want 1 (main.go)", matches[0].Index)
	}
}

func TestMatchNamesEmptyQuery(t *testing.T) {
	if got := MatchNames("", []string{"a", "b"}); got != nil {
		t.Errorf("empty query returned %v", got)
	}
}

func TestMatchNamesNoHit(t *testing.T) {
	if got := MatchNames("zzz", []string{"docs", "main.go"}); len(got) != 0 {
		t.Errorf("impossible query returned %v", got)
	}
}
