package godedupcleaner

import (
	"path/filepath"
	"reflect"
	"regexp"
	"sort"
	"testing"
	"time"
)

func defaultMatcher() *patternMatcher {
	return newPatternMatcher(regexp.MustCompile(DefaultNamePattern))
}

// TestDetectDuplicatesByName tests the name-based phase: files sharing a base
// identity group without any content hashing
func TestDetectDuplicatesByName(t *testing.T) {
	records := []FileRecord{
		{Path: "/cache/img.jpg", Size: 100},
		{Path: "/cache/img(1).jpg", Size: 100},
		{Path: "/cache/img(2).jpg", Size: 100},
		{Path: "/cache/other.png", Size: 50},
	}

	groups := detectDuplicates(records, defaultMatcher(), 2, Callbacks{})

	if len(groups) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(groups))
	}
	members, ok := groups["img"]
	if !ok {
		t.Fatalf("Expected group keyed by identity 'img', got keys %v", groupKeys(groups))
	}
	if len(members) != 3 {
		t.Errorf("Expected 3 members, got %d", len(members))
	}
}

// TestDetectDuplicatesByContent tests the content phase: files with unrelated
// names but identical bytes group by digest
func TestDetectDuplicatesByContent(t *testing.T) {
	tmpDir := t.TempDir()
	now := time.Now()

	same1 := filepath.Join(tmpDir, "alpha.dat")
	same2 := filepath.Join(tmpDir, "beta.dat")
	other := filepath.Join(tmpDir, "gamma.dat")
	writeTestFile(t, same1, "identical payload", now)
	writeTestFile(t, same2, "identical payload", now)
	writeTestFile(t, other, "different bytes!!", now) // same size, other content

	records, err := collectRecords(tmpDir, 2, Callbacks{})
	if err != nil {
		t.Fatal(err)
	}

	groups := detectDuplicates(records, defaultMatcher(), 2, Callbacks{})

	if len(groups) != 1 {
		t.Fatalf("Expected 1 group, got %d: %v", len(groups), groupKeys(groups))
	}
	for _, members := range groups {
		if len(members) != 2 {
			t.Fatalf("Expected 2 members, got %d", len(members))
		}
		paths := []string{members[0].Path, members[1].Path}
		sort.Strings(paths)
		if !reflect.DeepEqual(paths, []string{same1, same2}) {
			t.Errorf("Expected %v, got %v", []string{same1, same2}, paths)
		}
		for _, record := range members {
			if record.Digest == "" {
				t.Errorf("Expected digest on content-phase member %s", record.Path)
			}
		}
	}
}

// TestDetectDuplicatesPrunesSingletonSizes tests that a file with a unique
// size never reaches the hashing phase and forms no group
func TestDetectDuplicatesPrunesSingletonSizes(t *testing.T) {
	// Paths that do not exist on disk: if the size layer failed to prune,
	// hashing would report errors through OnError.
	records := []FileRecord{
		{Path: "/cache/a.bin", Size: 10},
		{Path: "/cache/b.bin", Size: 20},
		{Path: "/cache/c.bin", Size: 30},
	}

	var errorCount int
	callbacks := Callbacks{
		OnError: func(info ErrorInfo) { errorCount++ },
	}

	groups := detectDuplicates(records, defaultMatcher(), 2, callbacks)

	if len(groups) != 0 {
		t.Errorf("Expected no groups, got %d", len(groups))
	}
	if errorCount != 0 {
		t.Errorf("Expected no hashing attempts, got %d errors", errorCount)
	}
}

// TestDetectDuplicatesNamePhaseSkipsHashing tests that name-grouped files are
// never opened even when their content is unreadable
func TestDetectDuplicatesNamePhaseSkipsHashing(t *testing.T) {
	records := []FileRecord{
		{Path: "/missing/report.pdf", Size: 500},
		{Path: "/missing/report(1).pdf", Size: 500},
	}

	var errorCount int
	callbacks := Callbacks{
		OnError: func(info ErrorInfo) { errorCount++ },
	}

	groups := detectDuplicates(records, defaultMatcher(), 2, callbacks)

	if len(groups) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(groups))
	}
	if errorCount != 0 {
		t.Errorf("Name phase should not touch file content, got %d errors", errorCount)
	}
}

// TestDetectDuplicatesUnreadableCandidates tests that hash failures drop the
// file from consideration without failing the batch
func TestDetectDuplicatesUnreadableCandidates(t *testing.T) {
	tmpDir := t.TempDir()
	now := time.Now()

	readable1 := filepath.Join(tmpDir, "one.dat")
	readable2 := filepath.Join(tmpDir, "two.dat")
	writeTestFile(t, readable1, "same twelve b", now)
	writeTestFile(t, readable2, "same twelve b", now)

	records := []FileRecord{
		{Path: readable1, Size: int64(len("same twelve b"))},
		{Path: readable2, Size: int64(len("same twelve b"))},
		{Path: filepath.Join(tmpDir, "ghost.dat"), Size: int64(len("same twelve b"))},
	}

	var errorCount int
	callbacks := Callbacks{
		OnError: func(info ErrorInfo) {
			if info.Type == ErrorTypeHash {
				errorCount++
			}
		},
	}

	groups := detectDuplicates(records, defaultMatcher(), 2, callbacks)

	if errorCount != 1 {
		t.Errorf("Expected 1 hash error, got %d", errorCount)
	}
	if len(groups) != 1 {
		t.Fatalf("Expected 1 group from the readable pair, got %d", len(groups))
	}
	for _, members := range groups {
		if len(members) != 2 {
			t.Errorf("Expected 2 members, got %d", len(members))
		}
	}
}

// TestDetectDuplicatesDeterministic tests that repeated detection over the
// same records yields the same grouping
func TestDetectDuplicatesDeterministic(t *testing.T) {
	tmpDir := t.TempDir()
	now := time.Now()

	writeTestFile(t, filepath.Join(tmpDir, "doc.txt"), "text", now)
	writeTestFile(t, filepath.Join(tmpDir, "doc(1).txt"), "text", now)
	writeTestFile(t, filepath.Join(tmpDir, "blob_a.bin"), "blob-content", now)
	writeTestFile(t, filepath.Join(tmpDir, "blob_b.bin"), "blob-content", now)

	records, err := collectRecords(tmpDir, 2, Callbacks{})
	if err != nil {
		t.Fatal(err)
	}

	first := detectDuplicates(records, defaultMatcher(), 2, Callbacks{})
	second := detectDuplicates(records, defaultMatcher(), 2, Callbacks{})

	if !reflect.DeepEqual(groupKeys(first), groupKeys(second)) {
		t.Errorf("Group keys differ between runs: %v vs %v", groupKeys(first), groupKeys(second))
	}
	for key, members := range first {
		if len(members) != len(second[key]) {
			t.Errorf("Group %s size differs between runs: %d vs %d", key, len(members), len(second[key]))
		}
	}
}

func groupKeys(groups DuplicateGroups) []string {
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
