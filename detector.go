package godedupcleaner

// detectDuplicates builds duplicate groups from the collected records using
// a two-phase layered strategy. Hashing every file unconditionally is too
// slow, so content digests are computed only where the cheap layers leave
// ambiguity:
//
//   - Phase 1 groups records by base identity. Groups with two or more
//     members are accepted directly, no hashing, and leave consideration.
//   - Phase 2 regroups the remaining records by exact byte size; only sizes
//     shared by two or more records are hashed. Digest groups with two or
//     more members become duplicate groups.
//
// The result is the union of both phases; every group has at least two
// members.
func detectDuplicates(records []FileRecord, matcher *patternMatcher, workers int, callbacks Callbacks) DuplicateGroups {
	byIdentity := make(map[string][]FileRecord)
	for _, record := range records {
		key := matcher.baseIdentity(record.Name())
		byIdentity[key] = append(byIdentity[key], record)
	}

	groups := make(DuplicateGroups)
	var rest []FileRecord
	for key, members := range byIdentity {
		if len(members) >= 2 {
			groups[key] = members
		} else {
			rest = append(rest, members...)
		}
	}

	// Size pre-grouping prunes singleton sizes before any file is opened.
	bySize := make(map[int64][]FileRecord)
	for _, record := range rest {
		bySize[record.Size] = append(bySize[record.Size], record)
	}

	var candidates []FileRecord
	for _, members := range bySize {
		if len(members) >= 2 {
			candidates = append(candidates, members...)
		}
	}
	if len(candidates) == 0 {
		return groups
	}

	byDigest := make(map[string][]FileRecord)
	for _, record := range hashRecords(candidates, workers, callbacks) {
		byDigest[record.Digest] = append(byDigest[record.Digest], record)
	}
	for digest, members := range byDigest {
		if len(members) >= 2 {
			groups[digest] = members
		}
	}

	return groups
}
