package service

import "catalog-api/internal/model"

// reconcileTags computes the minimal join-row delta that makes a product's
// tag set equal the requested set.
//
// toAdd holds the requested tag ids with no current join row, de-duplicated
// so a repeated id in the request cannot create a duplicate association.
// toRemove holds the ids of the join rows themselves (not the tag ids) whose
// tag is no longer requested, so exactly those rows are deleted.
//
// The two sets are disjoint at the row level: an association is never both
// inserted and removed in the same reconciliation.
func reconcileTags(current []model.ProductTag, requested []int) (toAdd []int, toRemove []int) {
	currentTagIDs := make(map[int]struct{}, len(current))
	for _, pt := range current {
		currentTagIDs[pt.TagID] = struct{}{}
	}

	requestedTagIDs := make(map[int]struct{}, len(requested))
	for _, tagID := range requested {
		if _, seen := requestedTagIDs[tagID]; seen {
			continue
		}
		requestedTagIDs[tagID] = struct{}{}
		if _, exists := currentTagIDs[tagID]; !exists {
			toAdd = append(toAdd, tagID)
		}
	}

	for _, pt := range current {
		if _, wanted := requestedTagIDs[pt.TagID]; !wanted {
			toRemove = append(toRemove, pt.ID)
		}
	}

	return toAdd, toRemove
}

// dedupeTagIDs returns the tag ids in request order with duplicates dropped.
func dedupeTagIDs(tagIDs []int) []int {
	seen := make(map[int]struct{}, len(tagIDs))
	unique := make([]int, 0, len(tagIDs))
	for _, id := range tagIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
