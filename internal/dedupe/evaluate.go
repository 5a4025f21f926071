package dedupe

import (
	"sort"

	"github.com/fundclean/fundclean/internal/model"
)

// Evaluate classifies every section of one document run against the stored
// history for the fund and persists the quarter's fresh key map. The new
// map fully replaces any prior map for the exact same quarter.
//
// Comparison priority per key: an entry already stored for the same
// quarter (a re-run) wins over the most recent other quarter; no entry in
// either means the section is new.
func (s *Store) Evaluate(fundID, quarter string, sections []model.Section) ([]model.SectionHashResult, error) {
	index, err := s.Load()
	if err != nil {
		return nil, err
	}

	fundEntry := index[fundID]
	if fundEntry == nil {
		fundEntry = map[string]map[string]SectionEntry{}
		index[fundID] = fundEntry
	}

	existingCurrent := fundEntry[quarter]
	_, previousMap := previousQuarter(fundEntry, quarter)

	results := make([]model.SectionHashResult, 0, len(sections))
	newCurrent := make(map[string]SectionEntry, len(sections))

	for idx, section := range sections {
		key := section.Key(idx)
		currentHash := Hash(section.Text())

		result := model.SectionHashResult{
			Key:         key,
			Name:        section.Name,
			CurrentHash: currentHash,
			Status:      model.StatusNew,
		}

		if entry, ok := existingCurrent[key]; ok {
			result.PreviousHash = entry.Hash
			result.Status = compare(entry.Hash, currentHash)
		} else if entry, ok := previousMap[key]; ok {
			result.PreviousHash = entry.Hash
			result.Status = compare(entry.Hash, currentHash)
		}

		newCurrent[key] = SectionEntry{Hash: currentHash, Section: section.Name}
		results = append(results, result)
	}

	fundEntry[quarter] = newCurrent
	if err := s.Save(index); err != nil {
		return nil, err
	}
	return results, nil
}

func compare(previousHash, currentHash string) string {
	if previousHash == currentHash {
		return model.StatusReuse
	}
	return model.StatusUpdated
}

// previousQuarter finds the most recent quarter other than the target,
// relying on the lexicographic order of fixed-width YYYYQn labels.
func previousQuarter(fundEntry map[string]map[string]SectionEntry, quarter string) (string, map[string]SectionEntry) {
	var available []string
	for q := range fundEntry {
		if q != quarter {
			available = append(available, q)
		}
	}
	if len(available) == 0 {
		return "", nil
	}
	sort.Strings(available)
	prev := available[len(available)-1]
	return prev, fundEntry[prev]
}
