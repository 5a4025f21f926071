package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Registry file names under the structured-output directory.
const (
	CompaniesFileName   = "top_holdings_companies.csv"
	FixedIncomeFileName = "top_holdings_fixed_income.csv"
)

// AppendCompanies merges the given equity company names into the
// cumulative registry. Names are deduplicated case-insensitively, kept in
// case-insensitive alphabetical order, and the file is rewritten only when
// the set actually grew. The quarter column records when a name was first
// seen; existing rows keep theirs.
func AppendCompanies(names []string, quarter, baseDir string) error {
	return appendRegistry(filepath.Join(baseDir, CompaniesFileName), "company_name", names, quarter)
}

// AppendFixedIncome is AppendCompanies for fixed-income security names.
func AppendFixedIncome(names []string, quarter, baseDir string) error {
	return appendRegistry(filepath.Join(baseDir, FixedIncomeFileName), "holding_name", names, quarter)
}

type registryRow struct {
	name    string
	quarter string
}

func appendRegistry(path, nameHeader string, names []string, quarter string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create structured dir: %w", err)
	}

	existing, err := readRegistry(path)
	if err != nil {
		return err
	}

	updated := false
	for _, name := range names {
		normalized := strings.TrimSpace(name)
		if normalized == "" {
			continue
		}
		key := strings.ToLower(normalized)
		if _, ok := existing[key]; ok {
			continue
		}
		existing[key] = registryRow{name: normalized, quarter: quarter}
		updated = true
	}
	if !updated {
		return nil
	}

	rows := make([]registryRow, 0, len(existing))
	for _, row := range existing {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].name) < strings.ToLower(rows[j].name)
	})

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create registry %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{nameHeader, "first_seen_quarter"}); err != nil {
		return fmt.Errorf("write registry header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write([]string{row.name, row.quarter}); err != nil {
			return fmt.Errorf("write registry row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush registry: %w", err)
	}
	return nil
}

func readRegistry(path string) (map[string]registryRow, error) {
	existing := map[string]registryRow{}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open registry %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read registry %s: %w", path, err)
	}

	for i, record := range records {
		if i == 0 || len(record) == 0 {
			continue // header
		}
		name := strings.TrimSpace(record[0])
		if name == "" {
			continue
		}
		quarter := ""
		if len(record) > 1 {
			quarter = record[1]
		}
		existing[strings.ToLower(name)] = registryRow{name: name, quarter: quarter}
	}
	return existing, nil
}
