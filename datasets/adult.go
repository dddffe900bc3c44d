package datasets

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/dataset"
	fairmlErrors "github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/errors"
)

// LoadAdultIncome parses the UCI Adult census file (adult.data /
// adult.test, comma-separated, 14 attributes plus income) into a
// BinaryLabelDataset.
//
// The feature layout is: column 0 the requested primary protected attribute,
// column 1 the other one, then the numeric attributes (age, education-num,
// capital-gain, capital-loss, hours-per-week). Protected encodings:
// sex 1 = Male, race 1 = White. Income ">50K" maps to the favorable
// label 1. Records with missing ("?") values are skipped, as are the
// header/comment lines present in adult.test.
func LoadAdultIncome(path, protected string) (*dataset.BinaryLabelDataset, error) {
	if protected != ProtectedSex && protected != ProtectedRace {
		return nil, fairmlErrors.NewValidationError("protected", "must be sex or race for Adult income", protected)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fairmlErrors.Wrap(err, "open adult income data")
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var rows [][]float64
	var labels []float64

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fairmlErrors.Wrap(err, "read adult income data")
	}
	for _, rec := range records {
		if len(rec) != 15 {
			continue // header, trailer or blank line
		}
		if hasMissing(rec) {
			continue
		}

		sex := 0.0
		if rec[9] == "Male" {
			sex = 1.0
		}
		race := 0.0
		if rec[8] == "White" {
			race = 1.0
		}

		numeric := make([]float64, 0, 5)
		ok := true
		for _, idx := range []int{0, 4, 10, 11, 12} {
			v, err := strconv.ParseFloat(rec[idx], 64)
			if err != nil {
				ok = false
				break
			}
			numeric = append(numeric, v)
		}
		if !ok {
			continue
		}

		row := make([]float64, 0, 2+len(numeric))
		if protected == ProtectedSex {
			row = append(row, sex, race)
		} else {
			row = append(row, race, sex)
		}
		row = append(row, numeric...)
		rows = append(rows, row)

		// adult.test suffixes income with a period.
		income := strings.TrimSuffix(rec[14], ".")
		if income == ">50K" {
			labels = append(labels, dataset.FavorableLabel)
		} else {
			labels = append(labels, dataset.UnfavorableLabel)
		}
	}
	if len(rows) == 0 {
		return nil, fairmlErrors.NewModelError("LoadAdultIncome", "no usable records", fairmlErrors.ErrEmptyData)
	}

	return dataset.New(denseFromRows(rows), labels, dataset.WithProtectedColumns(0, 1))
}

func hasMissing(rec []string) bool {
	for _, field := range rec {
		if field == "?" {
			return true
		}
	}
	return false
}
