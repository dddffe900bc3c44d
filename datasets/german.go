package datasets

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/dataset"
	fairmlErrors "github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/pkg/errors"
)

// Protected attribute names accepted by the loaders.
const (
	ProtectedSex  = "sex"
	ProtectedAge  = "age"
	ProtectedRace = "race"
)

// germanAgeThreshold splits the German credit age attribute into the
// conventional privileged (older than 25) and unprivileged groups.
const germanAgeThreshold = 25

// LoadGermanCredit parses the UCI Statlog German credit file (german.data,
// space-separated, 20 attributes plus outcome) into a BinaryLabelDataset.
//
// The feature layout is: column 0 the requested primary protected attribute,
// column 1 the other one, then the numeric attributes (duration, credit
// amount, installment rate, residence since, age, existing credits,
// dependents). Protected encodings: sex 1 = male, age 1 = older than 25.
// Outcome 1 (good credit) maps to the favorable label 1, outcome 2 to 0.
func LoadGermanCredit(path, protected string) (*dataset.BinaryLabelDataset, error) {
	if protected != ProtectedSex && protected != ProtectedAge {
		return nil, fairmlErrors.NewValidationError("protected", "must be sex or age for German credit", protected)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fairmlErrors.Wrap(err, "open german credit data")
	}
	defer func() { _ = f.Close() }()

	var rows [][]float64
	var labels []float64

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 21 {
			return nil, fairmlErrors.NewValueError("LoadGermanCredit",
				"expected 21 fields per record, got "+strconv.Itoa(len(fields)))
		}

		age, err := strconv.ParseFloat(fields[12], 64)
		if err != nil {
			return nil, fairmlErrors.Wrap(err, "parse age")
		}
		sex := germanSex(fields[8])
		agebin := 0.0
		if age > germanAgeThreshold {
			agebin = 1.0
		}

		numeric := make([]float64, 0, 7)
		for _, idx := range []int{1, 4, 7, 10, 12, 15, 17} {
			v, err := strconv.ParseFloat(fields[idx], 64)
			if err != nil {
				return nil, fairmlErrors.Wrap(err, "parse numeric attribute")
			}
			numeric = append(numeric, v)
		}

		row := make([]float64, 0, 2+len(numeric))
		if protected == ProtectedSex {
			row = append(row, sex, agebin)
		} else {
			row = append(row, agebin, sex)
		}
		row = append(row, numeric...)
		rows = append(rows, row)

		// 1 = good credit (favorable), 2 = bad credit.
		switch fields[20] {
		case "1":
			labels = append(labels, dataset.FavorableLabel)
		case "2":
			labels = append(labels, dataset.UnfavorableLabel)
		default:
			return nil, fairmlErrors.NewValueError("LoadGermanCredit", "unknown outcome "+fields[20])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fairmlErrors.Wrap(err, "read german credit data")
	}
	if len(rows) == 0 {
		return nil, fairmlErrors.NewModelError("LoadGermanCredit", "no records", fairmlErrors.ErrEmptyData)
	}

	return dataset.New(denseFromRows(rows), labels, dataset.WithProtectedColumns(0, 1))
}

// germanSex maps the personal-status-and-sex attribute (A91..A95) to
// 1 = male, 0 = female.
func germanSex(code string) float64 {
	switch code {
	case "A92", "A95":
		return 0.0
	default:
		return 1.0
	}
}

func denseFromRows(rows [][]float64) *mat.Dense {
	x := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		x.SetRow(i, row)
	}
	return x
}
