package preprocessing_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/robbiepope/MachineLearning-Fairness-vs-Accuracy/preprocessing"
)

const epsilon = 1e-10 // Tolerance for floating-point comparisons

func TestStandardScaler_BasicFunctionality(t *testing.T) {
	// Test data: 3 samples, 2 features
	// Feature 1: [1, 2, 3] -> mean=2, std=0.816
	// Feature 2: [4, 5, 6] -> mean=5, std=0.816
	data := []float64{
		1.0, 4.0,
		2.0, 5.0,
		3.0, 6.0,
	}
	X := mat.NewDense(3, 2, data)

	scaler := preprocessing.NewStandardScaler()

	if err := scaler.Fit(X); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	expectedMean := []float64{2.0, 5.0}
	expectedStd := []float64{0.816496580927726, 0.816496580927726}

	for i, expected := range expectedMean {
		if math.Abs(scaler.Mean[i]-expected) > epsilon {
			t.Errorf("Mean[%d]: expected %f, got %f", i, expected, scaler.Mean[i])
		}
	}
	for i, expected := range expectedStd {
		if math.Abs(scaler.Scale[i]-expected) > epsilon {
			t.Errorf("Scale[%d]: expected %f, got %f", i, expected, scaler.Scale[i])
		}
	}

	XScaled, err := scaler.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	expectedScaled := []float64{
		-1.224744871391589, -1.224744871391589,
		0.0, 0.0,
		1.224744871391589, 1.224744871391589,
	}
	r, c := XScaled.Dims()
	if r != 3 || c != 2 {
		t.Fatalf("Expected 3x2 matrix, got %dx%d", r, c)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			actual := XScaled.At(i, j)
			expected := expectedScaled[i*c+j]
			if math.Abs(actual-expected) > epsilon {
				t.Errorf("XScaled[%d][%d]: expected %f, got %f", i, j, expected, actual)
			}
		}
	}
}

func TestStandardScaler_FitTransform(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		10.0, 100.0,
		20.0, 200.0,
		30.0, 300.0,
	})

	scaler := preprocessing.NewStandardScaler()
	XScaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	scaler2 := preprocessing.NewStandardScaler()
	if err := scaler2.Fit(X); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	XScaled2, err := scaler2.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	if !mat.EqualApprox(XScaled, XScaled2, epsilon) {
		t.Error("FitTransform differs from Fit + Transform")
	}
}

func TestStandardScaler_ConstantFeature(t *testing.T) {
	// A constant column has zero variance; values should come out centered
	// at zero rather than dividing by zero.
	X := mat.NewDense(3, 1, []float64{7.0, 7.0, 7.0})

	scaler := preprocessing.NewStandardScaler()
	XScaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}
	if scaler.Scale[0] != 1.0 {
		t.Errorf("Scale[0] = %v, want 1.0 for constant feature", scaler.Scale[0])
	}
	for i := 0; i < 3; i++ {
		if XScaled.At(i, 0) != 0.0 {
			t.Errorf("XScaled[%d][0] = %v, want 0", i, XScaled.At(i, 0))
		}
	}
}

func TestStandardScaler_NotFitted(t *testing.T) {
	scaler := preprocessing.NewStandardScaler()
	if _, err := scaler.Transform(mat.NewDense(1, 1, []float64{1})); err == nil {
		t.Error("Transform before Fit should fail")
	}
}

func TestStandardScaler_DimensionMismatch(t *testing.T) {
	scaler := preprocessing.NewStandardScaler()
	if err := scaler.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if _, err := scaler.Transform(mat.NewDense(2, 3, nil)); err == nil {
		t.Error("Transform with wrong column count should fail")
	}
}

func TestStandardScaler_EmptyData(t *testing.T) {
	scaler := preprocessing.NewStandardScaler()
	if err := scaler.Fit(&mat.Dense{}); err == nil {
		t.Error("Fit on empty data should fail")
	}
}

func TestStandardScaler_String(t *testing.T) {
	scaler := preprocessing.NewStandardScaler()
	if got := scaler.String(); got != "StandardScaler()" {
		t.Errorf("String() = %q", got)
	}
	if err := scaler.Fit(mat.NewDense(2, 3, nil)); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if got := scaler.String(); got != "StandardScaler(n_features=3)" {
		t.Errorf("String() = %q", got)
	}
}
