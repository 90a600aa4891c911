package assessment

// Benchmark holds the offline evaluation metrics of one classifier, in percent.
type Benchmark struct {
	Model           Model     `json:"model"`
	Algorithm       string    `json:"algorithm"`
	Accuracy        float64   `json:"accuracy"`
	Precision       float64   `json:"precision"`
	Recall          float64   `json:"recall"`
	F1Score         float64   `json:"f1_score"`
	Status          string    `json:"status"`
	ConfusionMatrix [2][2]int `json:"confusion_matrix"`
}

var Benchmarks = []Benchmark{
	{
		Model:           ModelLogistic,
		Algorithm:       "Logistic Regression",
		Accuracy:        93.3,
		Precision:       93.4,
		Recall:          93.3,
		F1Score:         93.3,
		Status:          "Ready",
		ConfusionMatrix: [2][2]int{{40, 3}, {2, 30}},
	},
	{
		Model:           ModelSVM,
		Algorithm:       "SVM",
		Accuracy:        96.0,
		Precision:       96.0,
		Recall:          96.0,
		F1Score:         96.0,
		Status:          "Ready",
		ConfusionMatrix: [2][2]int{{42, 1}, {2, 30}},
	},
	{
		Model:           ModelForest,
		Algorithm:       "Random Forest",
		Accuracy:        96.0,
		Precision:       96.0,
		Recall:          96.0,
		F1Score:         96.0,
		Status:          "Ready",
		ConfusionMatrix: [2][2]int{{42, 1}, {2, 30}},
	},
}

// BenchmarkFor looks up the metrics of m.
func BenchmarkFor(m Model) (Benchmark, bool) {
	for _, b := range Benchmarks {
		if b.Model == m {
			return b, true
		}
	}
	return Benchmark{}, false
}
