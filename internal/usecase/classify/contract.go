package classify

// Model assigns a category label to text.
type Model interface {
	Predict(text string) string
	Classes() []string
}
