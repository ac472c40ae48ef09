package classifier

import "context"

// Model scores one tokenized sequence and returns one score per label index.
type Model interface {
	Predict(ctx context.Context, input []int32) ([]float32, error)
}

// FuncModel adapts a function to the Model interface.
type FuncModel func(ctx context.Context, input []int32) ([]float32, error)

// Predict implements Model.
func (f FuncModel) Predict(ctx context.Context, input []int32) ([]float32, error) {
	return f(ctx, input)
}
