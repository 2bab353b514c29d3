package slider

import "context"

// Service is the slider surface exposed to the HTTP layer.
// Every call is executed on the page event loop by the implementation.
type Service interface {
	States(ctx context.Context) ([]State, error)
	Get(ctx context.Context, key string) (State, error)

	// Navigate is an arrow click: direction must be -1 or 1.
	Navigate(ctx context.Context, key string, direction int) (State, error)

	// ClickDot is a click on the 1-based dot index.
	ClickDot(ctx context.Context, key string, index int) (State, error)

	// Touch delivers one touch-start or touch-end at horizontal position x.
	Touch(ctx context.Context, key string, phase TouchPhase, x float64) (State, error)
}
