package props

import "context"

// Transform mutates a property bag in place, returning an error if the bag
// is missing a precondition the transform requires. Transforms run in the
// order supplied to ApplyTransform; a failing transform stops the chain.
type Transform func(ctx context.Context, bag Bag) error

// ApplyTransform runs each transform against bag in sequence, stopping at
// the first error.
func ApplyTransform(ctx context.Context, bag Bag, transforms ...Transform) error {
	for _, t := range transforms {
		if err := t(ctx, bag); err != nil {
			return err
		}
	}
	return nil
}
