package robot

import (
	"context"
	"fmt"
	"time"
)

// Step is one pose in a scripted motion.
type Step struct {
	// Degrees holds one angle per servo (NumServos entries).
	Degrees []float64
	// Hold is how long to rest on this pose before the next step. The
	// transport's inter-command gap applies regardless.
	Hold time.Duration
}

// Play runs the steps in order, checking for cancellation between
// commands. A canceled context stops the motion where it is; the robot
// holds its last commanded pose.
func (c *Controller) Play(ctx context.Context, steps []Step) error {
	for i, s := range steps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := c.SendAll(ctx, s.Degrees); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}

		if s.Hold > 0 {
			t := time.NewTimer(s.Hold)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}
	}
	return nil
}

// Sweep builds a sequence moving the whole fleet together from one angle to
// another in fixed strides. The stride sign is deduced from the direction.
func Sweep(from, to, stride float64, hold time.Duration) []Step {
	if stride <= 0 {
		stride = 10
	}
	if to < from {
		stride = -stride
	}

	var steps []Step
	for deg := from; (stride > 0 && deg <= to) || (stride < 0 && deg >= to); deg += stride {
		pose := make([]float64, NumServos)
		for i := range pose {
			pose[i] = deg
		}
		steps = append(steps, Step{Degrees: pose, Hold: hold})
	}
	return steps
}
