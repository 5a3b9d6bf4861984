// Implements the RepairQueue, which holds all failed components waiting for
// a free repairman. Components are enqueued in failure order.

package sim

import (
	"fmt"
	"strings"
)

// RepairQueue represents a FIFO queue of failed component indices awaiting
// repair. At most s components are under repair at once; every other failed
// component waits here in arrival order.
type RepairQueue struct {
	queue []int // FIFO queue of component indices
}

// Enqueue adds a component to the back of the repair queue.
func (rq *RepairQueue) Enqueue(id int) {
	rq.queue = append(rq.queue, id)
}

func (rq *RepairQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, id := range rq.queue {
		sb.WriteString(fmt.Sprint(id))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of components waiting in the queue.
func (rq *RepairQueue) Len() int {
	return len(rq.queue)
}

// Peek returns the component at the front of the queue without removing it.
// Returns -1 if the queue is empty.
func (rq *RepairQueue) Peek() int {
	if len(rq.queue) == 0 {
		return -1
	}
	return rq.queue[0]
}

// Dequeue removes and returns the component at the front of the queue.
// This is called when a repairman frees up and takes the oldest failure.
// Returns -1 if the queue is empty.
func (rq *RepairQueue) Dequeue() int {
	if len(rq.queue) == 0 {
		return -1
	}
	front := rq.queue[0]
	rq.queue = rq.queue[1:]
	return front
}
