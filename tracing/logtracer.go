package tracing

import (
	"log"

	"github.com/sarchlab/gatekeeper/timing"
)

// LogTracer writes every task start, step and end into a logger.
type LogTracer struct {
	logger     *log.Logger
	timeTeller timing.TimeTeller
}

// NewLogTracer creates a tracer that prints into the logger, stamping each
// line with the time told by the time teller.
func NewLogTracer(logger *log.Logger, timeTeller timing.TimeTeller) *LogTracer {
	return &LogTracer{
		logger:     logger,
		timeTeller: timeTeller,
	}
}

func (t *LogTracer) now() string {
	return t.timeTeller.Now().Format("15:04:05.000")
}

// StartTask prints the start of a task.
func (t *LogTracer) StartTask(task Task) {
	t.logger.Printf("%s [%s] start %s %s (%s)",
		t.now(), task.Where, task.Kind, task.What, task.ID)
}

// StepTask prints a step of a task.
func (t *LogTracer) StepTask(task Task) {
	for _, step := range task.Steps {
		t.logger.Printf("%s [%s] step %s (%s)",
			t.now(), task.Where, step.What, task.ID)
	}
}

// EndTask prints the end of a task.
func (t *LogTracer) EndTask(task Task) {
	t.logger.Printf("%s [%s] end (%s)", t.now(), task.Where, task.ID)
}
