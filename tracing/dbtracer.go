package tracing

import (
	"log"
	"sync"
	"time"

	"github.com/sarchlab/gatekeeper/datarecording"
	"github.com/sarchlab/gatekeeper/timing"
	"github.com/tebeka/atexit"
)

const (
	taskTableName = "passages"
	stepTableName = "passage_steps"
)

type taskTableEntry struct {
	ID        string
	ParentID  string
	Kind      string
	What      string
	Location  string
	Outcome   string
	StartTime float64
	EndTime   float64
	NumSteps  int
}

type stepTableEntry struct {
	TaskID string
	What   string
	Time   float64
}

// DBTracer is a tracer that stores finished tasks and their steps into a
// DataRecorder. Times are stored as seconds since the Unix epoch.
type DBTracer struct {
	mu         sync.Mutex
	timeTeller timing.TimeTeller
	backend    datarecording.DataRecorder

	tracingTasks map[string]Task
}

// NewDBTracer creates a new DBTracer. Pending records are flushed when the
// program exits through atexit.
func NewDBTracer(
	timeTeller timing.TimeTeller,
	dataRecorder datarecording.DataRecorder,
) *DBTracer {
	dataRecorder.CreateTable(taskTableName, taskTableEntry{})
	dataRecorder.CreateTable(stepTableName, stepTableEntry{})

	t := &DBTracer{
		timeTeller:   timeTeller,
		backend:      dataRecorder,
		tracingTasks: make(map[string]Task),
	}

	atexit.Register(func() {
		t.Terminate()
	})

	return t
}

func toSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

// StartTask marks the start of a task.
func (t *DBTracer) StartTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	task.StartTime = t.timeTeller.Now()
	t.tracingTasks[task.ID] = task
}

// StepTask records the steps of a task.
func (t *DBTracer) StepTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	original, ok := t.tracingTasks[task.ID]
	if !ok {
		return
	}

	now := t.timeTeller.Now()
	for _, step := range task.Steps {
		step.Time = now
		original.Steps = append(original.Steps, step)

		t.backend.InsertData(stepTableName, stepTableEntry{
			TaskID: task.ID,
			What:   step.What,
			Time:   toSeconds(now),
		})
	}

	t.tracingTasks[task.ID] = original
}

// EndTask writes the finished task.
func (t *DBTracer) EndTask(task Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	original, ok := t.tracingTasks[task.ID]
	if !ok {
		return
	}

	original.EndTime = t.timeTeller.Now()

	t.backend.InsertData(taskTableName, taskTableEntry{
		ID:        original.ID,
		ParentID:  original.ParentID,
		Kind:      original.Kind,
		What:      original.What,
		Location:  original.Where,
		Outcome:   original.Outcome(),
		StartTime: toSeconds(original.StartTime),
		EndTime:   toSeconds(original.EndTime),
		NumSteps:  len(original.Steps),
	})

	delete(t.tracingTasks, task.ID)
}

// Terminate flushes all the records. Tasks that have not ended are dropped.
func (t *DBTracer) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.tracingTasks = make(map[string]Task)

	if err := t.backend.Flush(); err != nil {
		log.Printf("failed to flush trace records: %v", err)
	}
}
