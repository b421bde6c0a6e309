package simulation

import (
	"log"
	"time"

	"github.com/rs/xid"

	"github.com/sarchlab/gatekeeper/datarecording"
	"github.com/sarchlab/gatekeeper/timing"
	"github.com/sarchlab/gatekeeper/tracing"
)

// Builder can be used to build a simulation.
type Builder struct {
	startTime      time.Time
	logger         *log.Logger
	recording      bool
	outputFileName string
	dataRecorder   datarecording.DataRecorder
}

// MakeBuilder creates a new builder. By default the simulation does not
// record and starts at the current wall-clock time.
func MakeBuilder() Builder {
	return Builder{
		startTime: time.Now(),
	}
}

// WithStartTime sets the initial time of the simulated clock.
func (b Builder) WithStartTime(t time.Time) Builder {
	b.startTime = t
	return b
}

// WithLogger prints the passages of every gate to the logger.
func (b Builder) WithLogger(l *log.Logger) Builder {
	b.logger = l
	return b
}

// WithRecording records the passages into an SQLite file.
func (b Builder) WithRecording() Builder {
	b.recording = true
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
// It implies WithRecording.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.recording = true
	b.outputFileName = filename

	return b
}

// WithDataRecorder records the passages into an existing recorder. The
// simulation flushes but does not close it.
func (b Builder) WithDataRecorder(r datarecording.DataRecorder) Builder {
	b.dataRecorder = r
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.dataRecorder != nil && b.outputFileName != "" {
		log.Panic("output file name cannot be set with an external recorder")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:            xid.New().String(),
		clock:         timing.NewSimClock(b.startTime),
		logger:        b.logger,
		gateNameIndex: make(map[string]int),
	}

	s.stepCounter = tracing.NewStepCountTracer(tracing.KindIs("passage"))
	s.passageTimer = tracing.NewAverageTimeTracer(s.clock, tracing.KindIs("passage"))

	s.dataRecorder = b.dataRecorder
	if s.dataRecorder == nil && b.recording {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "gatekeeper_sim_" + s.id
		}

		recorder, err := datarecording.New(outputPath)
		if err != nil {
			log.Panic(err)
		}

		s.dataRecorder = recorder
		s.ownsRecorder = true
	}

	if s.dataRecorder != nil {
		s.visTracer = tracing.NewDBTracer(s.clock, s.dataRecorder)
	}

	return s
}

