package simulation

import (
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatekeeper/config"
	"github.com/sarchlab/gatekeeper/presentation"
)

var _ = Describe("Scenario", func() {
	It("should parse a scenario", func() {
		s, err := ParseScenario([]byte(`
name: sample
start: 2026-03-02T10:00:00Z
duration: 5s
initial_count: 2
config:
  max_capacity: 4
  schedule_hours: [7, 8]
  tick_interval: 100ms
steps:
  - at: 2s
    exit: low
  - at: 1s
    entry: low
    input: aa
    press: validate
expect:
  count: 1
  messages_contain: [full]
`))

		Expect(err).NotTo(HaveOccurred())
		Expect(s.Name).To(Equal("sample"))
		Expect(s.Start).To(Equal(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)))
		Expect(s.Duration).To(Equal(5 * time.Second))
		Expect(s.InitialCount).To(Equal(2))
		Expect(*s.Config.MaxCapacity).To(Equal(4))
		Expect(*s.Config.ScheduleHours).To(Equal([]int{7, 8}))
		Expect(*s.Config.TickInterval).To(Equal(100 * time.Millisecond))
		Expect(s.Steps).To(HaveLen(2))
		Expect(s.Steps[0].At).To(Equal(time.Second))
		Expect(*s.Steps[0].Input).To(Equal("aa"))
		Expect(s.Steps[1].Exit).To(Equal(LevelLow))
		Expect(*s.Expect.Count).To(Equal(1))
		Expect(s.Expect.GateCycles).To(BeNil())
	})

	It("should report every malformed part", func() {
		_, err := ParseScenario([]byte(`
duration: 1s
steps:
  - at: 2s
    entry: maybe
`))

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("no name"))
		Expect(err.Error()).To(ContainSubstring("no start time"))
		Expect(err.Error()).To(ContainSubstring("outside the scenario"))
		Expect(err.Error()).To(ContainSubstring(`unknown sensor level "maybe"`))
	})

	It("should load the scenario files", func() {
		paths, err := filepath.Glob("testdata/*.yaml")
		Expect(err).NotTo(HaveOccurred())
		Expect(paths).NotTo(BeEmpty())

		for _, path := range paths {
			_, err := LoadScenario(path)
			Expect(err).NotTo(HaveOccurred(), path)
		}
	})

	It("should fail on a missing file", func() {
		_, err := LoadScenario("testdata/missing.yaml")

		Expect(err).To(HaveOccurred())
	})

	It("should override the base configuration", func() {
		capacity := 7
		hours := []int{}
		settle := time.Second
		s := &Scenario{
			InitialCount: 4,
			Config: Overrides{
				MaxCapacity:   &capacity,
				ScheduleHours: &hours,
				OpenSettle:    &settle,
			},
		}

		c, err := s.Apply(config.Default())

		Expect(err).NotTo(HaveOccurred())
		Expect(c.MaxCapacity).To(Equal(7))
		Expect(c.InitialCount).To(Equal(4))
		Expect(c.ScheduleWindow.Hours()).To(BeEmpty())
		Expect(c.OpenSettle).To(Equal(time.Second))
		Expect(c.CloseSettle).To(Equal(500 * time.Millisecond))
	})

	It("should refuse an initial count above the capacity", func() {
		s := &Scenario{InitialCount: 4}

		_, err := s.Apply(config.Default())

		Expect(err).To(HaveOccurred())
	})

	It("should turn a step into panel events", func() {
		st := Step{
			Focus:            presentation.FieldCredential,
			Press:            presentation.ButtonValidate,
			Defocus:          presentation.FieldCredential,
			ChangeCredential: &CredentialChange{Old: "aa", New: "bb"},
		}

		Expect(st.events()).To(Equal([]presentation.Event{
			presentation.FieldFocused{Field: presentation.FieldCredential},
			presentation.ButtonPressed{ID: presentation.ButtonValidate},
			presentation.FieldDefocused{Field: presentation.FieldCredential},
			presentation.CredentialChangeRequested{Old: "aa", New: "bb"},
		}))
	})
})

var _ = Describe("ScriptedSensors", func() {
	It("should start on an empty lane and keep unnamed levels", func() {
		s := NewScriptedSensors()
		Expect(s.ReadEntrySensor()).To(BeTrue())
		Expect(s.ReadExitSensor()).To(BeTrue())

		s.Set(LevelLow, "")
		Expect(s.ReadEntrySensor()).To(BeFalse())
		Expect(s.ReadExitSensor()).To(BeTrue())

		s.Set("", LevelLow)
		s.Set(LevelHigh, "")
		Expect(s.ReadEntrySensor()).To(BeTrue())
		Expect(s.ReadExitSensor()).To(BeFalse())
	})
})
