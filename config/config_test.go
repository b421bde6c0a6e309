package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/gatekeeper/config"
)

var gateKeys = []string{
	"GATE_MAX_CAPACITY", "GATE_SCHEDULE_HOURS", "GATE_TICK_INTERVAL",
	"GATE_OPEN_ANGLE", "GATE_CLOSED_ANGLE", "GATE_ANIMATION_DURATION",
	"GATE_OPEN_SIGNAL", "GATE_CLOSED_SIGNAL", "GATE_POLL_INTERVAL",
	"GATE_OPEN_SETTLE", "GATE_CLOSE_SETTLE", "GATE_INITIAL_COUNT",
	"GATE_CREDENTIAL", "GATE_RECORD_PATH",
}

func setenv(key, value string) {
	Expect(os.Setenv(key, value)).To(Succeed())
}

var _ = Describe("Config", func() {
	BeforeEach(func() {
		for _, key := range gateKeys {
			Expect(os.Unsetenv(key)).To(Succeed())
			DeferCleanup(os.Unsetenv, key)
		}
	})

	It("should hold the reference gate parameters by default", func() {
		c := config.Default()

		Expect(c.MaxCapacity).To(Equal(3))
		Expect(c.ScheduleWindow.Hours()).To(Equal([]int{17}))
		Expect(c.TickInterval).To(Equal(200 * time.Millisecond))
		Expect(c.OpenAngleTenthsDeg).To(Equal(0))
		Expect(c.ClosedAngleTenthsDeg).To(Equal(900))
		Expect(c.AnimationDuration).To(Equal(500 * time.Millisecond))
		Expect(c.DefaultCredential).To(Equal("aa"))
		Expect(c.Validate()).To(Succeed())
	})

	It("should load defaults without environment", func() {
		c, err := config.Load("")

		Expect(err).NotTo(HaveOccurred())
		Expect(c.MaxCapacity).To(Equal(3))
		Expect(c.RecordPath).To(BeEmpty())
	})

	It("should apply environment variables", func() {
		setenv("GATE_MAX_CAPACITY", "10")
		setenv("GATE_SCHEDULE_HOURS", "7, 8")
		setenv("GATE_TICK_INTERVAL", "50ms")
		setenv("GATE_CREDENTIAL", "secret")

		c, err := config.Load("")

		Expect(err).NotTo(HaveOccurred())
		Expect(c.MaxCapacity).To(Equal(10))
		Expect(c.ScheduleWindow.Hours()).To(Equal([]int{7, 8}))
		Expect(c.TickInterval).To(Equal(50 * time.Millisecond))
		Expect(c.DefaultCredential).To(Equal("secret"))
	})

	It("should disable automatic entry with a blank hour list", func() {
		setenv("GATE_SCHEDULE_HOURS", " ")

		c, err := config.Load("")

		Expect(err).NotTo(HaveOccurred())
		Expect(c.ScheduleWindow.Hours()).To(BeEmpty())
	})

	It("should report every malformed variable", func() {
		setenv("GATE_MAX_CAPACITY", "three")
		setenv("GATE_OPEN_SETTLE", "soon")
		setenv("GATE_SCHEDULE_HOURS", "25")

		_, err := config.Load("")

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("GATE_MAX_CAPACITY"))
		Expect(err.Error()).To(ContainSubstring("GATE_OPEN_SETTLE"))
		Expect(err.Error()).To(ContainSubstring("GATE_SCHEDULE_HOURS"))
	})

	It("should read an env file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "gate.env")
		content := "GATE_MAX_CAPACITY=5\nGATE_RECORD_PATH=passages\n"
		Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())

		c, err := config.Load(path)

		Expect(err).NotTo(HaveOccurred())
		Expect(c.MaxCapacity).To(Equal(5))
		Expect(c.RecordPath).To(Equal("passages"))
	})

	It("should prefer the environment over the env file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "gate.env")
		Expect(os.WriteFile(path, []byte("GATE_MAX_CAPACITY=5\n"), 0o600)).
			To(Succeed())
		setenv("GATE_MAX_CAPACITY", "7")

		c, err := config.Load(path)

		Expect(err).NotTo(HaveOccurred())
		Expect(c.MaxCapacity).To(Equal(7))
	})

	It("should fail on a missing env file", func() {
		_, err := config.Load(filepath.Join(GinkgoT().TempDir(), "missing.env"))

		Expect(err).To(HaveOccurred())
	})

	It("should report every invalid parameter", func() {
		c := config.Default()
		c.MaxCapacity = 0
		c.InitialCount = 2
		c.TickInterval = 0
		c.DefaultCredential = ""

		err := c.Validate()

		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("max capacity"))
		Expect(err.Error()).To(ContainSubstring("initial count"))
		Expect(err.Error()).To(ContainSubstring("tick interval"))
		Expect(err.Error()).To(ContainSubstring("credential"))
	})
})
