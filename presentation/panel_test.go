package presentation

import (
	"bytes"
	"log"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Panel", func() {
	var (
		buf   *bytes.Buffer
		panel *Panel
	)

	BeforeEach(func() {
		buf = new(bytes.Buffer)
		panel = NewPanel(log.New(buf, "", 0))
	})

	It("should start with a visible closed barrier", func() {
		s := panel.Snapshot()

		Expect(s.BarrierVisible).To(BeTrue())
		Expect(s.ArmAngle).To(Equal(900))
		Expect(s.LoginPromptShown).To(BeFalse())
	})

	It("should ignore typing while the prompt is hidden", func() {
		panel.TypeInput("aa")

		Expect(panel.ReadCredentialInput()).To(BeEmpty())
	})

	It("should hold typed input while the prompt is shown", func() {
		panel.ShowLoginPrompt()
		panel.TypeInput("aa")

		Expect(panel.ReadCredentialInput()).To(Equal("aa"))

		panel.ClearCredentialInput()
		Expect(panel.ReadCredentialInput()).To(BeEmpty())
	})

	It("should close the keyboard with the prompt", func() {
		panel.ShowLoginPrompt()
		panel.SetKeyboardVisible(true)
		panel.TypeInput("x")

		panel.HideLoginPrompt()

		s := panel.Snapshot()
		Expect(s.LoginPromptShown).To(BeFalse())
		Expect(s.KeyboardVisible).To(BeFalse())
		Expect(s.CredentialInput).To(BeEmpty())
	})

	It("should keep message and gate state history", func() {
		panel.ShowMessage("lot full")
		panel.ShowMessage("wrong credential")
		panel.SetGateStateDisplay("Opening")
		panel.SetGateStateDisplay("Open")

		Expect(panel.Snapshot().Message).To(Equal("wrong credential"))
		Expect(panel.Messages()).To(Equal([]string{"lot full", "wrong credential"}))
		Expect(panel.GateStates()).To(Equal([]string{"Opening", "Open"}))
		Expect(buf.String()).To(ContainSubstring("[panel] message: lot full"))
		Expect(buf.String()).To(ContainSubstring("[panel] gate: Open"))
	})

	It("should log the count only when it changes", func() {
		panel.SetCountDisplay(1, 3)
		panel.SetCountDisplay(1, 3)

		Expect(bytes.Count(buf.Bytes(), []byte("vehicles: 1/3"))).To(Equal(1))
	})

	It("should work without a logger", func() {
		quiet := NewPanel(nil)

		Expect(func() { quiet.ShowMessage("hello") }).NotTo(Panic())
	})

	It("should accept concurrent updates", func() {
		var wg sync.WaitGroup

		for i := 0; i < 10; i++ {
			wg.Add(1)

			go func(i int) {
				defer wg.Done()
				panel.SetArmAngle(i)
				panel.SetClockDisplay("12:00:00")
			}(i)
		}

		wg.Wait()

		Expect(panel.Snapshot().Clock).To(Equal("12:00:00"))
	})
})
